// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package star

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastrand"
)

func TestSizeByMagnitudeDecreasesWithMagnitude(t *testing.T) {
	prev := math.Inf(1)
	for m := -1.5; m < 12; m += 0.05 {
		size := SizeByMagnitude(Star{Magnitude: m})
		assert.Greater(t, size, 0.0, "mag=%f", m)
		assert.LessOrEqual(t, size, prev, "mag=%f", m)
		prev = size
	}
}

func TestAlphaByMagnitude(t *testing.T) {
	tcs := []struct {
		Mag   float64
		Alpha float64
	}{
		{-1, 1},
		{4.5, 1},
		{6, 0.9},
		{16, 0},
		{20, 0},
	}
	for _, tc := range tcs {
		assert.InDelta(t, tc.Alpha, AlphaByMagnitude(Star{Magnitude: tc.Mag}), 1e-9, "mag=%f", tc.Mag)
	}
}

func TestColorByBV(t *testing.T) {
	assert.Equal(t, "", ColorByBV(Star{Magnitude: 1}), "no color index")
	assert.Equal(t, "", ColorByBV(Star{BV: math.NaN(), HasBV: true}), "NaN color index")

	hot := ColorByBV(Star{BV: -0.4, HasBV: true})
	cool := ColorByBV(Star{BV: 2.0, HasBV: true})
	require.Len(t, hot, 7)
	assert.True(t, strings.HasPrefix(hot, "#"))
	assert.Equal(t, "#9bb2ff", hot)
	assert.Equal(t, "#ff5200", cool)

	// clamped outside the table
	assert.Equal(t, hot, ColorByBV(Star{BV: -3, HasBV: true}))
	assert.Equal(t, cool, ColorByBV(Star{BV: 7, HasBV: true}))
}

func TestBVToColorInterpolates(t *testing.T) {
	lo, hi := BVToColor(0.0), BVToColor(0.05)
	mid := BVToColor(0.025)
	assert.InDelta(t, (lo.R+hi.R)/2, mid.R, 1e-6)
	assert.InDelta(t, (lo.G+hi.G)/2, mid.G, 1e-6)
	assert.InDelta(t, (lo.B+hi.B)/2, mid.B, 1e-6)
}

func TestConstFuncs(t *testing.T) {
	s := Star{Magnitude: 3}
	assert.Equal(t, 4.5, SizeConst(4.5)(s))
	assert.Equal(t, 0.25, AlphaConst(0.25)(s))
	assert.Equal(t, "#abcdef", ColorConst("#abcdef")(s))
}

func TestPrintStars(t *testing.T) {
	var buf bytes.Buffer
	PrintStars(&buf, []Star{
		{HIP: 677, HasHIP: true, Name: "Alpheratz", RA: 0.14, Dec: 29.09, Magnitude: 2.07, BV: -0.04, HasBV: true},
		{RA: 1, Dec: 2, Magnitude: 3},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "HIP,Name,RA,Dec,Magnitude,BV", lines[0])
	assert.Equal(t, `677,"Alpheratz",0.14,29.09,2.07,-0.04`, lines[1])
	assert.Equal(t, `,"",1,2,3,`, lines[2])
}

func TestKDTreeNearestNeighbor(t *testing.T) {
	rng := fastrand.RNG{}
	for n := 1; n < 200; n += 7 {
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{
				X:    float64(rng.Uint32n(36000)) / 100,
				Y:    float64(rng.Uint32n(18000))/100 - 90,
				Star: Star{HIP: int64(i), HasHIP: true},
			}
		}
		kdt := NewKDTree(entries)
		require.Len(t, kdt, n)

		for q := 0; q < 50; q++ {
			x := float64(rng.Uint32n(36000)) / 100
			y := float64(rng.Uint32n(18000))/100 - 90

			// brute force reference
			best := math.Inf(1)
			for _, e := range entries {
				if d := e.DistSquared(x, y); d < best {
					best = d
				}
			}

			e, dsq, ok := kdt.NearestNeighbor(x, y)
			require.True(t, ok)
			if dsq != best {
				t.Errorf("n=%d query (%g,%g) got dsq %g (HIP %d), want %g", n, x, y, dsq, e.Star.HIP, best)
			}
		}
	}
}

func TestKDTreeEmpty(t *testing.T) {
	_, _, ok := NewKDTree(nil).NearestNeighbor(1, 2)
	assert.False(t, ok)
}
