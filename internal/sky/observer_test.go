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

package sky

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// angular separation in degrees
func separation(ra1, dec1, ra2, dec2 float64) float64 {
	d := r3.Dot(unitVector(ra1*15, dec1), unitVector(ra2*15, dec2))
	return math.Acos(math.Max(-1, math.Min(1, d))) / deg2rad
}

func TestJulianDate(t *testing.T) {
	assert.InDelta(t, JDJ2000, JulianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, JDUnixEpoch, JulianDate(time.Unix(0, 0)), 1e-9)
	assert.InDelta(t, 1.0, JulianCenturies(JDJ2000+DaysPerCent), 1e-12)
}

func TestNewObserver(t *testing.T) {
	o, err := NewObserver("Earth")
	require.NoError(t, err)
	assert.Equal(t, "earth", o.Body())

	o, err = NewObserver("")
	require.NoError(t, err)
	assert.Equal(t, "earth", o.Body())

	o, err = NewObserver("sun")
	require.NoError(t, err)
	assert.Equal(t, "barycenter", o.Body())

	_, err = NewObserver("mars")
	assert.ErrorIs(t, err, ErrUnknownBody)
}

func TestBarycenterIsIdentity(t *testing.T) {
	ps := []Position{{RAHours: 1, DecDegrees: 2}, {RAHours: 23.5, DecDegrees: -80, PMRA: 100, Parallax: 50}}
	ras, decs, err := Barycenter{}.Observe(ps, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 23.5}, ras)
	assert.Equal(t, []float64{2, -80}, decs)
}

func TestEarthOrbit(t *testing.T) {
	start := JulianDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	for d := 0.0; d < 366; d += 5 {
		p, v := EarthPosition(start+d), EarthVelocity(start+d)
		assert.InDelta(t, 1.0, r3.Norm(p), 0.018, "day %g", d)
		assert.InDelta(t, 2*math.Pi/DaysPerYear, r3.Norm(v), 0.0006, "day %g", d)
	}

	// at the march equinox the sun stands at the vernal point, so the earth is opposite
	p := EarthPosition(JulianDate(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)))
	assert.InDelta(t, -0.996, p.X, 0.005)
	assert.InDelta(t, 0, p.Y, 0.005)
	assert.InDelta(t, 0, p.Z, 0.005)
}

func TestEarthAberrationIsBounded(t *testing.T) {
	const maxAberration = 20.6 / 3600 // degrees
	obs := NewEarth()
	ps := []Position{}
	for ra := 0.0; ra < 24; ra += 1.5 {
		for dec := -80.0; dec <= 80; dec += 20 {
			ps = append(ps, Position{RAHours: ra, DecDegrees: dec})
		}
	}
	ras, decs, err := obs.Observe(ps, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, ras, len(ps))
	require.Len(t, decs, len(ps))

	maxSeen := 0.0
	for i, p := range ps {
		sep := separation(p.RAHours, p.DecDegrees, ras[i], decs[i])
		assert.LessOrEqual(t, sep, maxAberration, "position %d", i)
		maxSeen = math.Max(maxSeen, sep)
		assert.GreaterOrEqual(t, ras[i], 0.0)
		assert.Less(t, ras[i], 24.0)
	}
	assert.Greater(t, maxSeen, 15.0/3600, "aberration should reach close to 20.5 arcsec")
}

func TestEarthProperMotion(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	obs := &Earth{CatalogEpoch: JulianDate(at) - DaysPerYear}
	ps := []Position{{RAHours: 6, DecDegrees: 10, PMDec: masPerDegree}}
	ras, decs, err := obs.Observe(ps, at)
	require.NoError(t, err)
	assert.InDelta(t, 11, decs[0], 0.01)
	assert.InDelta(t, 6, ras[0], 0.01)
}

func TestEarthParallax(t *testing.T) {
	at := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)
	obs := NewEarth()
	// 57.3 AU distance, perpendicular to the earth-sun line: about one degree of parallax
	near := Position{RAHours: 6, DecDegrees: 0, Parallax: auPerParsec * 1000 / (180 / math.Pi)}
	far := Position{RAHours: 6, DecDegrees: 0}
	ras, decs, err := obs.Observe([]Position{near, far}, at)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, separation(ras[0], decs[0], ras[1], decs[1]), 0.02)
}

func TestEarthRejectsNaN(t *testing.T) {
	_, _, err := NewEarth().Observe([]Position{{RAHours: math.NaN()}}, time.Now())
	assert.Error(t, err)
}
