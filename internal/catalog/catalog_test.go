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

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticID(t *testing.T) {
	n, ok := Synthetic(500).SyntheticSize()
	assert.True(t, ok)
	assert.Equal(t, 500, n)

	_, ok = Hipparcos.SyntheticSize()
	assert.False(t, ok)
	_, ok = ID("synthetic:abc").SyntheticSize()
	assert.False(t, ok)
	_, ok = ID("synthetic:-3").SyntheticSize()
	assert.False(t, ok)

	n, ok = Synthetic(MaxSyntheticStars).SyntheticSize()
	assert.True(t, ok)
	assert.Equal(t, MaxSyntheticStars, n)
	_, ok = Synthetic(MaxSyntheticStars + 1).SyntheticSize()
	assert.False(t, ok)
	_, ok = ID("synthetic:2000000000").SyntheticSize()
	assert.False(t, ok)
	assert.True(t, ID("synthetic:2000000000").IsSynthetic())
	assert.False(t, Bright.IsSynthetic())
}

func TestNewSyntheticIsDeterministic(t *testing.T) {
	a, b := NewSynthetic(1000), NewSynthetic(1000)
	require.Len(t, a.Rows, 1000)
	assert.Equal(t, a.Rows, b.Rows)

	withoutID := 0
	for _, r := range a.Rows {
		assert.GreaterOrEqual(t, r.RAHours, 0.0)
		assert.Less(t, r.RAHours, 24.0)
		assert.GreaterOrEqual(t, r.DecDegrees, -90.0)
		assert.LessOrEqual(t, r.DecDegrees, 90.0)
		assert.GreaterOrEqual(t, r.Magnitude, -1.0)
		assert.LessOrEqual(t, r.Magnitude, 12.0)
		if !r.HasID {
			withoutID++
		}
	}
	assert.Equal(t, 100, withoutID)
}

func TestBrightCatalogAndTables(t *testing.T) {
	c := BrightCatalog()
	assert.Equal(t, Bright, c.ID)
	assert.NotEmpty(t, c.Rows)
	for _, r := range c.Rows {
		require.True(t, r.HasID)
		_, ok := Name(r.ID)
		assert.True(t, ok, "HIP %d has a name", r.ID)
		_, ok = Bayer(r.ID)
		assert.True(t, ok, "HIP %d has a Bayer designation", r.ID)
	}

	n, ok := Name(677)
	assert.True(t, ok)
	assert.Equal(t, "Alpheratz", n)
	b, ok := Bayer(32349)
	assert.True(t, ok)
	assert.Equal(t, "α CMa", b)

	// Names returns a copy
	m := Names()
	m[677] = "Changed"
	n, _ = Name(677)
	assert.Equal(t, "Alpheratz", n)
}

func TestReadCSV(t *testing.T) {
	in := `hip, ra_hours, dec_degrees, magnitude, bv, pm_ra, pm_dec, parallax
677, 0.1398, 29.0904, 2.07, -0.04, 135.68, -162.95, 33.6
, 1.5, -3, 7.5, , , ,
`
	c, err := ReadCSV(strings.NewReader(in), Hipparcos)
	require.NoError(t, err)
	require.Len(t, c.Rows, 2)

	assert.Equal(t, Row{ID: 677, HasID: true, RAHours: 0.1398, DecDegrees: 29.0904, Magnitude: 2.07,
		BV: -0.04, HasBV: true, PMRA: 135.68, PMDec: -162.95, Parallax: 33.6}, c.Rows[0])
	assert.Equal(t, Row{RAHours: 1.5, DecDegrees: -3, Magnitude: 7.5}, c.Rows[1])
}

func TestReadCSVNonFiniteIDs(t *testing.T) {
	in := `hip,ra_hours,dec_degrees,magnitude,bv
inf,1,2,3,0.5
nan,4,5,6,inf
-Inf,7,8,9,
`
	c, err := ReadCSV(strings.NewReader(in), Hipparcos)
	require.NoError(t, err)
	require.Len(t, c.Rows, 3)
	for i, r := range c.Rows {
		assert.False(t, r.HasID, "row %d", i)
		assert.Equal(t, int64(0), r.ID, "row %d", i)
	}
	assert.True(t, c.Rows[0].HasBV)
	assert.False(t, c.Rows[1].HasBV)

	_, err = ReadCSV(strings.NewReader("hip,ra_hours,dec_degrees,magnitude\n1.5,1,2,3\n"), Hipparcos)
	assert.ErrorContains(t, err, "not an integer")
	_, err = ReadCSV(strings.NewReader("hip,ra_hours,dec_degrees,magnitude\n1e19,1,2,3\n"), Hipparcos)
	assert.ErrorContains(t, err, "not an integer")
	_, err = ReadCSV(strings.NewReader("hip,ra_hours,dec_degrees,magnitude\n1,inf,2,3\n"), Hipparcos)
	assert.ErrorContains(t, err, "missing value")
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("hip,ra_hours,magnitude\n1,2,3\n"), Hipparcos)
	assert.ErrorContains(t, err, "dec_degrees")

	_, err = ReadCSV(strings.NewReader("id,ra_hours,dec_degrees,magnitude\n1,2,x,3\n"), Hipparcos)
	assert.ErrorContains(t, err, "line 2")

	_, err = ReadCSV(strings.NewReader("id,ra_hours,dec_degrees,magnitude\n1,2,,3\n"), Hipparcos)
	assert.ErrorContains(t, err, "missing value")
}

func TestDirProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hipparcos.csv"),
		[]byte("id,ra_hours,dec_degrees,magnitude\n1,2,3,4\n"), 0644))

	p := DirProvider{Dir: dir}
	c, err := p.Load(Hipparcos)
	require.NoError(t, err)
	assert.Len(t, c.Rows, 1)

	_, err = p.Load(Tycho1)
	assert.ErrorIs(t, err, ErrUnknownCatalog)
	_, err = p.Load("../etc/passwd")
	assert.ErrorIs(t, err, ErrUnknownCatalog)

	ids, err := p.Catalogs()
	require.NoError(t, err)
	assert.Equal(t, []ID{Hipparcos}, ids)
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "catalog.db"), zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	rows := BrightCatalog().Rows
	require.NoError(t, s.Import(Hipparcos, rows))
	require.NoError(t, s.Import(Tycho1, rows[:3]))

	c, err := s.Load(Hipparcos)
	require.NoError(t, err)
	assert.Equal(t, rows, c.Rows)

	// re-import replaces
	require.NoError(t, s.Import(Tycho1, rows[:2]))
	c, err = s.Load(Tycho1)
	require.NoError(t, err)
	assert.Len(t, c.Rows, 2)

	ids, err := s.Catalogs()
	require.NoError(t, err)
	assert.Equal(t, []ID{Hipparcos, Tycho1}, ids)

	_, err = s.Load("nope")
	assert.ErrorIs(t, err, ErrUnknownCatalog)
}

func TestResolver(t *testing.T) {
	r := &Resolver{}
	c, err := r.Load(Bright)
	require.NoError(t, err)
	assert.Equal(t, Bright, c.ID)

	c, err = r.Load(Synthetic(25))
	require.NoError(t, err)
	assert.Len(t, c.Rows, 25)

	_, err = r.Load(Hipparcos)
	assert.ErrorIs(t, err, ErrUnknownCatalog)
	_, err = r.Load("synthetic:2000000000")
	assert.ErrorIs(t, err, ErrUnknownCatalog)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tycho-1.csv"),
		[]byte("id,ra_hours,dec_degrees,magnitude\n1,2,3,4\n"), 0644))
	r.Dir = &DirProvider{Dir: dir}
	c, err = r.Load(Tycho1)
	require.NoError(t, err)
	assert.Len(t, c.Rows, 1)
	_, err = r.Load(Hipparcos)
	assert.ErrorIs(t, err, ErrUnknownCatalog)
}

func TestCache(t *testing.T) {
	calls := 0
	next := ProviderFunc(func(id ID) (*Catalog, error) {
		calls++
		return NewSynthetic(10), nil
	})

	c := NewCacheWithBudget(next, 1<<20, zerolog.Nop())
	a, err := c.Load("x")
	require.NoError(t, err)
	b, err := c.Load("x")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)

	c.Reset()
	_, err = c.Load("x")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// zero budget never caches
	tiny := NewCacheWithBudget(next, 0, zerolog.Nop())
	_, _ = tiny.Load("x")
	_, _ = tiny.Load("x")
	assert.Equal(t, 4, calls)

	assert.NotNil(t, NewCache(next, 0.1, zerolog.Nop()))
}
