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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mlnoga/starchart/internal/sky"
)

var ErrUnknownCatalog = errors.New("unknown catalog")

// Identifies a star catalog
type ID string

const (
	Hipparcos ID = "hipparcos" // Hipparcos, about 118k stars
	Tycho1    ID = "tycho-1"   // Tycho-1, about 10x the size of Hipparcos
	Bright    ID = "bright"    // Built-in list of the brightest named stars

	syntheticPrefix = "synthetic:"

	// Largest supported synthetic catalog
	MaxSyntheticStars = 1000000
)

// Reports whether the ID names a synthetic catalog, valid or not
func (id ID) IsSynthetic() bool {
	return strings.HasPrefix(string(id), syntheticPrefix)
}

// Returns the ID of a synthetic random star field with n stars
func Synthetic(n int) ID {
	return ID(fmt.Sprintf("%s%d", syntheticPrefix, n))
}

// Returns the number of stars if the ID denotes a synthetic catalog
// of at most MaxSyntheticStars stars
func (id ID) SyntheticSize() (n int, ok bool) {
	s, found := strings.CutPrefix(string(id), syntheticPrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxSyntheticStars {
		return 0, false
	}
	return n, true
}

// A catalog entry. Positions are barycentric catalog positions
type Row struct {
	ID         int64   // Catalog identifier, valid if HasID
	HasID      bool    // False for synthetic entries without identifier
	RAHours    float64 // Right ascension in hours [0,24)
	DecDegrees float64 // Declination in degrees [-90,90]
	Magnitude  float64 // Visual magnitude
	BV         float64 // B-V color index, valid if HasBV
	HasBV      bool
	PMRA       float64 // Proper motion in RA times cos(dec), mas/yr
	PMDec      float64 // Proper motion in Dec, mas/yr
	Parallax   float64 // mas
}

// Catalog position of the row, as input to an observer
func (r *Row) Position() sky.Position {
	return sky.Position{
		RAHours:    r.RAHours,
		DecDegrees: r.DecDegrees,
		PMRA:       r.PMRA,
		PMDec:      r.PMDec,
		Parallax:   r.Parallax,
	}
}

// An immutable snapshot of a star catalog. Shared between chart renderings,
// so consumers must never modify Rows
type Catalog struct {
	ID   ID
	Rows []Row
}

// Approximate memory footprint in bytes
func (c *Catalog) SizeBytes() uint64 {
	return uint64(len(c.Rows)) * rowBytes
}

const rowBytes = 8 * 10

// Loads star catalogs by ID
type Provider interface {
	Load(id ID) (*Catalog, error)
}

// Adapter to use an ordinary function as Provider
type ProviderFunc func(id ID) (*Catalog, error)

func (f ProviderFunc) Load(id ID) (*Catalog, error) { return f(id) }
