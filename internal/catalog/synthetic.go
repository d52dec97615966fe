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
	"math"

	"github.com/valyala/fastrand"
)

// Offset for identifiers of synthetic stars, above any Hipparcos number
const syntheticIDBase = 1000000

// Generates a random star field with n stars, uniformly distributed on the sphere.
// Faint stars dominate as in real catalogs. Every tenth star has no identifier.
// The result is deterministic for a given n
func NewSynthetic(n int) *Catalog {
	seed := uint32(n)*2654435761 + 1
	if seed == 0 {
		seed = 1
	}
	rng := fastrand.RNG{}
	rng.Seed(seed)
	uniform := func() float64 { return float64(rng.Uint32()) / (1 << 32) }

	rows := make([]Row, n)
	for i := range rows {
		r := &rows[i]
		r.RAHours = uniform() * 24
		r.DecDegrees = math.Asin(2*uniform()-1) * 180 / math.Pi
		r.Magnitude = 12 - 13*math.Pow(uniform(), 3)
		r.BV, r.HasBV = -0.3+2.1*uniform(), true
		if i%10 != 0 {
			r.ID, r.HasID = int64(syntheticIDBase+i), true
		}
	}
	return &Catalog{ID: Synthetic(n), Rows: rows}
}
