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

package chart

import (
	"fmt"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/sky"
)

// Derived fields of a catalog row for one plotting pass. Kept apart from
// the row so cached catalog snapshots are never modified
type projected struct {
	row *catalog.Row
	ra  float64 // apparent right ascension in hours
	dec float64 // apparent declination in degrees
	x   float64 // plot x, apparent right ascension in degrees
	y   float64 // plot y, apparent declination in degrees
}

// Observes the rows from the chart's observer at the chart's time, and keeps
// those whose apparent position lies within the unbuffered viewport
func (c *Chart) project(rows []*catalog.Row) ([]projected, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ps := make([]sky.Position, len(rows))
	for i, r := range rows {
		ps[i] = r.Position()
	}
	ras, decs, err := c.Observer.Observe(ps, c.Time)
	if err != nil {
		return nil, stageError("observe", ErrCollaborator, err)
	}
	if len(ras) != len(rows) || len(decs) != len(rows) {
		return nil, stageError("observe", ErrCollaborator,
			fmt.Errorf("observer %s returned %d/%d positions for %d stars", c.Observer.Body(), len(ras), len(decs), len(rows)))
	}

	res := make([]projected, 0, len(rows))
	for i, r := range rows {
		p := projected{row: r, ra: ras[i], dec: decs[i], x: ras[i] * 15, y: decs[i]}
		if c.Viewport.ContainsXY(p.x, p.y) {
			res = append(res, p)
		}
	}
	return res, nil
}
