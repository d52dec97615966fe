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
	"errors"
	"fmt"

	"github.com/mlnoga/starchart/internal/catalog"
)

// Loads the catalog and reduces it to rows plausibly inside the viewport
// and not fainter than the given limiting magnitude. Returned rows point
// into the catalog snapshot and must not be modified
func (c *Chart) loadStars(id catalog.ID, mag float64) ([]*catalog.Row, error) {
	cat, err := c.Catalogs.Load(id)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCatalog) {
			return nil, stageError("catalog", ErrConfiguration, err)
		}
		return nil, stageError("catalog", ErrCollaborator, err)
	}
	if cat == nil {
		return nil, stageError("catalog", ErrCollaborator, fmt.Errorf("provider returned no catalog for %s", id))
	}

	var rows []*catalog.Row
	for i := range cat.Rows {
		r := &cat.Rows[i]
		if r.Magnitude <= mag && c.Viewport.InWindow(r.RAHours, r.DecDegrees) {
			rows = append(rows, r)
		}
	}
	c.Logger.Debug().Str("catalog", string(id)).Int("rows", len(cat.Rows)).Int("nearby", len(rows)).
		Msg("Loaded stars")
	return rows, nil
}
