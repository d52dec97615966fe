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
	"cmp"
	"slices"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/style"
	"github.com/mlnoga/starchart/internal/surface"
)

// Places name and Bayer labels for stars not fainter than mag, brightest
// first. Names go below right of the star, Bayer designations above left.
// Labels of different stars may overlap
func (c *Chart) starLabels(rows []projected, mag float64, names map[int64]string, bayer bool, label *style.LabelStyle) error {
	var eligible []projected
	for _, p := range rows {
		if p.row.Magnitude <= mag && p.row.HasID {
			eligible = append(eligible, p)
		}
	}
	slices.SortStableFunc(eligible, func(a, b projected) int {
		return cmp.Compare(a.row.Magnitude, b.row.Magnitude)
	})

	for _, p := range eligible {
		if name := names[p.row.ID]; name != "" {
			t := c.labelText(p, name, label)
			t.HAlign, t.VAlign = surface.Left, surface.Top
			if err := c.Surface.PlaceText(t); err != nil {
				return stageError("text", ErrCollaborator, err)
			}
		}
		if !bayer {
			continue
		}
		if desig, ok := catalog.Bayer(p.row.ID); ok {
			t := c.labelText(p, desig, &c.Style.BayerLabels)
			t.HAlign, t.VAlign = surface.Right, surface.Bottom
			if err := c.Surface.PlaceText(t); err != nil {
				return stageError("text", ErrCollaborator, err)
			}
		}
	}
	return nil
}

func (c *Chart) labelText(p projected, text string, ls *style.LabelStyle) surface.Text {
	return surface.Text{
		X:        p.x,
		Y:        p.y,
		Text:     text,
		FontSize: ls.FontSize * c.SizeMultiplier,
		Color:    string(ls.Color),
		Alpha:    ls.Alpha,
		Offset:   ls.Offset * c.SizeMultiplier,
		ZOrder:   ls.ZOrder,
	}
}
