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

	"github.com/mlnoga/starchart/internal/star"
	"github.com/mlnoga/starchart/internal/style"
	"github.com/mlnoga/starchart/internal/surface"
)

// A star admitted for plotting, with its plot position and resolved attributes
type plotted struct {
	x, y  float64
	attrs star.Attributes
	star  star.Star
}

// Sorts stars by descending size, so large markers are drawn beneath small
// ones. Ties keep their admission order
func sequence(stars []plotted) {
	slices.SortStableFunc(stars, func(a, b plotted) int {
		return cmp.Compare(b.attrs.Size, a.attrs.Size)
	})
}

// Draws the stars in one batch and records them as rendered objects
func (c *Chart) drawStars(stars []plotted, marker *style.MarkerStyle, rasterize bool) error {
	sequence(stars)

	edge := c.Style.BackgroundColor
	if marker.EdgeColor != "" {
		edge = marker.EdgeColor
	}
	b := surface.ScatterBatch{
		X:         make([]float64, len(stars)),
		Y:         make([]float64, len(stars)),
		Size:      make([]float64, len(stars)),
		Alpha:     make([]float64, len(stars)),
		Color:     make([]string, len(stars)),
		Marker:    marker.Symbol,
		EdgeColor: string(edge),
		ZOrder:    marker.ZOrder,
		Rasterize: rasterize,
	}
	for i, p := range stars {
		b.X[i], b.Y[i] = p.x, p.y
		b.Size[i], b.Alpha[i], b.Color[i] = p.attrs.Size, p.attrs.Alpha, p.attrs.Color
	}

	c.Logger.Debug().Int("count", len(stars)).Msg("Star count")
	if len(stars) == 0 {
		return nil
	}
	if err := c.Surface.Scatter(b); err != nil {
		return stageError("scatter", ErrCollaborator, err)
	}
	for _, p := range stars {
		c.Objects.Stars = append(c.Objects.Stars, p.star)
	}
	return nil
}
