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
	"math"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/star"
	"github.com/mlnoga/starchart/internal/style"
	"github.com/mlnoga/starchart/internal/surface"
	"github.com/mlnoga/starchart/internal/where"
)

// Plots stars from a catalog. Stars are windowed to the viewport, observed
// at the chart's time, filtered by the predicates and the limiting magnitude,
// and drawn largest first. Stars not fainter than the label magnitude are
// labeled with their names and optionally Bayer designations. If no star
// is drawn, nothing is rendered at all
func (c *Chart) Stars(opts StarsOptions) error {
	c.Logger.Debug().Msg("Plotting stars...")

	objStyle, err := c.resolveStyle(&opts)
	if err != nil {
		return err
	}
	marker := &objStyle.Marker
	multiplier := c.SizeMultiplier * marker.Size / 5

	sizeFn, alphaFn, colorFn := opts.SizeFn, opts.AlphaFn, opts.ColorFn
	if sizeFn == nil {
		sizeFn = star.SizeConst(marker.Size)
	}
	if alphaFn == nil {
		alphaFn = star.AlphaConst(marker.Alpha)
	}
	if colorFn == nil {
		colorFn = star.ColorConst(string(marker.Color))
	}

	rows, err := c.loadStars(opts.Catalog, opts.selectionMag())
	if err != nil {
		return err
	}
	nearby, err := c.project(rows)
	if err != nil {
		return err
	}

	stars := make([]plotted, 0, len(nearby))
	for _, p := range nearby {
		s := newStar(p)
		ok, err := where.All(opts.Where, s)
		if err != nil {
			return stageError("where", ErrPredicate, err)
		}
		if !ok {
			continue
		}
		attrs := star.Attributes{
			Size:  sizeFn(s) * multiplier,
			Alpha: alphaFn(s),
			Color: colorFn(s),
		}
		if attrs.Color == "" {
			attrs.Color = string(marker.Color)
		}
		stars = append(stars, plotted{x: p.x, y: p.y, attrs: attrs, star: s})
	}

	if err := c.drawStars(stars, marker, opts.Rasterize); err != nil {
		return err
	}
	if len(stars) == 0 {
		return nil
	}

	if opts.Legend != "" {
		e := surface.LegendEntry{
			Label:  opts.Legend,
			Marker: marker.Symbol,
			Color:  string(marker.Color),
			Size:   marker.Size * c.SizeMultiplier,
			Alpha:  marker.Alpha,
		}
		if err := c.Surface.AddLegend(e); err != nil {
			return stageError("legend", ErrCollaborator, err)
		}
	}

	return c.starLabels(nearby, opts.LabelMag, opts.labelNames(), opts.BayerLabels, &objStyle.Label)
}

// Checks the options and returns the star style to use
func (c *Chart) resolveStyle(opts *StarsOptions) (*style.ObjectStyle, error) {
	if math.IsNaN(opts.Mag) || math.IsNaN(opts.LabelMag) {
		return nil, configError("magnitude limits must not be NaN")
	}
	if opts.Catalog == "" {
		return nil, configError("no catalog given")
	}
	objStyle := opts.Style
	if objStyle == nil {
		objStyle = &c.Style.Star
	}
	if err := objStyle.Marker.Validate(); err != nil {
		return nil, stageError("style", ErrConfiguration, err)
	}
	if err := objStyle.Label.Validate(); err != nil {
		return nil, stageError("style", ErrConfiguration, err)
	}
	return objStyle, nil
}

// Builds the star value for a projected row. Positions are apparent positions
func newStar(p projected) star.Star {
	s := star.Star{
		RA:        p.ra,
		Dec:       p.dec,
		Magnitude: p.row.Magnitude,
		BV:        p.row.BV,
		HasBV:     p.row.HasBV,
	}
	if p.row.HasID {
		s.HIP, s.HasHIP = p.row.ID, true
		s.Name, _ = catalog.Name(p.row.ID)
	}
	return s
}
