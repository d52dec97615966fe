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

// Package chart plots catalog stars onto a rendering surface for a viewport
// and observation instant
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/sky"
	"github.com/mlnoga/starchart/internal/star"
	"github.com/mlnoga/starchart/internal/style"
	"github.com/mlnoga/starchart/internal/surface"
)

// Settings for creating a chart
type Config struct {
	Viewport       sky.Viewport
	Time           time.Time        // observation instant. Zero means now
	Observer       sky.Observer     // if nil, observes from earth
	Catalogs       catalog.Provider // required
	Style          *style.Style     // if nil, the default style is used
	Surface        surface.Surface  // required
	SizeMultiplier float64          // scales marker and font sizes. Zero means 1
	Logger         *zerolog.Logger  // if nil, logging is disabled
}

// A star chart. Not safe for concurrent use
type Chart struct {
	Viewport       sky.Viewport
	Time           time.Time
	Observer       sky.Observer
	Catalogs       catalog.Provider
	Style          *style.Style
	Surface        surface.Surface
	SizeMultiplier float64
	Logger         zerolog.Logger
	Objects        Objects
}

// Objects rendered on a chart, in draw order
type Objects struct {
	Stars []star.Star
}

// Creates a new chart. Returns an ErrConfiguration error for invalid settings
func New(cfg Config) (*Chart, error) {
	if err := cfg.Viewport.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if cfg.Catalogs == nil {
		return nil, configError("no catalog provider")
	}
	if cfg.Surface == nil {
		return nil, configError("no rendering surface")
	}
	c := &Chart{
		Viewport:       cfg.Viewport,
		Time:           cfg.Time,
		Observer:       cfg.Observer,
		Catalogs:       cfg.Catalogs,
		Style:          cfg.Style,
		Surface:        cfg.Surface,
		SizeMultiplier: cfg.SizeMultiplier,
		Logger:         zerolog.Nop(),
	}
	if c.Time.IsZero() {
		c.Time = time.Now().UTC()
	}
	if c.Observer == nil {
		c.Observer = sky.NewEarth()
	}
	if c.Style == nil {
		c.Style = style.Default()
	}
	if err := c.Style.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.SizeMultiplier == 0 {
		c.SizeMultiplier = 1
	}
	if !(c.SizeMultiplier > 0) || math.IsInf(c.SizeMultiplier, 0) {
		return nil, configError("size multiplier %g must be positive", c.SizeMultiplier)
	}
	if cfg.Logger != nil {
		c.Logger = *cfg.Logger
	}
	return c, nil
}

// Returns the rendered star closest to the given apparent position, and
// its angular distance in plot degrees. Returns false if no stars were rendered
func (c *Chart) Nearest(raHours, decDegrees float64) (s star.Star, distDegrees float64, ok bool) {
	if len(c.Objects.Stars) == 0 {
		return star.Star{}, 0, false
	}
	entries := make([]star.Entry, len(c.Objects.Stars))
	for i, s := range c.Objects.Stars {
		entries[i] = star.Entry{X: s.RA * 15, Y: s.Dec, Star: s}
	}
	tree := star.NewKDTree(entries)

	best, bestDsq := star.Entry{}, math.Inf(1)
	x := math.Mod(raHours*15, 360)
	if x < 0 {
		x += 360
	}
	for _, qx := range []float64{x, x - 360, x + 360} {
		if e, dsq, found := tree.NearestNeighbor(qx, decDegrees); found && dsq < bestDsq {
			best, bestDsq = e, dsq
		}
	}
	return best.Star, math.Sqrt(bestDsq), true
}
