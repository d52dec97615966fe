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

// Package surface provides 2D rendering surfaces for charts. Surfaces accept
// plot coordinates natively: x is right ascension in degrees, y is declination in degrees
package surface

import (
	"errors"
	"fmt"
)

var ErrBatch = errors.New("malformed scatter batch")

// Horizontal text alignment relative to the anchor point
type HAlign string

const (
	Left   HAlign = "left"
	Center HAlign = "center"
	Right  HAlign = "right"
)

// Vertical text alignment relative to the anchor point
type VAlign string

const (
	Top    VAlign = "top"
	Middle VAlign = "center"
	Bottom VAlign = "bottom"
)

// A batch of markers, drawn atomically in slice order. X, Y, Size, Alpha and
// Color are parallel arrays. Size is the marker area in points squared
type ScatterBatch struct {
	X         []float64
	Y         []float64
	Size      []float64
	Alpha     []float64
	Color     []string
	Marker    string // marker symbol
	EdgeColor string
	ZOrder    int
	Rasterize bool // render as raster image even on vector surfaces
}

func (b *ScatterBatch) Len() int { return len(b.X) }

// Checks that all parallel arrays have the same length
func (b *ScatterBatch) Validate() error {
	n := len(b.X)
	if len(b.Y) != n || len(b.Size) != n || len(b.Alpha) != n || len(b.Color) != n {
		return fmt.Errorf("%w: lengths x=%d y=%d size=%d alpha=%d color=%d", ErrBatch,
			len(b.X), len(b.Y), len(b.Size), len(b.Alpha), len(b.Color))
	}
	return nil
}

// A text label, anchored at a point in plot coordinates
type Text struct {
	X, Y     float64
	Text     string
	HAlign   HAlign
	VAlign   VAlign
	FontSize float64
	Color    string
	Alpha    float64
	Offset   float64 // distance from the anchor point in pixels, away from the text
	ZOrder   int
}

// An entry in the chart legend
type LegendEntry struct {
	Label  string
	Marker string
	Color  string
	Size   float64
	Alpha  float64
}

// A rendering surface
type Surface interface {
	Scatter(b ScatterBatch) error
	PlaceText(t Text) error
	AddLegend(e LegendEntry) error
}
