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

// Package style holds visual styles for chart objects, with defaults for every attribute
package style

import (
	"errors"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidStyle = errors.New("invalid style")

// A color as hex string, e.g. #ffd2a1 or #fff
type Color string

// Parses the color
func (c Color) Colorful() (colorful.Color, error) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidStyle, string(c), err)
	}
	return col, nil
}

// Returns the color with the given opacity, or transparent black if the color does not parse
func (c Color) NRGBA(alpha float64) color.NRGBA {
	col, err := c.Colorful()
	if err != nil {
		return color.NRGBA{}
	}
	r, g, b := col.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Marker symbols supported by the rendering surfaces
const (
	SymbolPoint  = "point"
	SymbolCircle = "circle"
	SymbolSquare = "square"
)

// Style of a scatter marker
type MarkerStyle struct {
	Symbol    string  `json:"symbol" mapstructure:"symbol"`
	Size      float64 `json:"size" mapstructure:"size"`             // base size, 5 means scale 1
	Alpha     float64 `json:"alpha" mapstructure:"alpha"`
	Color     Color   `json:"color" mapstructure:"color"`
	EdgeColor Color   `json:"edgeColor" mapstructure:"edgecolor"` // empty means chart background
	ZOrder    int     `json:"zorder" mapstructure:"zorder"`
}

// Style of a text label
type LabelStyle struct {
	FontSize float64 `json:"fontSize" mapstructure:"fontsize"`
	Color    Color   `json:"color" mapstructure:"color"`
	Alpha    float64 `json:"alpha" mapstructure:"alpha"`
	Offset   float64 `json:"offset" mapstructure:"offset"` // distance from the anchor point in pixels
	ZOrder   int     `json:"zorder" mapstructure:"zorder"`
}

// Style of a plotted object kind with marker and label
type ObjectStyle struct {
	Marker MarkerStyle `json:"marker" mapstructure:"marker"`
	Label  LabelStyle  `json:"label" mapstructure:"label"`
}

// Style of a chart
type Style struct {
	BackgroundColor Color       `json:"backgroundColor" mapstructure:"backgroundcolor"`
	Star            ObjectStyle `json:"star" mapstructure:"star"`
	BayerLabels     LabelStyle  `json:"bayerLabels" mapstructure:"bayerlabels"`
}

// Returns the default style
func Default() *Style {
	return &Style{
		BackgroundColor: "#ffffff",
		Star: ObjectStyle{
			Marker: MarkerStyle{Symbol: SymbolPoint, Size: 20, Alpha: 1, Color: "#000000", ZOrder: 10},
			Label:  LabelStyle{FontSize: 9, Color: "#000000", Alpha: 1, Offset: 3, ZOrder: 20},
		},
		BayerLabels: LabelStyle{FontSize: 8, Color: "#000000", Alpha: 1, Offset: 3, ZOrder: 20},
	}
}

// Checks that every attribute has a usable value
func (s *Style) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil style", ErrInvalidStyle)
	}
	if _, err := s.BackgroundColor.Colorful(); err != nil {
		return fmt.Errorf("backgroundColor: %w", err)
	}
	if err := s.Star.Marker.Validate(); err != nil {
		return fmt.Errorf("star.marker: %w", err)
	}
	if err := s.Star.Label.Validate(); err != nil {
		return fmt.Errorf("star.label: %w", err)
	}
	if err := s.BayerLabels.Validate(); err != nil {
		return fmt.Errorf("bayerLabels: %w", err)
	}
	return nil
}

func (m *MarkerStyle) Validate() error {
	switch m.Symbol {
	case SymbolPoint, SymbolCircle, SymbolSquare:
	default:
		return fmt.Errorf("%w: unknown symbol %q", ErrInvalidStyle, m.Symbol)
	}
	if !(m.Size > 0) {
		return fmt.Errorf("%w: size %g must be positive", ErrInvalidStyle, m.Size)
	}
	if m.Alpha < 0 || m.Alpha > 1 {
		return fmt.Errorf("%w: alpha %g outside [0,1]", ErrInvalidStyle, m.Alpha)
	}
	if _, err := m.Color.Colorful(); err != nil {
		return err
	}
	if m.EdgeColor != "" {
		if _, err := m.EdgeColor.Colorful(); err != nil {
			return err
		}
	}
	return nil
}

func (l *LabelStyle) Validate() error {
	if !(l.FontSize > 0) {
		return fmt.Errorf("%w: font size %g must be positive", ErrInvalidStyle, l.FontSize)
	}
	if l.Alpha < 0 || l.Alpha > 1 {
		return fmt.Errorf("%w: alpha %g outside [0,1]", ErrInvalidStyle, l.Alpha)
	}
	_, err := l.Color.Colorful()
	return err
}
