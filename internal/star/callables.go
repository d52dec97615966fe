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

package star

import (
	"math"
)

// Calculates the marker size of a star, before chart size multipliers are applied
type SizeFunc func(s Star) float64

// Calculates the opacity of a star, in [0,1]
type AlphaFunc func(s Star) float64

// Calculates the color of a star as hex string. An empty result
// makes the caller fall back to the style's marker color
type ColorFunc func(s Star) string

// Constant size, e.g. from a marker style
func SizeConst(size float64) SizeFunc {
	return func(Star) float64 { return size }
}

// Constant alpha, e.g. from a marker style
func AlphaConst(alpha float64) AlphaFunc {
	return func(Star) float64 { return alpha }
}

// Constant color, e.g. from a marker style
func ColorConst(hex string) ColorFunc {
	return func(Star) string { return hex }
}

// Marker size by magnitude. Bright stars grow with a power law,
// fainter ones fall into fixed size classes
func SizeByMagnitude(s Star) float64 {
	m := s.Magnitude
	switch {
	case m < 4.6:
		return math.Pow(8-m, 2.36)
	case m < 5.85:
		return 14
	case m < 9:
		return 9
	default:
		return 6
	}
}

// Opacity by magnitude. Stars brighter than 4.6 are opaque,
// fainter ones fade out linearly towards magnitude 16
func AlphaByMagnitude(s Star) float64 {
	if s.Magnitude < 4.6 {
		return 1
	}
	a := (16 - s.Magnitude) * 0.09
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Color by B-V color index. Returns the empty string for stars without
// color index, so the style color applies
func ColorByBV(s Star) string {
	if !s.HasBV || math.IsNaN(s.BV) {
		return ""
	}
	return BVToColor(s.BV).Hex()
}
