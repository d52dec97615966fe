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

package sky

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidViewport = errors.New("invalid viewport")

// A rectangular region of the sky in equatorial coordinates.
// RAMax may exceed 24h, or RAMin may be negative, to express
// a window which crosses the 0h meridian.
type Viewport struct {
	RAMin  float64 `json:"raMin"  mapstructure:"raMin"`  // hours
	RAMax  float64 `json:"raMax"  mapstructure:"raMax"`  // hours
	DecMin float64 `json:"decMin" mapstructure:"decMin"` // degrees
	DecMax float64 `json:"decMax" mapstructure:"decMax"` // degrees
}

func (v Viewport) String() string {
	return fmt.Sprintf("ra [%.3fh, %.3fh] dec [%.3f°, %.3f°]", v.RAMin, v.RAMax, v.DecMin, v.DecMax)
}

// Checks the bounds for consistency
func (v Viewport) Validate() error {
	for _, f := range []float64{v.RAMin, v.RAMax, v.DecMin, v.DecMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound in %v", ErrInvalidViewport, v)
		}
	}
	if v.RAMin >= v.RAMax {
		return fmt.Errorf("%w: ra_min %g >= ra_max %g", ErrInvalidViewport, v.RAMin, v.RAMax)
	}
	if v.DecMin >= v.DecMax {
		return fmt.Errorf("%w: dec_min %g >= dec_max %g", ErrInvalidViewport, v.DecMin, v.DecMax)
	}
	if v.DecMin < -90 || v.DecMax > 90 {
		return fmt.Errorf("%w: declination outside [-90, 90] in %v", ErrInvalidViewport, v)
	}
	if v.RAMin < -24 || v.RAMax > 48 {
		return fmt.Errorf("%w: right ascension outside [-24h, 48h] in %v", ErrInvalidViewport, v)
	}
	return nil
}

// Padding of the right ascension axis for coarse pre-filtering, in hours
func (v Viewport) RABuffer() float64 {
	return (v.RAMax - v.RAMin) / 4
}

// Padding of the declination axis for coarse pre-filtering, in degrees
func (v Viewport) DecBuffer() float64 {
	return (v.DecMax - v.DecMin) / 4
}

// Reports whether the bounds wrap past 24h and below 0h at the same time,
// i.e. span more than a full turn. Such windows cover the whole sky in RA
func (v Viewport) WholeSkyRA() bool {
	return v.RAMin < 0 && v.RAMax > 24
}

// Coarse window test on catalog positions with buffers of a quarter span per axis.
// Stars near the edges pass, so apparent positions can still move into view.
func (v Viewport) InWindow(raHours, decDegrees float64) bool {
	decBuffer := v.DecBuffer()
	if !(decDegrees > v.DecMin-decBuffer && decDegrees < v.DecMax+decBuffer) {
		return false
	}

	raBuffer := v.RABuffer()
	switch {
	case v.WholeSkyRA():
		return true
	case v.RAMax > 24: // wraps past 24h
		return raHours > v.RAMin-raBuffer || raHours < v.RAMax-24+raBuffer
	case v.RAMin < 0: // wraps below 0h
		return raHours > 24+v.RAMin-raBuffer || raHours < v.RAMax+raBuffer
	default:
		return raHours > v.RAMin-raBuffer && raHours < v.RAMax+raBuffer
	}
}

// Precise containment test in plot space, x being right ascension in degrees
// and y declination in degrees. No buffers. Right ascension is compared
// modulo 360 degrees so wrapping windows contain stars on both sides of 0h.
func (v Viewport) ContainsXY(x, y float64) bool {
	if y < v.DecMin || y > v.DecMax {
		return false
	}
	if v.WholeSkyRA() {
		return true
	}
	xMin, xMax := v.RAMin*15, v.RAMax*15
	for _, cand := range []float64{x, x - 360, x + 360} {
		if cand >= xMin && cand <= xMax {
			return true
		}
	}
	return false
}
