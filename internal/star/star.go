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
	"fmt"
	"io"
)

// A star, as selected for plotting on a chart. Positions are apparent
// positions at the observation instant, not catalog positions.
type Star struct {
	HIP       int64   `json:"hip,omitempty"`  // Catalog identifier, valid if HasHIP
	HasHIP    bool    `json:"hasHip"`         // False for synthetic entries without identifier
	Name      string  `json:"name,omitempty"` // Proper name, if any
	RA        float64 `json:"ra"`             // Right ascension in hours
	Dec       float64 `json:"dec"`            // Declination in degrees
	Magnitude float64 `json:"magnitude"`      // Visual magnitude. Lower is brighter
	BV        float64 `json:"bv,omitempty"`   // B-V color index, valid if HasBV
	HasBV     bool    `json:"hasBv"`
}

func (s Star) String() string {
	id := "-"
	if s.HasHIP {
		id = fmt.Sprintf("HIP %d", s.HIP)
	}
	if s.Name != "" {
		id = fmt.Sprintf("%s (%s)", id, s.Name)
	}
	return fmt.Sprintf("%s ra=%.4fh dec=%.4f° mag=%.2f", id, s.RA, s.Dec, s.Magnitude)
}

// Prints given array of stars as CSV
func PrintStars(w io.Writer, stars []Star) {
	fmt.Fprintln(w, "HIP,Name,RA,Dec,Magnitude,BV")
	for _, s := range stars {
		hip, bv := "", ""
		if s.HasHIP {
			hip = fmt.Sprintf("%d", s.HIP)
		}
		if s.HasBV {
			bv = fmt.Sprintf("%g", s.BV)
		}
		fmt.Fprintf(w, "%s,%q,%g,%g,%g,%s\n", hip, s.Name, s.RA, s.Dec, s.Magnitude, bv)
	}
}

// Resolved visual attributes of a star, ready for the rendering surface
type Attributes struct {
	Size  float64 // Marker size in plot units, after multipliers
	Alpha float64 // Opacity in [0,1]
	Color string  // Color as hex string, e.g. #ffffff
}
