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
	"github.com/mlnoga/starchart/internal/where"
)

// Options for plotting stars. Use DefaultStarsOptions and modify as needed
type StarsOptions struct {
	Mag         float64            // limiting magnitude of stars to plot, +Inf for no limit
	LabelMag    float64            // limiting magnitude of stars to label
	Catalog     catalog.ID         // catalog to plot stars from
	Style       *style.ObjectStyle // if nil, the chart's star style is used
	Rasterize   bool               // render the markers as raster image on vector surfaces
	SizeFn      star.SizeFunc      // if nil, the marker style's size is used
	AlphaFn     star.AlphaFunc     // if nil, the marker style's alpha is used
	ColorFn     star.ColorFunc     // if nil or returning "", the marker style's color is used
	Where       []where.Predicate  // all must hold for a star to be plotted. Disables Mag if non-empty
	Labels      map[int64]string   // HIP to name label, merged over the default names. Nil or empty hides names
	Legend      string             // legend label, empty for no legend entry
	BayerLabels bool               // plot Bayer designations
}

// Returns the default options: stars and labels to magnitude 6 from the
// Hipparcos catalog, size and alpha by magnitude, default star names
func DefaultStarsOptions() StarsOptions {
	return StarsOptions{
		Mag:      6,
		LabelMag: 6,
		Catalog:  catalog.Hipparcos,
		SizeFn:   star.SizeByMagnitude,
		AlphaFn:  star.AlphaByMagnitude,
		Labels:   catalog.Names(),
		Legend:   "Star",
	}
}

// Returns the effective selection magnitude limit. Predicates subsume the limit
func (o *StarsOptions) selectionMag() float64 {
	if len(o.Where) > 0 {
		return math.Inf(1)
	}
	return o.Mag
}

// Builds the name label table. Explicit entries win over the defaults,
// and an empty table hides all names
func (o *StarsOptions) labelNames() map[int64]string {
	if len(o.Labels) == 0 {
		return map[int64]string{}
	}
	names := catalog.Names()
	for hip, name := range o.Labels {
		names[hip] = name
	}
	return names
}
