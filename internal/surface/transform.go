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

package surface

import (
	"errors"
	"fmt"
	"math"
)

// A 2-dimensional point with floating point coordinates
type Point2D struct {
	X float64
	Y float64
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// A 2D affine coordinate transformation
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Transform2D struct {
	A, B, C float64
	D, E, F float64
}

func (t Transform2D) String() string {
	return fmt.Sprintf("x'=%.5gx %+.5gy %+.5g, y'=%.5gx %+.5gy %+.5g",
		t.A, t.B, t.C, t.D, t.E, t.F)
}

func IdentityTransform2D() Transform2D {
	return Transform2D{1, 0, 0, 0, 1, 0}
}

// Calculates the transformation mapping three points p1, p2, p3 in the first
// coordinate system onto p1p, p2p, p3p in the second
func NewTransform2D(p1, p2, p3, p1p, p2p, p3p Point2D) (Transform2D, error) {
	den := (p2.Y-p1.Y)*(p3.X-p1.X) - (p2.X-p1.X)*(p3.Y-p1.Y)
	if math.Abs(den) < 1e-12 {
		return Transform2D{}, errors.New("collinear reference points")
	}
	a := ((p3p.X-p1p.X)*(p2.Y-p1.Y) - (p2p.X-p1p.X)*(p3.Y-p1.Y)) / den
	d := ((p3p.Y-p1p.Y)*(p2.Y-p1.Y) - (p2p.Y-p1p.Y)*(p3.Y-p1.Y)) / den

	// solve the remaining coefficients from whichever of p2, p3 differs from p1 in y
	q, qp := p2, p2p
	if math.Abs(p2.Y-p1.Y) < math.Abs(p3.Y-p1.Y) {
		q, qp = p3, p3p
	}
	b := ((qp.X - p1p.X) - a*(q.X-p1.X)) / (q.Y - p1.Y)
	e := ((qp.Y - p1p.Y) - d*(q.X-p1.X)) / (q.Y - p1.Y)
	c := p1p.X - a*p1.X - b*p1.Y
	f := p1p.Y - d*p1.X - e*p1.Y

	for _, v := range []float64{a, b, c, d, e, f} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return Transform2D{}, errors.New("divide by zero")
		}
	}
	return Transform2D{a, b, c, d, e, f}, nil
}

// Applies the transformation to the given point
func (t *Transform2D) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Inverts the transformation. Returns an error if the matrix is singular
func (t *Transform2D) Invert() (Transform2D, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-12 {
		return Transform2D{}, fmt.Errorf("matrix has no inverse, det=%g", det)
	}
	return Transform2D{
		A: t.E / det,
		B: -t.B / det,
		C: (t.B*t.F - t.C*t.E) / det,
		D: -t.D / det,
		E: t.A / det,
		F: (t.C*t.D - t.A*t.F) / det,
	}, nil
}

// Maps plot coordinates of a viewport onto pixels of an image. Right ascension
// increases to the left, declination upwards, as seen on the sky
type Frame struct {
	XMin, XMax float64 // plot x range in degrees, XMax may exceed 360
	YMin, YMax float64 // plot y range in degrees
	Width      int
	Height     int
	toPixel    Transform2D
	toPlot     Transform2D
}

// Creates a frame for the given plot range and image size
func NewFrame(xMin, xMax, yMin, yMax float64, width, height int) (*Frame, error) {
	if !(xMax > xMin) || !(yMax > yMin) {
		return nil, fmt.Errorf("empty plot range x=[%g,%g] y=[%g,%g]", xMin, xMax, yMin, yMax)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	w, h := float64(width), float64(height)
	toPixel, err := NewTransform2D(
		Point2D{xMin, yMax}, Point2D{xMax, yMax}, Point2D{xMin, yMin},
		Point2D{w, 0}, Point2D{0, 0}, Point2D{w, h},
	)
	if err != nil {
		return nil, err
	}
	toPlot, err := toPixel.Invert()
	if err != nil {
		return nil, err
	}
	return &Frame{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax, Width: width, Height: height,
		toPixel: toPixel, toPlot: toPlot}, nil
}

// Converts plot coordinates to pixel coordinates. Shifts x by full turns
// into the frame's x range where possible
func (f *Frame) ToPixel(x, y float64) (px, py float64) {
	if x < f.XMin && x+360 <= f.XMax {
		x += 360
	} else if x > f.XMax && x-360 >= f.XMin {
		x -= 360
	}
	p := f.toPixel.Apply(Point2D{x, y})
	return p.X, p.Y
}

// Converts pixel coordinates to plot coordinates
func (f *Frame) ToPlot(px, py float64) (x, y float64) {
	p := f.toPlot.Apply(Point2D{px, py})
	return p.X, p.Y
}
