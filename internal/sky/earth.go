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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	obliquityJ2000 = 23.4392911 * math.Pi / 180 // mean obliquity of the ecliptic at J2000.0
	deg2rad        = math.Pi / 180
)

// Heliocentric position of the Earth in AU, in equatorial coordinates.
// Low precision solar theory after Meeus, Astronomical Algorithms, ch. 25,
// good to about 0.01 degrees in longitude. The sun stands in for the
// solar system barycenter.
func EarthPosition(jd float64) r3.Vec {
	t := JulianCenturies(jd)

	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := (357.52911 + 35999.05029*t - 0.0001537*t*t) * deg2rad
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	lambda := (l0 + c) * deg2rad // geometric longitude of the sun
	nu := m + c*deg2rad          // true anomaly
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))

	// earth sits opposite the sun, in the ecliptic plane
	x, y := -r*math.Cos(lambda), -r*math.Sin(lambda)
	sinEps, cosEps := math.Sincos(obliquityJ2000)
	return r3.Vec{X: x, Y: y * cosEps, Z: y * sinEps}
}

// Heliocentric velocity of the Earth in AU/day, by central difference of EarthPosition
func EarthVelocity(jd float64) r3.Vec {
	const h = 0.5
	return r3.Scale(1/(2*h), r3.Sub(EarthPosition(jd+h), EarthPosition(jd-h)))
}
