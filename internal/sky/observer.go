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
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

var ErrUnknownBody = errors.New("unknown observer body")

const (
	speedOfLight = 173.1446326846693 // AU per day
	auPerParsec  = 206264.80624709636
	masPerDegree = 3.6e6
)

// A catalog position, with optional proper motion and parallax.
// Zero proper motion and parallax are treated as absent.
type Position struct {
	RAHours    float64
	DecDegrees float64
	PMRA       float64 // proper motion in RA, times cos(dec), mas/yr
	PMDec      float64 // proper motion in Dec, mas/yr
	Parallax   float64 // mas
}

// Converts catalog positions into apparent positions as seen from a body at an instant.
// Vectorized over all positions; output slices have the same length as the input.
type Observer interface {
	Body() string
	Observe(ps []Position, t time.Time) (raHours, decDegrees []float64, err error)
}

// Returns the observer for the given body name. Supported are
// "earth", and "sun" or "barycenter" for plain catalog positions
func NewObserver(body string) (Observer, error) {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "", "earth":
		return NewEarth(), nil
	case "sun", "barycenter", "ssb":
		return Barycenter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBody, body)
	}
}

// Observer at the solar system barycenter, without any corrections.
// Apparent positions equal catalog positions.
type Barycenter struct{}

func (Barycenter) Body() string { return "barycenter" }

func (Barycenter) Observe(ps []Position, t time.Time) (raHours, decDegrees []float64, err error) {
	raHours, decDegrees = make([]float64, len(ps)), make([]float64, len(ps))
	for i, p := range ps {
		raHours[i], decDegrees[i] = p.RAHours, p.DecDegrees
	}
	return raHours, decDegrees, nil
}

// Observer on Earth. Applies proper motion from the catalog epoch,
// annual parallax, and annual aberration.
type Earth struct {
	CatalogEpoch float64 // Julian date of the catalog positions
}

func NewEarth() *Earth {
	return &Earth{CatalogEpoch: JDHipparcos}
}

func (e *Earth) Body() string { return "earth" }

func (e *Earth) Observe(ps []Position, t time.Time) (raHours, decDegrees []float64, err error) {
	jd := JulianDate(t)
	years := (jd - e.CatalogEpoch) / DaysPerYear
	earthPos, earthVel := EarthPosition(jd), EarthVelocity(jd)
	beta := r3.Scale(1/speedOfLight, earthVel)

	raHours, decDegrees = make([]float64, len(ps)), make([]float64, len(ps))
	for i, p := range ps {
		if math.IsNaN(p.RAHours) || math.IsNaN(p.DecDegrees) {
			return nil, nil, fmt.Errorf("position %d: non-finite coordinates", i)
		}
		ra, dec := p.RAHours*15, p.DecDegrees

		// proper motion, linear in angle
		if p.PMRA != 0 || p.PMDec != 0 {
			if cosDec := math.Cos(dec * deg2rad); cosDec > 1e-9 {
				ra += p.PMRA * years / cosDec / masPerDegree
			}
			dec += p.PMDec * years / masPerDegree
			dec = math.Max(-90, math.Min(90, dec))
		}

		u := unitVector(ra, dec)

		// parallax: shift the barycentric position by the earth's position
		if p.Parallax > 0 {
			distAU := auPerParsec * 1000 / p.Parallax
			u = r3.Unit(r3.Sub(r3.Scale(distAU, u), earthPos))
		}

		// annual aberration, first order
		u = r3.Unit(r3.Add(u, beta))

		raHours[i], decDegrees[i] = sphericalHours(u)
	}
	return raHours, decDegrees, nil
}

func unitVector(raDegrees, decDegrees float64) r3.Vec {
	sinRA, cosRA := math.Sincos(raDegrees * deg2rad)
	sinDec, cosDec := math.Sincos(decDegrees * deg2rad)
	return r3.Vec{X: cosDec * cosRA, Y: cosDec * sinRA, Z: sinDec}
}

// Right ascension in hours [0,24) and declination in degrees of a unit vector
func sphericalHours(u r3.Vec) (raHours, decDegrees float64) {
	ra := math.Atan2(u.Y, u.X) / deg2rad
	if ra < 0 {
		ra += 360
	}
	raHours = ra / 15
	if raHours >= 24 {
		raHours -= 24
	}
	z := math.Max(-1, math.Min(1, u.Z))
	return raHours, math.Asin(z) / deg2rad
}
