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
	"time"
)

const (
	JDUnixEpoch  = 2440587.5    // Julian date of 1970-01-01T00:00:00Z
	JDJ2000      = 2451545.0    // Julian date of epoch J2000.0
	JDHipparcos  = 2448349.0625 // Julian date of epoch J1991.25, the Hipparcos catalog epoch
	DaysPerYear  = 365.25       // Julian year
	DaysPerCent  = 36525.0      // Julian century
	secondsInDay = 86400.0
)

// Julian date of the given instant. UTC is used as a stand-in for TT,
// the difference of about a minute is far below chart resolution
func JulianDate(t time.Time) float64 {
	return JDUnixEpoch + float64(t.UnixNano())/1e9/secondsInDay
}

// Julian centuries since J2000.0
func JulianCenturies(jd float64) float64 {
	return (jd - JDJ2000) / DaysPerCent
}
