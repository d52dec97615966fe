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

package catalog

// One line of the built-in table of bright stars
type brightStar struct {
	hip   int64
	name  string
	bayer string
	ra    float64 // hours, J2000
	dec   float64 // degrees, J2000
	mag   float64
	bv    float64
}

// The brightest named stars, with Hipparcos identifiers
var brightStars = []brightStar{
	{677, "Alpheratz", "α And", 0.1398, 29.0904, 2.07, -0.04},
	{746, "Caph", "β Cas", 0.1530, 59.1498, 2.28, 0.38},
	{2081, "Ankaa", "α Phe", 0.4381, -42.3060, 2.40, 1.08},
	{3179, "Schedar", "α Cas", 0.6751, 56.5373, 2.24, 1.17},
	{3419, "Diphda", "β Cet", 0.7265, -17.9866, 2.04, 1.02},
	{5447, "Mirach", "β And", 1.1622, 35.6206, 2.07, 1.58},
	{7588, "Achernar", "α Eri", 1.6286, -57.2368, 0.45, -0.16},
	{9884, "Hamal", "α Ari", 2.1195, 23.4624, 2.01, 1.15},
	{11767, "Polaris", "α UMi", 2.5303, 89.2641, 1.97, 0.64},
	{14135, "Menkar", "α Cet", 3.0380, 4.0897, 2.54, 1.64},
	{14576, "Algol", "β Per", 3.1361, 40.9556, 2.09, -0.00},
	{15863, "Mirfak", "α Per", 3.4054, 49.8612, 1.79, 0.48},
	{17702, "Alcyone", "η Tau", 3.7914, 24.1051, 2.85, -0.09},
	{21421, "Aldebaran", "α Tau", 4.5987, 16.5093, 0.87, 1.54},
	{24436, "Rigel", "β Ori", 5.2423, -8.2016, 0.18, -0.03},
	{24608, "Capella", "α Aur", 5.2782, 45.9980, 0.08, 0.80},
	{25336, "Bellatrix", "γ Ori", 5.4189, 6.3497, 1.64, -0.22},
	{25428, "Elnath", "β Tau", 5.4382, 28.6075, 1.65, -0.13},
	{25930, "Mintaka", "δ Ori", 5.5334, -0.2991, 2.25, -0.18},
	{26311, "Alnilam", "ε Ori", 5.6036, -1.2019, 1.69, -0.18},
	{26727, "Alnitak", "ζ Ori", 5.6793, -1.9426, 1.74, -0.20},
	{27989, "Betelgeuse", "α Ori", 5.9195, 7.4071, 0.45, 1.50},
	{30438, "Canopus", "α Car", 6.3992, -52.6957, -0.62, 0.16},
	{32349, "Sirius", "α CMa", 6.7525, -16.7161, -1.44, 0.01},
	{33579, "Adhara", "ε CMa", 6.9771, -28.9721, 1.50, -0.21},
	{36850, "Castor", "α Gem", 7.5766, 31.8883, 1.58, 0.03},
	{37279, "Procyon", "α CMi", 7.6550, 5.2250, 0.40, 0.43},
	{37826, "Pollux", "β Gem", 7.7553, 28.0262, 1.16, 0.99},
	{49669, "Regulus", "α Leo", 10.1395, 11.9672, 1.36, -0.09},
	{54061, "Dubhe", "α UMa", 11.0621, 61.7510, 1.81, 1.06},
	{60718, "Acrux", "α Cru", 12.4433, -63.0991, 0.77, -0.24},
	{62434, "Mimosa", "β Cru", 12.7953, -59.6888, 1.25, -0.24},
	{62956, "Alioth", "ε UMa", 12.9005, 55.9598, 1.76, -0.02},
	{65474, "Spica", "α Vir", 13.4199, -11.1613, 0.98, -0.24},
	{68702, "Hadar", "β Cen", 14.0637, -60.3730, 0.61, -0.23},
	{69673, "Arcturus", "α Boo", 14.2610, 19.1824, -0.05, 1.24},
	{71683, "Rigil Kentaurus", "α Cen", 14.6600, -60.8340, -0.01, 0.71},
	{80763, "Antares", "α Sco", 16.4901, -26.4320, 1.06, 1.87},
	{85927, "Shaula", "λ Sco", 17.5601, -37.1038, 1.62, -0.23},
	{91262, "Vega", "α Lyr", 18.6156, 38.7837, 0.03, -0.00},
	{97649, "Altair", "α Aql", 19.8464, 8.8683, 0.76, 0.22},
	{102098, "Deneb", "α Cyg", 20.6905, 45.2803, 1.25, 0.09},
	{105199, "Alderamin", "α Cep", 21.3097, 62.5856, 2.45, 0.26},
	{107315, "Enif", "ε Peg", 21.7364, 9.8750, 2.38, 1.52},
	{113368, "Fomalhaut", "α PsA", 22.9608, -29.6222, 1.17, 0.15},
	{113881, "Scheat", "β Peg", 23.0629, 28.0828, 2.44, 1.66},
	{113963, "Markab", "α Peg", 23.0794, 15.2053, 2.49, -0.00},
}

// Default proper names by Hipparcos identifier
var names = func() map[int64]string {
	m := make(map[int64]string, len(brightStars))
	for _, s := range brightStars {
		m[s.hip] = s.name
	}
	return m
}()

// Bayer designations by Hipparcos identifier
var bayer = func() map[int64]string {
	m := make(map[int64]string, len(brightStars))
	for _, s := range brightStars {
		m[s.hip] = s.bayer
	}
	return m
}()

// Returns a copy of the default table of proper names, by Hipparcos identifier
func Names() map[int64]string {
	res := make(map[int64]string, len(names))
	for k, v := range names {
		res[k] = v
	}
	return res
}

// Returns the proper name for the given Hipparcos identifier, if any
func Name(hip int64) (string, bool) {
	n, ok := names[hip]
	return n, ok
}

// Returns the Bayer designation for the given Hipparcos identifier, if any
func Bayer(hip int64) (string, bool) {
	b, ok := bayer[hip]
	return b, ok
}

// Returns the built-in catalog of bright stars
func BrightCatalog() *Catalog {
	rows := make([]Row, len(brightStars))
	for i, s := range brightStars {
		rows[i] = Row{ID: s.hip, HasID: true, RAHours: s.ra, DecDegrees: s.dec, Magnitude: s.mag, BV: s.bv, HasBV: true}
	}
	return &Catalog{ID: Bright, Rows: rows}
}
