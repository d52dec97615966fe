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

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the command line in a scratch directory and returns its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var orion = []string{"render", "--catalog", "bright", "--ra-min", "4", "--ra-max", "7",
	"--dec-min", "-15", "--dec-max", "15", "--time", "2020-01-01T00:00:00Z"}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version "+version)
}

func TestLegal(t *testing.T) {
	out, err := run(t, "legal")
	require.NoError(t, err)
	assert.Contains(t, out, "ABSOLUTELY NO WARRANTY")
	assert.Contains(t, out, "gorm.io/gorm")
}

func TestRenderPNG(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "orion.png")
	_, err := run(t, append(orion, "--width", "400", "--height", "300", "-o", file)...)
	require.NoError(t, err)

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRenderSVG(t *testing.T) {
	file := filepath.Join(t.TempDir(), "orion.svg")
	_, err := run(t, append(orion, "--bayer", "--label", "27989=Red Giant", "--where", "bv > 1", "--legend", "", "-o", file)...)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	svg := string(data)
	assert.Contains(t, svg, "Red Giant")
	assert.Contains(t, svg, "α Ori")
	assert.Contains(t, svg, "Rigel", "labels do not depend on predicates")
	assert.Equal(t, 1, strings.Count(svg, "<circle"), "only Betelgeuse is red and in bounds")
}

func TestRenderListsStars(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "stars.csv")
	_, err := run(t, append(orion, "--where", "bv > 1", "-o", filepath.Join(dir, "orion.png"), "--list", list)...)
	require.NoError(t, err)

	data, err := os.ReadFile(list)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "HIP,Name,RA,Dec,Magnitude,BV", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `27989,"Betelgeuse",`), lines[1])

	out, err := run(t, append(orion, "-o", filepath.Join(dir, "orion.png"), "--list", "-")...)
	require.NoError(t, err)
	assert.Contains(t, out, `24436,"Rigel",`)
}

func TestRenderNoLabels(t *testing.T) {
	file := filepath.Join(t.TempDir(), "orion.svg")
	_, err := run(t, append(orion, "--no-labels", "-o", file)...)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Betelgeuse")
}

func TestRenderErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-o", "chart.gif"},
		{"--where", "magnitude <"},
		{"--label", "Betelgeuse"},
		{"--time", "yesterday"},
		{"--observer", "mars"},
		{"--ra-min", "7", "--ra-max", "4"},
		{"--catalog", "missing"},
	} {
		_, err := run(t, append(append([]string{}, orion...), args...)...)
		assert.Error(t, err, "%v", args)
	}
}

func TestImportAndCatalogs(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "custom.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte(
		"hip,ra_hours,dec_degrees,magnitude,bv\n"+
			"1,5.5,0,1.0,0.5\n"+
			"2,5.6,1,2.0,\n"), 0644))
	db := filepath.Join(dir, "stars.db")

	_, err := run(t, "--catalog-db", db, "import", csvFile, "--id", "custom")
	require.NoError(t, err)

	out, err := run(t, "--catalog-db", db, "--catalog-dir", dir, "catalogs")
	require.NoError(t, err)
	assert.Contains(t, out, "bright\n")
	assert.Contains(t, out, "custom\n")
	assert.Contains(t, out, "custom (csv)\n")

	file := filepath.Join(dir, "custom.svg")
	_, err = run(t, append(orion, "--catalog-db", db, "--catalog", "custom", "--legend", "", "-o", file)...)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "<circle"))
}

func TestImportRequiresDatabase(t *testing.T) {
	_, err := run(t, "import", "stars.csv")
	assert.ErrorContains(t, err, "no catalog database")

	_, err = run(t, "--catalog-db", filepath.Join(t.TempDir(), "x.db"), "import", "stars.csv", "--id", "bright")
	assert.ErrorContains(t, err, "reserved")
}

func TestParseLabels(t *testing.T) {
	labels, err := parseLabels([]string{"677=Custom", " 27989 =Red Giant"})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{677: "Custom", 27989: "Red Giant"}, labels)

	_, err = parseLabels([]string{"x=Custom"})
	assert.Error(t, err)
	_, err = parseLabels([]string{"677"})
	assert.Error(t, err)
}
