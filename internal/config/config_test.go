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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "starchart.json")
	cfg := `{
		"log": { "level": "debug" },
		"chart": { "width": 800, "sizeMultiplier": 1.5 },
		"catalog": { "db": "stars.db" }
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	v := viper.New()
	require.NoError(t, Load(v, path))
	c, err := Get(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 800, c.Chart.Width)
	assert.Equal(t, 1200, c.Chart.Height)
	assert.Equal(t, 1.5, c.Chart.SizeMultiplier)
	assert.Equal(t, "stars.db", c.Catalog.DB)
	assert.Equal(t, "./catalogs", c.Catalog.Dir)
}

func TestLoad_DefaultValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	c, err := Get(v)
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "", c.Log.File)
	assert.Equal(t, "./catalogs", c.Catalog.Dir)
	assert.Equal(t, "", c.Catalog.DB)
	assert.Equal(t, 0.25, c.Catalog.CacheMemory)
	assert.Equal(t, 1600, c.Chart.Width)
	assert.Equal(t, 1200, c.Chart.Height)
	assert.Equal(t, 1.0, c.Chart.SizeMultiplier)
	assert.Equal(t, "earth", c.Observer.Body)
	assert.Equal(t, "", c.Style.File)
	assert.Equal(t, "localhost:8080", c.Serve.Addr)
	assert.Equal(t, "", c.Serve.Chroot)
	assert.Equal(t, -1, c.Serve.Setuid)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STARCHART_CHART_WIDTH", "640")
	t.Setenv("STARCHART_OBSERVER_BODY", "barycenter")

	v := viper.New()
	require.NoError(t, Load(v, ""))
	c, err := Get(v)
	require.NoError(t, err)
	assert.Equal(t, 640, c.Chart.Width)
	assert.Equal(t, "barycenter", c.Observer.Body)
}

func TestLoad_MissingFile(t *testing.T) {
	err := Load(viper.New(), "/nonexistent/path/starchart.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGet_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("chart.width", 0)
	_, err := Get(v)
	assert.Error(t, err)

	v = viper.New()
	SetDefaults(v)
	v.Set("chart.sizeMultiplier", -2)
	_, err = Get(v)
	assert.Error(t, err)
}
