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

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"Error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf)
	o.NoColor = true
	logger := o.Logger("info")
	logger.Debug().Msg("hidden")
	logger.Info().Int("count", 3).Msg("Star count")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Star count")
	assert.Contains(t, out, "count=3")
}

func TestAlsoToFile(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf)
	path := filepath.Join(t.TempDir(), "starchart.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))
	require.NoError(t, o.AlsoToFile(path))

	logger := o.Logger("debug")
	logger.Debug().Str("catalog", "hipparcos").Msg("Loaded stars")
	require.NoError(t, o.Close())
	require.NoError(t, o.Close(), "closing twice is harmless")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Loaded stars")
	assert.Contains(t, string(content), "catalog=hipparcos")
	assert.NotContains(t, string(content), "stale")
	assert.NotContains(t, string(content), "\x1b[", "no colors in file")
	assert.Contains(t, buf.String(), "Loaded stars")
}

func TestAlsoToFileBadPath(t *testing.T) {
	o := NewOutput(&bytes.Buffer{})
	assert.Error(t, o.AlsoToFile(filepath.Join(t.TempDir(), "missing", "x.log")))
}
