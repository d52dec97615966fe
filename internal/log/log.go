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

// Package log sets up structured logging to the console, and optionally to a file
package log

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log output. Writes to the console, and optionally also to a file
type Output struct {
	Console io.Writer
	NoColor bool
	file    *os.File
	fileBuf *bufio.Writer
}

// Creates an output writing to the given console
func NewOutput(console io.Writer) *Output {
	return &Output{Console: console}
}

// Enables logging to file, truncating it. Closes a previously opened log file.
// Loggers created afterwards write to both console and file
func (o *Output) AlsoToFile(fileName string) error {
	if err := o.Close(); err != nil {
		return err
	}
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	o.file, o.fileBuf = f, bufio.NewWriter(f)
	return nil
}

// Flushes and closes the log file, if any
func (o *Output) Close() error {
	if o.file == nil {
		return nil
	}
	err := o.fileBuf.Flush()
	if cerr := o.file.Close(); err == nil {
		err = cerr
	}
	o.file, o.fileBuf = nil, nil
	return err
}

// Creates a logger with the given level name, writing in console format
func (o *Output) Logger(level string) zerolog.Logger {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: o.Console, TimeFormat: time.RFC3339, NoColor: o.NoColor},
	}
	if o.fileBuf != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: o.fileBuf, TimeFormat: time.RFC3339, NoColor: true})
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(ParseLevel(level))
}

// Parses a log level name. Unknown names map to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
