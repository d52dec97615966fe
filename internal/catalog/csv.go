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

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Reads a catalog from CSV with a header line. Recognized columns are
// hip (or id), ra_hours, dec_degrees, magnitude, bv, pm_ra, pm_dec and parallax.
// Position and magnitude columns are mandatory. Empty hip or bv cells
// mark the value as absent
func ReadCSV(r io.Reader, id ID) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["hip"]; !ok {
		if i, ok := cols["id"]; ok {
			cols["hip"] = i
		}
	}
	for _, req := range []string{"ra_hours", "dec_degrees", "magnitude"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("CSV header lacks column %q", req)
		}
	}

	rows := []Row{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return &Catalog{ID: id, Rows: rows}, nil
}

func parseRow(rec []string, cols map[string]int) (row Row, err error) {
	field := func(name string) (v float64, present bool, err error) {
		i, ok := cols[name]
		if !ok || i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
			return 0, false, nil
		}
		v, err = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return 0, false, fmt.Errorf("column %s: %w", name, err)
		}
		return v, !math.IsNaN(v) && !math.IsInf(v, 0), nil
	}
	mandatory := func(name string) (float64, error) {
		v, ok, err := field(name)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("column %s: missing value", name)
		}
		return v, nil
	}

	if row.RAHours, err = mandatory("ra_hours"); err != nil {
		return row, err
	}
	if row.DecDegrees, err = mandatory("dec_degrees"); err != nil {
		return row, err
	}
	if row.Magnitude, err = mandatory("magnitude"); err != nil {
		return row, err
	}
	hip, hasHIP, err := field("hip")
	if err != nil {
		return row, err
	}
	if hasHIP && (hip != math.Trunc(hip) || math.Abs(hip) >= 1<<63) {
		return row, fmt.Errorf("column hip: %v is not an integer identifier", hip)
	}
	row.ID, row.HasID = int64(hip), hasHIP
	if row.BV, row.HasBV, err = field("bv"); err != nil {
		return row, err
	}
	if row.PMRA, _, err = field("pm_ra"); err != nil {
		return row, err
	}
	if row.PMDec, _, err = field("pm_dec"); err != nil {
		return row, err
	}
	if row.Parallax, _, err = field("parallax"); err != nil {
		return row, err
	}
	return row, nil
}

// Reads a catalog from the CSV file at the given path
func ReadCSVFile(path string, id ID) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, id)
}

// Loads catalogs from <Dir>/<id>.csv
type DirProvider struct {
	Dir string
}

func (p DirProvider) path(id ID) string {
	return filepath.Join(p.Dir, string(id)+".csv")
}

func (p DirProvider) Load(id ID) (*Catalog, error) {
	if strings.ContainsAny(string(id), `/\`) || strings.Contains(string(id), "..") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, id)
	}
	path := p.path(id)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownCatalog, id, err)
	}
	return ReadCSVFile(path, id)
}

// Lists the IDs of the CSV catalogs in the directory
func (p DirProvider) Catalogs() ([]ID, error) {
	paths, err := filepath.Glob(filepath.Join(p.Dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	ids := make([]ID, len(paths))
	for i, path := range paths {
		ids[i] = ID(strings.TrimSuffix(filepath.Base(path), ".csv"))
	}
	return ids, nil
}
