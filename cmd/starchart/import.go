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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlnoga/starchart/internal/catalog"
)

func (a *app) newImportCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "import file.csv",
		Short: "Import a CSV star catalog into the catalog database",
		Long: `Reads a CSV star catalog and stores it in the SQLite catalog database given
by --catalog-db, replacing any catalog with the same ID. The CSV needs a header
row naming at least the ra_hours, dec_degrees and magnitude columns. Optional
columns are hip, bv, pm_ra, pm_dec and parallax.`,
		Example: `  starchart --catalog-db stars.db import hip_main.csv --id hipparcos`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importCSV(args[0], catalog.ID(id))
		},
	}
	cmd.Flags().StringVar(&id, "id", string(catalog.Hipparcos), "catalog ID to import as")
	return cmd
}

func (a *app) importCSV(path string, id catalog.ID) error {
	if id.IsSynthetic() || id == catalog.Bright || id == "" {
		return fmt.Errorf("cannot import into reserved catalog ID %q", id)
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("no catalog database configured, use --catalog-db")
	}
	c, err := catalog.ReadCSVFile(path, id)
	if err != nil {
		return err
	}
	return store.Import(id, c.Rows)
}

func (a *app) newCatalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List available star catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.listCatalogs()
			if err != nil {
				return err
			}
			for _, id := range ids {
				cmd.Println(id)
			}
			return nil
		},
	}
}

// Lists the built-in catalogs, those in the database and those in the CSV directory
func (a *app) listCatalogs() ([]string, error) {
	ids := []string{string(catalog.Bright), string(catalog.Synthetic(1000))}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	if store != nil {
		stored, err := store.Catalogs()
		if err != nil {
			return nil, err
		}
		for _, id := range stored {
			ids = append(ids, string(id))
		}
	}
	if a.cfg.Catalog.Dir != "" {
		found, err := catalog.DirProvider{Dir: a.cfg.Catalog.Dir}.Catalogs()
		if err != nil {
			return nil, err
		}
		for _, id := range found {
			ids = append(ids, string(id)+" (csv)")
		}
	}
	return ids, nil
}
