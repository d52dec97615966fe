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
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/config"
	"github.com/mlnoga/starchart/internal/log"
	"github.com/mlnoga/starchart/internal/style"
)

const version = "0.1.0"

const banner = `Starchart Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.`

// State shared by all commands of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	out     *log.Output
	logger  zerolog.Logger
	store   *catalog.Store
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// Builds the command tree, logging to the given writer
func newRootCmd(w io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: log.NewOutput(w), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "starchart",
		Short: "Renders star charts from astrometric catalogs",
		Long: banner + `

Selects stars from a catalog by sky window, magnitude and predicates, projects
them to their apparent positions for an observer, and renders them as PNG or
SVG, with names and Bayer designations as labels.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.close()
	}
	root.SetOut(w)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "read settings from `file` (json, yaml or toml)")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error or off")
	pf.String("log-file", "", "also write log output to `file`")
	pf.String("catalog-dir", "./catalogs", "directory holding <catalog>.csv files")
	pf.String("catalog-db", "", "SQLite catalog database `file`")
	a.bind(root, "log.level", "log-level")
	a.bind(root, "log.file", "log-file")
	a.bind(root, "catalog.dir", "catalog-dir")
	a.bind(root, "catalog.db", "catalog-db")

	root.AddCommand(
		a.newRenderCmd(),
		a.newServeCmd(),
		a.newImportCmd(),
		a.newCatalogsCmd(),
		newLegalCmd(),
		newVersionCmd(),
	)
	return root
}

// Binds a persistent flag to a configuration key. Flags given on the command
// line override the config file and environment
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// Loads configuration and initializes logging
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.Load(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Get(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.Log.File != "" {
		if err := a.out.AlsoToFile(cfg.Log.File); err != nil {
			return fmt.Errorf("unable to open logfile '%s': %w", cfg.Log.File, err)
		}
	}
	a.logger = a.out.Logger(cfg.Log.Level)
	return nil
}

func (a *app) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if cerr := a.out.Close(); err == nil {
		err = cerr
	}
	return err
}

// Returns the catalog database, opening it on first use. Nil if none is configured
func (a *app) openStore() (*catalog.Store, error) {
	if a.store != nil || a.cfg.Catalog.DB == "" {
		return a.store, nil
	}
	s, err := catalog.OpenStore(a.cfg.Catalog.DB, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

// Returns the catalog provider: built-in catalogs, the database and the CSV directory,
// behind a memory-bounded cache
func (a *app) catalogs() (catalog.Provider, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	r := &catalog.Resolver{Store: store}
	if a.cfg.Catalog.Dir != "" {
		r.Dir = &catalog.DirProvider{Dir: a.cfg.Catalog.Dir}
	}
	return catalog.NewCache(r, a.cfg.Catalog.CacheMemory, a.logger), nil
}

// Returns the configured style, or the default style
func (a *app) style() (*style.Style, error) {
	if a.cfg.Style.File == "" {
		return style.Default(), nil
	}
	return style.Load(a.cfg.Style.File)
}
