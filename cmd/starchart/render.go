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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/chart"
	"github.com/mlnoga/starchart/internal/sky"
	"github.com/mlnoga/starchart/internal/star"
	"github.com/mlnoga/starchart/internal/surface"
	"github.com/mlnoga/starchart/internal/where"
)

type renderFlags struct {
	viewport  sky.Viewport
	time      string
	mag       float64
	labelMag  float64
	catalog   string
	where     []string
	labels    []string
	noLabels  bool
	legend    string
	bayer     bool
	colorByBV bool
	rasterize bool
	out       string
	list      string
}

func (a *app) newRenderCmd() *cobra.Command {
	rf := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a star chart to a PNG or SVG file",
		Long: `Renders the stars of a sky window to a file. The output format follows the
file extension, .png or .svg.

Windows crossing 0h are given with --ra-max above 24 or --ra-min below 0,
e.g. --ra-min 22 --ra-max 26. Predicates use the syntax
  magnitude < 4 and (bv >= 0.5 or name == "Sirius")
and override the magnitude limit.`,
		Example: `  starchart render --ra-min 4.5 --ra-max 6.5 --dec-min -12 --dec-max 12 --mag 5 -o orion.png
  starchart render --catalog bright --where "bv > 1" --bayer -o red.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.OutOrStdout(), rf)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&rf.viewport.RAMin, "ra-min", 0, "lower right ascension bound in hours")
	f.Float64Var(&rf.viewport.RAMax, "ra-max", 24, "upper right ascension bound in hours, may exceed 24")
	f.Float64Var(&rf.viewport.DecMin, "dec-min", -90, "lower declination bound in degrees")
	f.Float64Var(&rf.viewport.DecMax, "dec-max", 90, "upper declination bound in degrees")
	f.StringVar(&rf.time, "time", "", "observation time in RFC3339 format, default now")
	f.Float64Var(&rf.mag, "mag", 6, "faintest magnitude to plot, +Inf for no limit")
	f.Float64Var(&rf.labelMag, "label-mag", 6, "faintest magnitude to label")
	f.StringVar(&rf.catalog, "catalog", string(catalog.Hipparcos), "star catalog: hipparcos, tycho-1, bright, synthetic:<n> or a CSV file name")
	f.StringArrayVarP(&rf.where, "where", "w", nil, "only plot stars matching the predicate, may be repeated")
	f.StringArrayVar(&rf.labels, "label", nil, "label override as `hip=name`, may be repeated")
	f.BoolVar(&rf.noLabels, "no-labels", false, "do not label stars with names")
	f.StringVar(&rf.legend, "legend", "Star", "legend entry for stars, empty for none")
	f.BoolVar(&rf.bayer, "bayer", false, "also label stars with Bayer designations")
	f.BoolVar(&rf.colorByBV, "color-by-bv", false, "color stars by B-V color index")
	f.BoolVar(&rf.rasterize, "rasterize", false, "embed star markers as raster image into SVG output")
	f.StringVarP(&rf.out, "out", "o", "chart.png", "save chart to `file`, .png or .svg")
	f.StringVar(&rf.list, "list", "", "save rendered stars as CSV to `file`, - for standard output")
	f.Int("width", 1600, "image width in pixels")
	f.Int("height", 1200, "image height in pixels")
	f.Float64("size-multiplier", 1, "scale marker and font sizes")
	f.String("observer", "earth", "observer: earth or barycenter")
	f.String("style", "", "read chart style from `file`")
	a.bind(cmd, "chart.width", "width")
	a.bind(cmd, "chart.height", "height")
	a.bind(cmd, "chart.sizeMultiplier", "size-multiplier")
	a.bind(cmd, "observer.body", "observer")
	a.bind(cmd, "style.file", "style")
	return cmd
}

func (a *app) render(stdout io.Writer, rf *renderFlags) error {
	start := time.Now()
	opts, err := rf.options()
	if err != nil {
		return err
	}
	t, err := rf.observationTime()
	if err != nil {
		return err
	}
	obs, err := sky.NewObserver(a.cfg.Observer.Body)
	if err != nil {
		return err
	}
	st, err := a.style()
	if err != nil {
		return err
	}
	cats, err := a.catalogs()
	if err != nil {
		return err
	}
	vp := rf.viewport
	if err := vp.Validate(); err != nil {
		return err
	}
	frame, err := surface.NewFrame(vp.RAMin*15, vp.RAMax*15, vp.DecMin, vp.DecMax, a.cfg.Chart.Width, a.cfg.Chart.Height)
	if err != nil {
		return err
	}

	var surf surface.Surface
	var write func(string) error
	switch ext := strings.ToLower(filepath.Ext(rf.out)); ext {
	case ".png":
		r := surface.NewRaster(frame, st.BackgroundColor)
		surf, write = r, r.WritePNGToFile
	case ".svg":
		s := surface.NewSVG(frame, st.BackgroundColor)
		surf, write = s, s.WriteSVGToFile
	default:
		return fmt.Errorf("unsupported output format %q, use .png or .svg", ext)
	}

	ch, err := chart.New(chart.Config{
		Viewport:       vp,
		Time:           t,
		Observer:       obs,
		Catalogs:       cats,
		Style:          st,
		Surface:        surf,
		SizeMultiplier: a.cfg.Chart.SizeMultiplier,
		Logger:         &a.logger,
	})
	if err != nil {
		return err
	}
	if err := ch.Stars(opts); err != nil {
		return err
	}
	if err := write(rf.out); err != nil {
		return err
	}
	if err := listStars(stdout, rf.list, ch.Objects.Stars); err != nil {
		return err
	}
	a.logger.Info().Str("file", rf.out).Int("stars", len(ch.Objects.Stars)).Str("viewport", vp.String()).
		Dur("duration", time.Since(start)).Msg("Wrote chart")
	return nil
}

// Translates the flags into star plotting options
func (rf *renderFlags) options() (chart.StarsOptions, error) {
	opts := chart.DefaultStarsOptions()
	opts.Mag = rf.mag
	opts.LabelMag = rf.labelMag
	opts.Catalog = catalog.ID(rf.catalog)
	opts.Rasterize = rf.rasterize
	opts.Legend = rf.legend
	opts.BayerLabels = rf.bayer
	if rf.colorByBV {
		opts.ColorFn = star.ColorByBV
	}

	preds, err := where.ParseAll(rf.where)
	if err != nil {
		return opts, err
	}
	opts.Where = preds

	if rf.noLabels {
		opts.Labels = nil
	} else if len(rf.labels) > 0 {
		labels, err := parseLabels(rf.labels)
		if err != nil {
			return opts, err
		}
		opts.Labels = labels
	}
	return opts, nil
}

func (rf *renderFlags) observationTime() (time.Time, error) {
	if rf.time == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, rf.time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", rf.time, err)
	}
	return t, nil
}

// Writes the stars as CSV to the given file, or to stdout for "-"
func listStars(stdout io.Writer, fileName string, stars []star.Star) error {
	switch fileName {
	case "":
		return nil
	case "-":
		star.PrintStars(stdout, stars)
		return nil
	}
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	star.PrintStars(writer, stars)
	return writer.Flush()
}

// Parses label overrides of the form hip=name
func parseLabels(specs []string) (map[int64]string, error) {
	labels := make(map[int64]string, len(specs))
	for _, s := range specs {
		k, name, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid label %q, expected hip=name", s)
		}
		hip, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid label %q: %w", s, err)
		}
		labels[hip] = name
	}
	return labels, nil
}
