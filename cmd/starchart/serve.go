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
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mlnoga/starchart/internal/rest"
	"github.com/mlnoga/starchart/internal/sky"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve star charts via a REST API and web UI",
		Long: `Serves the web UI on / and the REST API on /api/v1. Catalogs are opened
before the optional sandbox is entered, so a chroot need not contain them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
	f := cmd.Flags()
	f.String("addr", "localhost:8080", "listen on `address`")
	f.String("chroot", "", "change filesystem root to `dir` before serving")
	f.Int("setuid", -1, "change user id to `uid` before serving, -1 to keep")
	a.bind(cmd, "serve.addr", "addr")
	a.bind(cmd, "serve.chroot", "chroot")
	a.bind(cmd, "serve.setuid", "setuid")
	return cmd
}

func (a *app) serve() error {
	if _, err := sky.NewObserver(a.cfg.Observer.Body); err != nil {
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
	if err := rest.MakeSandbox(a.cfg.Serve.Chroot, a.cfg.Serve.Setuid, a.logger); err != nil {
		return err
	}
	if a.cfg.Log.Level != "debug" && a.cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &rest.Server{
		Catalogs:       cats,
		Style:          st,
		Observer:       a.cfg.Observer.Body,
		Width:          a.cfg.Chart.Width,
		Height:         a.cfg.Chart.Height,
		SizeMultiplier: a.cfg.Chart.SizeMultiplier,
		Logger:         a.logger,
	}
	return s.Serve(a.cfg.Serve.Addr)
}
