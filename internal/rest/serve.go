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

package rest

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mlnoga/starchart/internal/catalog"
	"github.com/mlnoga/starchart/internal/chart"
	"github.com/mlnoga/starchart/internal/sky"
	"github.com/mlnoga/starchart/internal/star"
	"github.com/mlnoga/starchart/internal/style"
	"github.com/mlnoga/starchart/internal/surface"
	"github.com/mlnoga/starchart/internal/where"
	"github.com/mlnoga/starchart/web"
)

// REST server rendering star charts. Safe for concurrent requests,
// each request renders its own chart
type Server struct {
	Catalogs       catalog.Provider // shared between requests, e.g. a catalog.Cache
	Style          *style.Style
	Observer       string // default observer body
	Width          int    // default image size
	Height         int
	SizeMultiplier float64
	Logger         zerolog.Logger
}

// Returns the HTTP routes of the server
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	r.GET("/", getIndex)
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/stars", s.postStars)
			v1.POST("/identify", s.postIdentify)
		}
	}
	return r
}

// Listens and serves on the given address until an error occurs
func (s *Server) Serve(addr string) error {
	s.Logger.Info().Str("addr", addr).Msg("Serving")
	return s.Router().Run(addr)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug().Str("method", c.Request.Method).Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).Dur("duration", time.Since(start)).Msg("Request")
	}
}

func getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// Request to render stars. Optional fields default to the star plotting defaults
type starsRequest struct {
	Viewport    sky.Viewport     `json:"viewport"`
	Time        *time.Time       `json:"time"`
	Observer    string           `json:"observer"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Format      string           `json:"format"` // png or svg
	Mag         *float64         `json:"mag"`
	LabelMag    *float64         `json:"labelMag"`
	Catalog     catalog.ID       `json:"catalog"`
	Rasterize   bool             `json:"rasterize"`
	ColorByBV   bool             `json:"colorByBV"`
	Where       where.List       `json:"where"`
	WhereText   []string         `json:"whereText"`
	Labels      map[int64]string `json:"labels"`
	NoLabels    bool             `json:"noLabels"`
	Legend      *string          `json:"legend"`
	BayerLabels bool             `json:"bayerLabels"`
}

func (s *Server) options(req *starsRequest) (chart.StarsOptions, error) {
	opts := chart.DefaultStarsOptions()
	if req.Mag != nil {
		opts.Mag = *req.Mag
	}
	if req.LabelMag != nil {
		opts.LabelMag = *req.LabelMag
	}
	if req.Catalog != "" {
		opts.Catalog = req.Catalog
	}
	opts.Rasterize = req.Rasterize
	if req.ColorByBV {
		opts.ColorFn = star.ColorByBV
	}
	opts.Where = append(opts.Where, req.Where...)
	parsed, err := where.ParseAll(req.WhereText)
	if err != nil {
		return opts, fmt.Errorf("%w: %w", chart.ErrConfiguration, err)
	}
	opts.Where = append(opts.Where, parsed...)
	if req.NoLabels {
		opts.Labels = nil
	} else if req.Labels != nil {
		opts.Labels = req.Labels
	}
	if req.Legend != nil {
		opts.Legend = *req.Legend
	}
	opts.BayerLabels = req.BayerLabels
	return opts, nil
}

func (s *Server) frame(req *starsRequest) (*surface.Frame, error) {
	w, h := req.Width, req.Height
	if w == 0 {
		w = s.Width
	}
	if h == 0 {
		h = s.Height
	}
	if w <= 0 || h <= 0 || w > 16384 || h > 16384 {
		return nil, fmt.Errorf("%w: image size %dx%d", chart.ErrConfiguration, w, h)
	}
	vp := req.Viewport
	if err := vp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", chart.ErrConfiguration, err)
	}
	return surface.NewFrame(vp.RAMin*15, vp.RAMax*15, vp.DecMin, vp.DecMax, w, h)
}

// Renders the stars of the request onto the given surface
func (s *Server) render(req *starsRequest, surf surface.Surface) (*chart.Chart, error) {
	body := req.Observer
	if body == "" {
		body = s.Observer
	}
	obs, err := sky.NewObserver(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chart.ErrConfiguration, err)
	}
	cfg := chart.Config{
		Viewport:       req.Viewport,
		Observer:       obs,
		Catalogs:       s.Catalogs,
		Style:          s.Style,
		Surface:        surf,
		SizeMultiplier: s.SizeMultiplier,
		Logger:         &s.Logger,
	}
	if req.Time != nil {
		cfg.Time = *req.Time
	}
	ch, err := chart.New(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := s.options(req)
	if err != nil {
		return nil, err
	}
	return ch, ch.Stars(opts)
}

func (s *Server) postStars(c *gin.Context) {
	var req starsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	frame, err := s.frame(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := ""
	switch req.Format {
	case "", "png":
		r := surface.NewRaster(frame, s.background())
		if _, err = s.render(&req, r); err == nil {
			err = r.WritePNG(&buf)
		}
		contentType = "image/png"
	case "svg":
		v := surface.NewSVG(frame, s.background())
		if _, err = s.render(&req, v); err == nil {
			err = v.WriteSVG(&buf)
		}
		contentType = "image/svg+xml"
	default:
		err = fmt.Errorf("%w: unknown format %q", chart.ErrConfiguration, req.Format)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Request to identify the star nearest to a pixel of a rendered chart
type identifyRequest struct {
	starsRequest
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) postIdentify(c *gin.Context) {
	var req identifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	frame, err := s.frame(&req.starsRequest)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ch, err := s.render(&req.starsRequest, &surface.Recorder{})
	if err != nil {
		abortWithError(c, err)
		return
	}
	x, y := frame.ToPlot(req.X, req.Y)
	st, dist, ok := ch.Nearest(x/15, y)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stars rendered"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"star": st, "distance": dist})
}

func (s *Server) background() style.Color {
	if s.Style == nil {
		return style.Default().BackgroundColor
	}
	return s.Style.BackgroundColor
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, chart.ErrConfiguration) || errors.Is(err, chart.ErrPredicate) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
