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

package surface

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"sort"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/mlnoga/starchart/internal/style"
)

// Magic constant for approximating a quarter circle with a cubic Bézier curve
const kappa = 0.5522847498

// A raster surface, rendered into an image on demand. Draw operations are
// recorded and replayed in z-order, ties in call order. Text is set in Go
// Regular at its font size times Scale, or in a fixed 7x13 face if the
// font size is zero
type Raster struct {
	Frame      *Frame
	Background style.Color
	Scale      float64 // pixels per point
	ops        []drawOp
	legend     []LegendEntry
	faces      map[float64]font.Face
}

var (
	goRegular     *opentype.Font
	goRegularErr  error
	goRegularOnce sync.Once
)

// Returns the font face for the given size in points. Sizes are
// rounded to quarter pixels so faces can be shared between labels
func (r *Raster) face(size float64) font.Face {
	px := math.Round(size*r.Scale*4) / 4
	if !(px > 0) || math.IsInf(px, 0) {
		return basicfont.Face7x13
	}
	if f, ok := r.faces[px]; ok {
		return f
	}
	goRegularOnce.Do(func() { goRegular, goRegularErr = opentype.Parse(goregular.TTF) })
	if goRegularErr != nil {
		return basicfont.Face7x13
	}
	f, err := opentype.NewFace(goRegular, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return basicfont.Face7x13
	}
	if r.faces == nil {
		r.faces = make(map[float64]font.Face)
	}
	r.faces[px] = f
	return f
}

type drawOp struct {
	zOrder int
	draw   func(dst *image.NRGBA)
}

// Creates a raster surface for the given frame and background color
func NewRaster(frame *Frame, background style.Color) *Raster {
	return &Raster{Frame: frame, Background: background, Scale: 1}
}

func (r *Raster) Scatter(b ScatterBatch) error {
	markers, err := r.rasterMarkers(&b)
	if err != nil {
		return err
	}
	r.ops = append(r.ops, drawOp{b.ZOrder, func(dst *image.NRGBA) {
		for _, m := range markers {
			m.draw(dst)
		}
	}})
	return nil
}

type rasterMarker struct {
	symbol  string
	x, y, r float64
	fill    color.NRGBA
	edge    color.NRGBA
	hasEdge bool
}

func (m rasterMarker) draw(dst draw.Image) {
	if m.hasEdge {
		fillShape(dst, m.symbol, m.x, m.y, m.r+0.5, m.edge)
	}
	fillShape(dst, m.symbol, m.x, m.y, m.r, m.fill)
}

// Validates a batch and converts it into pixel space
func (r *Raster) rasterMarkers(b *ScatterBatch) ([]rasterMarker, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	var edge style.Color
	if b.EdgeColor != "" {
		edge = style.Color(b.EdgeColor)
		if _, err := edge.Colorful(); err != nil {
			return nil, err
		}
	}
	markers := make([]rasterMarker, b.Len())
	for i := range markers {
		c := style.Color(b.Color[i])
		if _, err := c.Colorful(); err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		px, py := r.Frame.ToPixel(b.X[i], b.Y[i])
		markers[i] = rasterMarker{
			symbol:  b.Marker,
			x:       px,
			y:       py,
			r:       r.radius(b.Size[i]),
			fill:    c.NRGBA(b.Alpha[i]),
			edge:    edge.NRGBA(b.Alpha[i]),
			hasEdge: edge != "",
		}
	}
	return markers, nil
}

// Marker radius in pixels for a marker area in points squared
func (r *Raster) radius(size float64) float64 {
	if !(size > 0) {
		return 0.5
	}
	return math.Max(0.5, math.Sqrt(size)/2*r.Scale)
}

func (r *Raster) PlaceText(t Text) error {
	c := style.Color(t.Color)
	if _, err := c.Colorful(); err != nil {
		return err
	}
	px, py := r.Frame.ToPixel(t.X, t.Y)
	col := c.NRGBA(t.Alpha)
	face := r.face(t.FontSize)
	r.ops = append(r.ops, drawOp{t.ZOrder, func(dst *image.NRGBA) {
		drawText(dst, face, t.Text, px, py, t.HAlign, t.VAlign, t.Offset*r.Scale, col)
	}})
	return nil
}

func (r *Raster) AddLegend(e LegendEntry) error {
	if _, err := style.Color(e.Color).Colorful(); err != nil {
		return err
	}
	r.legend = append(r.legend, e)
	return nil
}

// Renders all recorded operations into a new image
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Frame.Width, r.Frame.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background.NRGBA(1)), image.Point{}, draw.Src)
	r.renderOps(img)
	r.drawLegend(img)
	return img
}

func (r *Raster) renderOps(img *image.NRGBA) {
	ops := make([]drawOp, len(r.ops))
	copy(ops, r.ops)
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].zOrder < ops[j].zOrder })
	for _, op := range ops {
		op.draw(img)
	}
}

func (r *Raster) drawLegend(img *image.NRGBA) {
	face := basicfont.Face7x13
	for i, e := range r.legend {
		y := 12 + float64(i)*16
		rad := math.Min(6, r.radius(e.Size))
		alpha := e.Alpha
		if alpha == 0 {
			alpha = 1
		}
		fillShape(img, e.Marker, 12, y, rad, style.Color(e.Color).NRGBA(alpha))
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(style.Color(e.Color).NRGBA(1)),
			Face: face,
			Dot:  fixed.P(24, int(y)+face.Metrics().Ascent.Round()/2),
		}
		d.DrawString(e.Label)
	}
}

// Writes the rendered image as PNG to the given file
func (r *Raster) WritePNGToFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := r.WritePNG(writer); err != nil {
		return err
	}
	return writer.Flush()
}

// Writes the rendered image as PNG
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

// Fills a marker shape centered on the given pixel coordinates
func fillShape(dst draw.Image, symbol string, cx, cy, radius float64, c color.Color) {
	x0, y0 := int(math.Floor(cx-radius)), int(math.Floor(cy-radius))
	x1, y1 := int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius))
	rect := image.Rect(x0, y0, x1, y1)
	if rect.Empty() || !rect.Overlaps(dst.Bounds()) {
		return
	}
	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	ox, oy, rr := float32(cx-float64(x0)), float32(cy-float64(y0)), float32(radius)
	switch symbol {
	case style.SymbolSquare:
		z.MoveTo(ox-rr, oy-rr)
		z.LineTo(ox+rr, oy-rr)
		z.LineTo(ox+rr, oy+rr)
		z.LineTo(ox-rr, oy+rr)
		z.ClosePath()
	default:
		k := rr * kappa
		z.MoveTo(ox+rr, oy)
		z.CubeTo(ox+rr, oy+k, ox+k, oy+rr, ox, oy+rr)
		z.CubeTo(ox-k, oy+rr, ox-rr, oy+k, ox-rr, oy)
		z.CubeTo(ox-rr, oy-k, ox-k, oy-rr, ox, oy-rr)
		z.CubeTo(ox+k, oy-rr, ox+rr, oy-k, ox+rr, oy)
		z.ClosePath()
	}
	z.Draw(dst, rect, image.NewUniform(c), image.Point{})
}

// Draws text anchored at the given pixel coordinates
func drawText(dst draw.Image, face font.Face, text string, px, py float64, h HAlign, v VAlign, offset float64, c color.Color) {
	d := font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	width := float64(d.MeasureString(text).Ceil())
	m := face.Metrics()
	ascent, descent := float64(m.Ascent.Ceil()), float64(m.Descent.Ceil())

	x := px - width/2
	switch h {
	case Left:
		x = px + offset
	case Right:
		x = px - width - offset
	}
	baseline := py + (ascent-descent)/2
	switch v {
	case Top:
		baseline = py + offset + ascent
	case Bottom:
		baseline = py - offset - descent
	}
	d.Dot = fixed.P(int(math.Round(x)), int(math.Round(baseline)))
	d.DrawString(text)
}
