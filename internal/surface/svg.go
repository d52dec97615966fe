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
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/mlnoga/starchart/internal/style"
)

// A vector surface producing SVG. Scatter batches with Rasterize set are
// embedded as PNG images
type SVG struct {
	Frame      *Frame
	Background style.Color
	Scale      float64 // pixels per point
	elems      []svgElem
	legend     []LegendEntry
}

type svgElem struct {
	zOrder int
	markup string
}

// Creates an SVG surface for the given frame and background color
func NewSVG(frame *Frame, background style.Color) *SVG {
	return &SVG{Frame: frame, Background: background, Scale: 1}
}

func (s *SVG) Scatter(b ScatterBatch) error {
	r := &Raster{Frame: s.Frame, Scale: s.Scale}
	markers, err := r.rasterMarkers(&b)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if b.Rasterize {
		layer := image.NewNRGBA(image.Rect(0, 0, s.Frame.Width, s.Frame.Height))
		for _, m := range markers {
			m.draw(layer)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, layer); err != nil {
			return err
		}
		fmt.Fprintf(&sb, `<image x="0" y="0" width="%d" height="%d" href="data:image/png;base64,%s"/>`,
			s.Frame.Width, s.Frame.Height, base64.StdEncoding.EncodeToString(buf.Bytes()))
	} else {
		sb.WriteString("<g>")
		for _, m := range markers {
			writeSVGMarker(&sb, m)
		}
		sb.WriteString("</g>")
	}
	s.elems = append(s.elems, svgElem{b.ZOrder, sb.String()})
	return nil
}

func writeSVGMarker(sb *strings.Builder, m rasterMarker) {
	fill, opacity := hexOf(m.fill), float64(m.fill.A)/255
	stroke := `stroke="none"`
	if m.hasEdge {
		stroke = fmt.Sprintf(`stroke="%s" stroke-width="1" stroke-opacity="%.3g"`, hexOf(m.edge), float64(m.edge.A)/255)
	}
	if m.symbol == style.SymbolSquare {
		fmt.Fprintf(sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.3g" %s/>`,
			m.x-m.r, m.y-m.r, 2*m.r, 2*m.r, fill, opacity, stroke)
		return
	}
	fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3g" %s/>`,
		m.x, m.y, m.r, fill, opacity, stroke)
}

func (s *SVG) PlaceText(t Text) error {
	c := style.Color(t.Color)
	if _, err := c.Colorful(); err != nil {
		return err
	}
	px, py := s.Frame.ToPixel(t.X, t.Y)
	offset := t.Offset * s.Scale

	anchor := "middle"
	switch t.HAlign {
	case Left:
		anchor, px = "start", px+offset
	case Right:
		anchor, px = "end", px-offset
	}
	baseline := "central"
	switch t.VAlign {
	case Top:
		baseline, py = "hanging", py+offset
	case Bottom:
		baseline, py = "text-after-edge", py-offset
	}
	col := c.NRGBA(t.Alpha)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s" font-size="%.3g" fill="%s" fill-opacity="%.3g">`,
		px, py, anchor, baseline, t.FontSize*s.Scale, hexOf(col), float64(col.A)/255)
	if err := xml.EscapeText(&sb, []byte(t.Text)); err != nil {
		return err
	}
	sb.WriteString("</text>")
	s.elems = append(s.elems, svgElem{t.ZOrder, sb.String()})
	return nil
}

func (s *SVG) AddLegend(e LegendEntry) error {
	if _, err := style.Color(e.Color).Colorful(); err != nil {
		return err
	}
	s.legend = append(s.legend, e)
	return nil
}

// Writes the SVG document to the given file
func (s *SVG) WriteSVGToFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := s.WriteSVG(writer); err != nil {
		return err
	}
	return writer.Flush()
}

// Writes the SVG document
func (s *SVG) WriteSVG(w io.Writer) error {
	elems := make([]svgElem, len(s.elems))
	copy(elems, s.elems)
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].zOrder < elems[j].zOrder })

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.Frame.Width, s.Frame.Height, s.Frame.Width, s.Frame.Height)
	fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexOf(s.Background.NRGBA(1)))
	for _, e := range elems {
		sb.WriteString(e.markup)
		sb.WriteString("\n")
	}
	for i, e := range s.legend {
		y := 12 + float64(i)*16
		c := style.Color(e.Color).NRGBA(1)
		fmt.Fprintf(&sb, `<circle cx="12" cy="%.0f" r="%.2f" fill="%s"/>`, y, math.Min(6, s.radius(e.Size)), hexOf(c))
		fmt.Fprintf(&sb, `<text x="24" y="%.0f" dominant-baseline="central" font-size="11" fill="%s">`, y, hexOf(c))
		if err := xml.EscapeText(&sb, []byte(e.Label)); err != nil {
			return err
		}
		sb.WriteString("</text>\n")
	}
	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (s *SVG) radius(size float64) float64 {
	return (&Raster{Scale: s.Scale}).radius(size)
}

func hexOf(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
