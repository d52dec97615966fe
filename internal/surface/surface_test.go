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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform2D(t *testing.T) {
	p1, p2, p3 := Point2D{0, 0}, Point2D{10, 0}, Point2D{0, 5}
	q1, q2, q3 := Point2D{1, 2}, Point2D{21, 2}, Point2D{1, -8}
	tr, err := NewTransform2D(p1, p2, p3, q1, q2, q3)
	require.NoError(t, err)
	for i, p := range []Point2D{p1, p2, p3} {
		got := tr.Apply(p)
		want := []Point2D{q1, q2, q3}[i]
		assert.InDelta(t, want.X, got.X, 1e-9)
		assert.InDelta(t, want.Y, got.Y, 1e-9)
	}

	inv, err := tr.Invert()
	require.NoError(t, err)
	back := inv.Apply(tr.Apply(Point2D{3.5, -7}))
	assert.InDelta(t, 3.5, back.X, 1e-9)
	assert.InDelta(t, -7, back.Y, 1e-9)

	_, err = NewTransform2D(p1, p2, Point2D{20, 0}, q1, q2, q3)
	assert.Error(t, err)

	singular := Transform2D{1, 2, 0, 2, 4, 0}
	_, err = singular.Invert()
	assert.Error(t, err)

	id := IdentityTransform2D()
	assert.Equal(t, Point2D{4, 5}, id.Apply(Point2D{4, 5}))
}

func TestFrame(t *testing.T) {
	f, err := NewFrame(330, 390, -10, 10, 600, 200)
	require.NoError(t, err)

	px, py := f.ToPixel(330, 10)
	assert.InDelta(t, 600, px, 1e-9, "ra increases to the left")
	assert.InDelta(t, 0, py, 1e-9)

	px, py = f.ToPixel(390, -10)
	assert.InDelta(t, 0, px, 1e-9)
	assert.InDelta(t, 200, py, 1e-9)

	// one hour past 0h maps like 375 degrees
	px, _ = f.ToPixel(15, 0)
	assert.InDelta(t, 150, px, 1e-9)

	x, y := f.ToPlot(150, 100)
	assert.InDelta(t, 375, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	_, err = NewFrame(10, 10, 0, 1, 10, 10)
	assert.Error(t, err)
	_, err = NewFrame(0, 10, 0, 1, 0, 10)
	assert.Error(t, err)
}

func batch(n int) ScatterBatch {
	b := ScatterBatch{Marker: "point", EdgeColor: "#ffffff", ZOrder: 1}
	for i := 0; i < n; i++ {
		b.X = append(b.X, 10+float64(i))
		b.Y = append(b.Y, 0)
		b.Size = append(b.Size, 100)
		b.Alpha = append(b.Alpha, 1)
		b.Color = append(b.Color, "#ff0000")
	}
	return b
}

func TestBatchValidate(t *testing.T) {
	b := batch(3)
	require.NoError(t, b.Validate())
	b.Alpha = b.Alpha[:2]
	assert.ErrorIs(t, b.Validate(), ErrBatch)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	b := batch(2)
	require.NoError(t, r.Scatter(b))
	b.X[0] = -1
	assert.Equal(t, 10.0, r.Batches[0].X[0], "recorded batch is a copy")

	require.NoError(t, r.PlaceText(Text{Text: "Sirius", HAlign: Left}))
	require.NoError(t, r.PlaceText(Text{Text: "α CMa", HAlign: Right}))
	assert.Equal(t, []string{"Sirius"}, r.TextsAligned(Left))
	assert.Equal(t, []string{"α CMa"}, r.TextsAligned(Right))

	boom := errors.New("boom")
	r.ScatterErr = boom
	assert.ErrorIs(t, r.Scatter(batch(1)), boom)
	assert.Len(t, r.Batches, 1)
}

func TestRasterDrawsMarkers(t *testing.T) {
	f, err := NewFrame(0, 40, -10, 10, 80, 40)
	require.NoError(t, err)
	r := NewRaster(f, "#000000")
	require.NoError(t, r.Scatter(ScatterBatch{
		X: []float64{20}, Y: []float64{0}, Size: []float64{64}, Alpha: []float64{1},
		Color: []string{"#ffffff"}, Marker: "circle",
	}))
	require.NoError(t, r.PlaceText(Text{X: 20, Y: 0, Text: "Vega", HAlign: Left, VAlign: Top, Color: "#00ff00", Alpha: 1}))
	require.NoError(t, r.AddLegend(LegendEntry{Label: "Star", Marker: "point", Color: "#ffffff", Size: 16}))

	img := r.Image()
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(40, 20), "marker center")
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, img.NRGBAAt(79, 39), "background")

	green := 0
	for y := 20; y < 40; y++ {
		for x := 40; x < 80; x++ {
			if c := img.NRGBAAt(x, y); c.G > 128 && c.R < 128 {
				green++
			}
		}
	}
	assert.Greater(t, green, 0, "label drawn below right of the star")

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

// Returns the number of image rows holding green pixels
func greenRows(img *image.NRGBA) int {
	rows := 0
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if c := img.NRGBAAt(x, y); c.G > 128 && c.R < 128 {
				rows++
				break
			}
		}
	}
	return rows
}

func TestRasterTextFollowsFontSize(t *testing.T) {
	f, err := NewFrame(0, 40, -10, 10, 200, 100)
	require.NoError(t, err)
	heights := map[float64]int{}
	for _, size := range []float64{8, 24} {
		r := NewRaster(f, "#000000")
		require.NoError(t, r.PlaceText(Text{X: 40, Y: 10, Text: "H", HAlign: Left, VAlign: Top,
			FontSize: size, Color: "#00ff00", Alpha: 1}))
		heights[size] = greenRows(r.Image())
	}
	assert.Greater(t, heights[8], 0)
	assert.Greater(t, heights[24], 2*heights[8])

	r := NewRaster(f, "#000000")
	r.Scale = 3
	assert.Same(t, r.face(8), r.face(8), "faces are shared")
	assert.Equal(t, NewRaster(f, "#000000").face(24).Metrics().Height, r.face(8).Metrics().Height, "scale multiplies font size")
}

func TestRasterZOrder(t *testing.T) {
	f, err := NewFrame(0, 40, -10, 10, 80, 40)
	require.NoError(t, err)
	r := NewRaster(f, "#000000")
	top := ScatterBatch{X: []float64{20}, Y: []float64{0}, Size: []float64{64}, Alpha: []float64{1},
		Color: []string{"#0000ff"}, Marker: "square", ZOrder: 2}
	bottom := top
	bottom.Color, bottom.ZOrder = []string{"#ff0000"}, 1
	require.NoError(t, r.Scatter(top))
	require.NoError(t, r.Scatter(bottom))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, r.Image().NRGBAAt(40, 20))
}

func TestRasterRejectsBadBatch(t *testing.T) {
	f, err := NewFrame(0, 40, -10, 10, 80, 40)
	require.NoError(t, err)
	r := NewRaster(f, "#000000")
	b := batch(3)
	b.Color[2] = "red"
	assert.Error(t, r.Scatter(b))
	assert.Empty(t, r.ops, "failed batch leaves no partial output")
	assert.Error(t, r.PlaceText(Text{Text: "x", Color: "bad"}))
	assert.Error(t, r.AddLegend(LegendEntry{Label: "x", Color: "bad"}))
}

func TestSVG(t *testing.T) {
	f, err := NewFrame(0, 40, -10, 10, 80, 40)
	require.NoError(t, err)
	s := NewSVG(f, "#ffffff")
	require.NoError(t, s.Scatter(batch(2)))
	require.NoError(t, s.PlaceText(Text{X: 20, Y: 0, Text: "A & B", HAlign: Right, VAlign: Bottom, FontSize: 8, Color: "#000", Alpha: 1}))
	require.NoError(t, s.AddLegend(LegendEntry{Label: "Star", Marker: "point", Color: "#000000", Size: 16}))

	var buf bytes.Buffer
	require.NoError(t, s.WriteSVG(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Equal(t, 3, strings.Count(out, "<circle "), "two markers and one legend marker")
	assert.Contains(t, out, `text-anchor="end"`)
	assert.Contains(t, out, "A &amp; B")
	assert.Contains(t, out, `stroke="#ffffff"`)
	assert.NotContains(t, out, "<image ")
}

func TestSVGRasterized(t *testing.T) {
	f, err := NewFrame(0, 40, -10, 10, 80, 40)
	require.NoError(t, err)
	s := NewSVG(f, "#ffffff")
	b := batch(2)
	b.Rasterize = true
	require.NoError(t, s.Scatter(b))

	var buf bytes.Buffer
	require.NoError(t, s.WriteSVG(&buf))
	out := buf.String()
	assert.Contains(t, out, `href="data:image/png;base64,`)
	assert.Equal(t, 0, strings.Count(out, "<circle "))
}
