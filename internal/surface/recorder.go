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

// An in-memory surface recording all calls. Setting one of the error
// fields makes the corresponding call fail without recording
type Recorder struct {
	Batches []ScatterBatch
	Texts   []Text
	Legend  []LegendEntry

	ScatterErr error
	TextErr    error
	LegendErr  error
}

func (r *Recorder) Scatter(b ScatterBatch) error {
	if r.ScatterErr != nil {
		return r.ScatterErr
	}
	if err := b.Validate(); err != nil {
		return err
	}
	r.Batches = append(r.Batches, b.clone())
	return nil
}

func (r *Recorder) PlaceText(t Text) error {
	if r.TextErr != nil {
		return r.TextErr
	}
	r.Texts = append(r.Texts, t)
	return nil
}

func (r *Recorder) AddLegend(e LegendEntry) error {
	if r.LegendErr != nil {
		return r.LegendErr
	}
	r.Legend = append(r.Legend, e)
	return nil
}

// Returns the texts placed with the given horizontal alignment, in call order
func (r *Recorder) TextsAligned(h HAlign) []string {
	var res []string
	for _, t := range r.Texts {
		if t.HAlign == h {
			res = append(res, t.Text)
		}
	}
	return res
}

func (b ScatterBatch) clone() ScatterBatch {
	b.X = append([]float64(nil), b.X...)
	b.Y = append([]float64(nil), b.Y...)
	b.Size = append([]float64(nil), b.Size...)
	b.Alpha = append([]float64(nil), b.Alpha...)
	b.Color = append([]string(nil), b.Color...)
	return b
}
