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

package style

import (
	"fmt"

	"github.com/spf13/viper"
)

// Loads a style from a JSON, YAML or TOML file. Attributes missing
// from the file keep their default values
func Load(path string) (*Style, error) {
	v := viper.New()
	SetDefaults(v, "")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading style %s: %w", path, err)
	}
	s := &Style{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding style %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("style %s: %w", path, err)
	}
	return s, nil
}

// Registers the default style attributes on the given viper instance, below the given key prefix
func SetDefaults(v *viper.Viper, prefix string) {
	d := Default()
	if prefix != "" {
		prefix += "."
	}
	v.SetDefault(prefix+"backgroundColor", string(d.BackgroundColor))
	setMarkerDefaults(v, prefix+"star.marker.", d.Star.Marker)
	setLabelDefaults(v, prefix+"star.label.", d.Star.Label)
	setLabelDefaults(v, prefix+"bayerLabels.", d.BayerLabels)
}

func setMarkerDefaults(v *viper.Viper, prefix string, m MarkerStyle) {
	v.SetDefault(prefix+"symbol", m.Symbol)
	v.SetDefault(prefix+"size", m.Size)
	v.SetDefault(prefix+"alpha", m.Alpha)
	v.SetDefault(prefix+"color", string(m.Color))
	v.SetDefault(prefix+"edgeColor", string(m.EdgeColor))
	v.SetDefault(prefix+"zorder", m.ZOrder)
}

func setLabelDefaults(v *viper.Viper, prefix string, l LabelStyle) {
	v.SetDefault(prefix+"fontSize", l.FontSize)
	v.SetDefault(prefix+"color", string(l.Color))
	v.SetDefault(prefix+"alpha", l.Alpha)
	v.SetDefault(prefix+"offset", l.Offset)
	v.SetDefault(prefix+"zorder", l.ZOrder)
}
