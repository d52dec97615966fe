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

// Package config loads settings from defaults, an optional config file and the environment
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Prefix of environment variables, e.g. STARCHART_LOG_LEVEL
const EnvPrefix = "STARCHART"

type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

type CatalogConfig struct {
	Dir         string  `json:"dir" mapstructure:"dir"`
	DB          string  `json:"db" mapstructure:"db"`
	CacheMemory float64 `json:"cacheMemory" mapstructure:"cacheMemory"` // fraction of physical memory
}

type ChartConfig struct {
	Width          int     `json:"width" mapstructure:"width"`
	Height         int     `json:"height" mapstructure:"height"`
	SizeMultiplier float64 `json:"sizeMultiplier" mapstructure:"sizeMultiplier"`
}

type ObserverConfig struct {
	Body string `json:"body" mapstructure:"body"`
}

type StyleConfig struct {
	File string `json:"file" mapstructure:"file"`
}

type ServeConfig struct {
	Addr   string `json:"addr" mapstructure:"addr"`
	Chroot string `json:"chroot" mapstructure:"chroot"`
	Setuid int    `json:"setuid" mapstructure:"setuid"`
}

// All settings
type Config struct {
	Log      LogConfig      `json:"log" mapstructure:"log"`
	Catalog  CatalogConfig  `json:"catalog" mapstructure:"catalog"`
	Chart    ChartConfig    `json:"chart" mapstructure:"chart"`
	Observer ObserverConfig `json:"observer" mapstructure:"observer"`
	Style    StyleConfig    `json:"style" mapstructure:"style"`
	Serve    ServeConfig    `json:"serve" mapstructure:"serve"`
}

// Sets default values on the given viper instance
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("catalog.dir", "./catalogs")
	v.SetDefault("catalog.db", "")
	v.SetDefault("catalog.cacheMemory", 0.25)

	v.SetDefault("chart.width", 1600)
	v.SetDefault("chart.height", 1200)
	v.SetDefault("chart.sizeMultiplier", 1.0)

	v.SetDefault("observer.body", "earth")

	v.SetDefault("style.file", "")

	v.SetDefault("serve.addr", "localhost:8080")
	v.SetDefault("serve.chroot", "")
	v.SetDefault("serve.setuid", -1)
}

// Loads settings into the given viper instance. If path is empty, looks for
// an optional starchart.json or starchart.yaml in the working directory.
// Environment variables override file settings
func Load(v *viper.Viper, path string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %v", err)
		}
		return nil
	}

	v.SetConfigName("starchart")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %v", err)
		}
	}
	return nil
}

// Decodes all settings into a typed configuration
func Get(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error decoding config: %v", err)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if !(c.Chart.SizeMultiplier > 0) {
		return nil, fmt.Errorf("invalid size multiplier %g", c.Chart.SizeMultiplier)
	}
	return c, nil
}
