// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the settings of the compositor and the scenes
// it renders, loaded from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Limits applied by [Settings.Clamp].
const (
	MaxFPS       = 240
	MaxThickness = 8
)

// Settings are the settings of the compositor.
type Settings struct {

	// FPS is the rate of animation frames; invalidated windows are
	// repainted once per frame.
	FPS int `toml:"fps" yaml:"fps"`

	// LogLevel is the minimum level of log messages:
	// debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Nimbus are the edge nimbus settings.
	Nimbus Nimbus `toml:"nimbus" yaml:"nimbus"`

	// Background are the background effect settings.
	Background Background `toml:"background" yaml:"background"`

	// Scene is the window tree to render.
	Scene Scene `toml:"scene" yaml:"scene"`
}

// Nimbus are the edge nimbus settings.
type Nimbus struct {

	// Thickness is how far the nimbus extends outside of windows, in pixels.
	Thickness int `toml:"thickness" yaml:"thickness"`

	// Highlight is the default nimbus color, as a hex string.
	Highlight string `toml:"highlight" yaml:"highlight"`
}

// Background are the background effect settings.
type Background struct {

	// Default is the effect of windows that do not set one:
	// none, transparent(N) or blur(N).
	Default string `toml:"default" yaml:"default"`
}

// Defaults returns the default settings.
func Defaults() *Settings {
	return &Settings{
		FPS:      30,
		LogLevel: "warn",
		Nimbus: Nimbus{
			Thickness: 2,
			Highlight: "#0078d7",
		},
		Background: Background{Default: "none"},
		Scene: Scene{
			Width:  400,
			Height: 300,
			Color:  "#ffffff",
		},
	}
}

// Clamp brings out of range values back into range. Invalid values are
// never rejected.
func (s *Settings) Clamp() {
	if s.FPS <= 0 {
		s.FPS = Defaults().FPS
	}
	s.FPS = min(s.FPS, MaxFPS)
	s.Nimbus.Thickness = min(max(s.Nimbus.Thickness, 1), MaxThickness)
	s.Scene.clamp()
}

// Formats are the supported settings file formats.
type Formats int32

const (
	TOML Formats = iota
	YAML
)

// FormatOf returns the format of the given file name from its extension.
func FormatOf(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("config: %s: unsupported file extension", filename)
}

// Open reads the settings from the given TOML or YAML file. Values it
// does not set keep their defaults.
func Open(filename string) (*Settings, error) {
	f, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	s, err := Read(data, f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return s, nil
}

// Read decodes settings in the given format on top of the defaults.
// Unknown fields are an error.
func Read(data []byte, f Formats) (*Settings, error) {
	s := Defaults()
	switch f {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document decodes to nothing
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	s.Clamp()
	return s, nil
}

// Save writes the settings to the given file, in the format of its extension.
func Save(s *Settings, filename string) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case TOML:
		data, err = toml.Marshal(s)
	case YAML:
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(filename, data, 0666)
}

// ParseColor parses a hex color such as "#0078d7". An empty string
// returns def.
func ParseColor(s string, def color.RGBA) (color.RGBA, error) {
	if s == "" {
		return def, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return def, fmt.Errorf("config: color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}
