// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bground provides background effects: transforms applied to the
// backdrop captured behind a window before the window paints over it.
package bground

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/draw"
)

// Effect transforms a captured backdrop. Implementations must not modify
// the backdrop and must return the same result for the same input.
type Effect interface {

	// Apply returns the transformed backdrop; bg is the background
	// color of the window the backdrop belongs to.
	Apply(backdrop *image.RGBA, bg color.Color) *image.RGBA

	fmt.Stringer
}

// Transparent blends the window background color into the backdrop,
// making the window look semi-transparent.
type Transparent struct {

	// Percent is the opacity of the background color in the range
	// [0, 100]; values outside it are clamped.
	Percent int
}

// Clamped returns the percent clamped to [0, 100].
func (t Transparent) Clamped() int {
	return min(max(t.Percent, 0), 100)
}

func (t Transparent) Apply(backdrop *image.RGBA, bg color.Color) *image.RGBA {
	p := t.Clamped()
	if p == 0 || backdrop == nil {
		return backdrop
	}
	b := backdrop.Bounds()
	fg := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(fg, fg.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return blend.Opacity(backdrop, fg, float64(p)/100)
}

func (t Transparent) String() string {
	return fmt.Sprintf("transparent(%d)", t.Clamped())
}

// Blur applies a box blur to the backdrop.
type Blur struct {

	// Radius is the blur radius in pixels.
	Radius int
}

func (bl Blur) Apply(backdrop *image.RGBA, bg color.Color) *image.RGBA {
	if backdrop == nil {
		return nil
	}
	if bl.Radius <= 0 {
		return clone.AsRGBA(backdrop)
	}
	return blur.Box(backdrop, float64(bl.Radius))
}

func (bl Blur) String() string {
	return fmt.Sprintf("blur(%d)", max(bl.Radius, 0))
}

// Parse returns the effect described by s, which is one of
// "none", "", "transparent(N)" or "blur(N)". A nil effect means none.
func Parse(s string) (Effect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	name, arg, ok := strings.Cut(strings.TrimSuffix(s, ")"), "(")
	if !ok {
		return nil, fmt.Errorf("bground.Parse: missing argument in %q", s)
	}
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(arg), "%d", &n); err != nil {
		return nil, fmt.Errorf("bground.Parse: invalid argument in %q: %w", s, err)
	}
	switch strings.TrimSpace(name) {
	case "transparent":
		return Transparent{Percent: n}, nil
	case "blur":
		return Blur{Radius: n}, nil
	}
	return nil, fmt.Errorf("bground.Parse: unknown effect %q", name)
}
