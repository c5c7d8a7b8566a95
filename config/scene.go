// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/compositor/bground"
	"cogentcore.org/compositor/layout"
	"cogentcore.org/compositor/window"
)

// Scene describes a root window and the tree of windows inside it.
type Scene struct {

	// Width and Height are the size of the root window.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Color is the background color of the root window.
	Color string `toml:"color" yaml:"color"`

	// Windows are the children of the root window, back to front.
	Windows []Window `toml:"windows" yaml:"windows"`
}

// Window describes a window of a [Scene].
type Window struct {

	// Name identifies the window in logs and lookups.
	Name string `toml:"name" yaml:"name"`

	// X and Y are the position of the window in its parent.
	X int `toml:"x" yaml:"x"`
	Y int `toml:"y" yaml:"y"`

	// Width and Height are the size of the window.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Color is the background color of the window.
	Color string `toml:"color,omitempty" yaml:"color,omitempty"`

	// Highlight is the nimbus color; it defaults to [Nimbus.Highlight].
	Highlight string `toml:"highlight,omitempty" yaml:"highlight,omitempty"`

	// Nimbus is when the nimbus is shown: none, active, hover or both.
	Nimbus string `toml:"nimbus,omitempty" yaml:"nimbus,omitempty"`

	// Background is the background effect; it defaults to [Background.Default].
	Background string `toml:"background,omitempty" yaml:"background,omitempty"`

	// Hidden windows are not shown.
	Hidden bool `toml:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Disabled windows show no nimbus.
	Disabled bool `toml:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Focus focuses the window after the scene is built.
	Focus bool `toml:"focus,omitempty" yaml:"focus,omitempty"`

	// Hover hovers the window after the scene is built.
	Hover bool `toml:"hover,omitempty" yaml:"hover,omitempty"`

	// Children are the child windows, back to front.
	Children []Window `toml:"children,omitempty" yaml:"children,omitempty"`
}

func (sc *Scene) clamp() {
	sc.Width = max(sc.Width, 1)
	sc.Height = max(sc.Height, 1)
	for i := range sc.Windows {
		sc.Windows[i].clamp()
	}
}

func (w *Window) clamp() {
	w.Width = max(w.Width, 0)
	w.Height = max(w.Height, 0)
	for i := range w.Children {
		w.Children[i].clamp()
	}
}

// builder builds the windows of a scene into an engine.
type builder struct {
	e         *layout.Engine
	highlight color.RGBA
	bg        string
	focus     []window.Handle
	hover     []window.Handle
	errs      []error
}

// Build creates the scene described by s in the engine and paints it.
// Invalid colors and effects are reported in the returned error, with
// the defaults used in their place; the root window is returned unless
// it could not be created.
func (s *Settings) Build(e *layout.Engine) (*window.Window, error) {
	e.Nimbus.Thickness = s.Nimbus.Thickness
	sc := &s.Scene
	root, err := e.Windows.NewRoot("root", image.Pt(sc.Width, sc.Height))
	if err != nil {
		return nil, fmt.Errorf("config: scene: %w", err)
	}
	b := &builder{e: e, bg: s.Background.Default}
	b.highlight, err = ParseColor(s.Nimbus.Highlight, root.Highlight)
	b.errs = append(b.errs, err)
	root.Color, err = ParseColor(sc.Color, root.Color)
	b.errs = append(b.errs, err)
	for i := range sc.Windows {
		b.add(root.Handle, &sc.Windows[i])
	}
	e.Refresh(root.Handle)
	for _, h := range b.focus {
		e.SetFocus(h)
	}
	for _, h := range b.hover {
		e.SetAction(h, window.ActionHovered)
	}
	return root, errors.Join(b.errs...)
}

func (b *builder) add(parent window.Handle, ws *Window) {
	e := b.e
	w, err := e.Windows.New(parent, ws.Name, image.Rect(ws.X, ws.Y, ws.X+ws.Width, ws.Y+ws.Height))
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("config: window %q: %w", ws.Name, err))
		return
	}
	w.Color, err = ParseColor(ws.Color, w.Color)
	b.errs = append(b.errs, err)
	w.Highlight, err = ParseColor(ws.Highlight, b.highlight)
	b.errs = append(b.errs, err)
	w.Visible = !ws.Hidden
	w.Enabled = !ws.Disabled

	if ws.Nimbus != "" {
		mode, ok := window.ParseNimbusMode(ws.Nimbus)
		if !ok {
			b.errs = append(b.errs, fmt.Errorf("config: window %q: invalid nimbus mode %q", ws.Name, ws.Nimbus))
		}
		e.Nimbus.SetMode(w.Handle, mode)
	}

	bg := ws.Background
	if bg == "" {
		bg = b.bg
	}
	effect, err := bground.Parse(bg)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("config: window %q: %w", ws.Name, err))
	}
	if effect != nil {
		w.Background = effect
		e.EnableBackgroundEffect(w.Handle, true)
	}

	if ws.Focus {
		b.focus = append(b.focus, w.Handle)
	}
	if ws.Hover {
		b.hover = append(b.hover, w.Handle)
	}
	for i := range ws.Children {
		b.add(w.Handle, &ws.Children[i])
	}
}
