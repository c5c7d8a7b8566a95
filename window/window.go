// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window provides the window tree the compositor operates on:
// an arena of [Window] nodes indexed by stable [Handle] values and
// managed by a [Manager].
package window

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/compositor/bground"
	"golang.org/x/image/draw"
)

// Handle identifies a window within a [Manager]. Handles are never
// reused, and the zero Handle is never valid.
type Handle uint64

// Painter is implemented by windows that draw their own content.
type Painter interface {

	// Paint draws the content of w into dst, which is w's backing
	// surface with its origin at w's top-left corner. When Paint is
	// called dst already holds w's background color or, for windows
	// with a background effect, its processed backdrop.
	Paint(w *Window, dst *image.RGBA)
}

// PainterFunc is a function that implements [Painter].
type PainterFunc func(w *Window, dst *image.RGBA)

func (f PainterFunc) Paint(w *Window, dst *image.RGBA) { f(w, dst) }

// Window is one node of the window tree. Its fields are owned by the
// [Manager] and the compositor, which run on a single goroutine.
type Window struct {

	// Handle is the unique identity of the window.
	Handle Handle

	// Name is used for lookups and logging.
	Name string

	// Pos is the top-left corner of the window in root coordinates.
	Pos image.Point

	// Size is the width and height of the window.
	Size image.Point

	// Visible is whether the window is shown; hidden windows hide
	// their whole subtree.
	Visible bool

	// Enabled is whether the window accepts interaction.
	Enabled bool

	// Action is the current interaction state.
	Action Actions

	// ActionBefore is the interaction state before the last change,
	// used to detect effect transitions.
	ActionBefore Actions

	// Nimbus selects when the edge nimbus is drawn around the window.
	Nimbus NimbusModes

	// Background is the background effect applied to the backdrop
	// behind the window, or nil.
	Background bground.Effect

	// Update is the repaint state within the current cycle.
	Update UpdateStates

	// Color is the background color the window is filled with
	// before it is painted.
	Color color.RGBA

	// Highlight is the color of the edge nimbus.
	Highlight color.RGBA

	// Painter draws the window content, if set.
	Painter Painter

	// Pixels is the backing surface of the window, sized to it.
	Pixels *image.RGBA

	// Backdrop is the processed content behind the window for
	// windows with a [Window.Background] effect.
	Backdrop *image.RGBA

	// Graph is the composited surface of a root window: every visible
	// window of the tree pasted in z-order. It is nil for other windows.
	Graph *image.RGBA

	// Display is the surface a root window is presented on. Composited
	// regions are mapped from Graph onto it and edge nimbus highlights
	// are drawn on it. It is nil for other windows.
	Display draw.Image

	parent   Handle
	root     Handle
	children []Handle
	focus    Handle
}

// Rect returns the rectangle of the window in root coordinates.
func (w *Window) Rect() image.Rectangle {
	return image.Rectangle{Min: w.Pos, Max: w.Pos.Add(w.Size)}
}

// IsRoot returns whether the window is the root of its tree.
func (w *Window) IsRoot() bool {
	return w.parent == 0
}

// Parent returns the handle of the parent, which is zero for roots.
func (w *Window) Parent() Handle { return w.parent }

// Root returns the handle of the root window of the tree.
func (w *Window) Root() Handle { return w.root }

// Children returns the children in z-order, back to front.
// The slice must not be modified.
func (w *Window) Children() []Handle { return w.children }

func (w *Window) String() string {
	if w == nil {
		return "<nil window>"
	}
	if w.Name != "" {
		return fmt.Sprintf("%s#%d", w.Name, w.Handle)
	}
	return fmt.Sprintf("window#%d", w.Handle)
}
