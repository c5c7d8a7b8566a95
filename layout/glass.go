// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"image"
	"slices"

	"cogentcore.org/compositor/base/errors"
	"cogentcore.org/compositor/bground"
	"cogentcore.org/compositor/paint"
	"cogentcore.org/compositor/window"
)

// isGlass returns whether w is registered for background effects.
func (e *Engine) isGlass(w *window.Window) bool {
	return slices.Contains(e.glass[w.Root()], w.Handle)
}

func (e *Engine) unregisterGlass(w *window.Window) bool {
	hs := e.glass[w.Root()]
	i := slices.Index(hs, w.Handle)
	if i < 0 {
		return false
	}
	e.glass[w.Root()] = slices.Delete(hs, i, i+1)
	w.Backdrop = nil
	return true
}

// GlassWindows returns the windows of the tree of root registered for
// background effects, in registration order.
func (e *Engine) GlassWindows(root window.Handle) []window.Handle {
	return slices.Clone(e.glass[root])
}

// EnableBackgroundEffect adds the window to or removes it from the
// background effect registry of its root. When added, its backdrop is
// built right away. It returns whether the registration changed, and
// false for roots and stale windows.
func (e *Engine) EnableBackgroundEffect(h window.Handle, enabled bool) bool {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("enable background effect", h)
		return false
	}
	if w.IsRoot() {
		return false
	}
	if e.isGlass(w) {
		if enabled {
			return false
		}
		return e.unregisterGlass(w)
	}
	if !enabled {
		return false
	}
	e.glass[w.Root()] = append(e.glass[w.Root()], h)
	errors.Log(e.RefreshBackgroundBuffer(h))
	return true
}

// SetBackground sets the background effect of the window and registers or
// unregisters it accordingly, then repaints it. A nil effect removes it.
func (e *Engine) SetBackground(h window.Handle, effect bground.Effect) {
	w := e.Windows.Get(h)
	if w == nil || w.IsRoot() {
		return
	}
	w.Background = effect
	if !e.EnableBackgroundEffect(h, effect != nil) && effect != nil {
		errors.Log(e.RefreshBackgroundBuffer(h))
	}
	e.Paint(h, RequestRefresh, false)
}

// RefreshBackgroundBuffer rebuilds the backdrop of a window with a
// background effect: what lies behind it (its parent and the earlier
// siblings with their subtrees) is captured into a new buffer and
// processed by the effect. If the buffer cannot be allocated the previous
// backdrop is kept and the error is returned. Windows without an effect
// and stale windows are ignored.
func (e *Engine) RefreshBackgroundBuffer(h window.Handle) error {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("refresh background", h)
		return nil
	}
	p := e.Windows.ParentOf(w)
	if p == nil || w.Background == nil {
		return nil
	}
	buf, err := paint.NewImage(w.Size)
	if err != nil {
		return fmt.Errorf("layout: backdrop of %v: %w", w, err)
	}
	rect := w.Rect()
	paint.Paste(buf, buf.Bounds(), p.Pixels, rect.Min.Sub(p.Pos))
	for _, sh := range p.Children() {
		if sh == h {
			break
		}
		if sw := e.Windows.Get(sh); sw != nil {
			e.pasteTree(sw, buf, rect.Min, rect)
		}
	}
	out := w.Background.Apply(buf, w.Color)
	if out == nil {
		out = buf
	}
	// effects return images with any origin; backdrops start at (0, 0)
	if out.Rect.Min != (image.Point{}) {
		out.Rect = out.Rect.Sub(out.Rect.Min)
	}
	w.Backdrop = out
	return nil
}
