// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"image"

	"cogentcore.org/compositor/window"
)

// The methods below change the window tree through the manager and then
// bring the graph and display of the affected root up to date.

// recompose repaints the region of the parent of w without running any
// paint routine, or the whole tree if w is a root.
func (e *Engine) recompose(p *window.Window) {
	if p == nil {
		return
	}
	e.Paint(p.Handle, NoPaint, false)
}

// Destroy destroys the window with its subtree and recomposes its parent.
func (e *Engine) Destroy(h window.Handle) {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("destroy", h)
		return
	}
	p := e.Windows.ParentOf(w)
	e.Windows.Destroy(h)
	e.recompose(p)
}

// Move moves the window to pos in the coordinates of its parent.
func (e *Engine) Move(h window.Handle, pos image.Point) {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("move", h)
		return
	}
	// the nimbus goes with the window; erase it at the old place first
	rendered := e.Nimbus.Rendered(h)
	if rendered {
		e.Nimbus.Erase(h)
	}
	e.Windows.Move(h, pos)
	if rendered {
		e.Nimbus.Enable(h)
	}
	e.refreshGlass(w)
	e.recompose(e.Windows.ParentOf(w))
}

// Resize resizes the window, repaints it and recomposes its parent.
func (e *Engine) Resize(h window.Handle, size image.Point) error {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("resize", h)
		return nil
	}
	if err := e.Windows.Resize(h, size); err != nil {
		return err
	}
	e.refreshGlass(w)
	if p := e.Windows.ParentOf(w); p != nil {
		e.Paint(h, RequestRefresh, false)
		e.recompose(p)
		return nil
	}
	e.Refresh(h)
	return nil
}

// SetVisible shows or hides the window and recomposes its parent.
func (e *Engine) SetVisible(h window.Handle, visible bool) {
	w := e.Windows.Get(h)
	if w == nil || w.Visible == visible {
		return
	}
	e.Windows.SetVisible(h, visible)
	e.recompose(e.Windows.ParentOf(w))
}

// Raise moves the window in front of its siblings.
func (e *Engine) Raise(h window.Handle) {
	e.restack(h, true)
}

// Lower moves the window behind its siblings.
func (e *Engine) Lower(h window.Handle) {
	e.restack(h, false)
}

func (e *Engine) restack(h window.Handle, front bool) {
	w := e.Windows.Get(h)
	if w == nil || w.IsRoot() {
		return
	}
	if front {
		e.Windows.Raise(h)
	} else {
		e.Windows.Lower(h)
	}
	p := e.Windows.ParentOf(w)
	for _, c := range p.Children() {
		if cw := e.Windows.Get(c); cw != nil {
			e.refreshGlass(cw)
		}
	}
	e.recompose(p)
}

// SetFocus focuses the window and updates the nimbus of the windows
// gaining and losing the focus.
func (e *Engine) SetFocus(h window.Handle) {
	old := e.Windows.SetFocus(h)
	if old == h {
		return
	}
	if old != 0 {
		e.Nimbus.Render(old, false, nil)
	}
	e.Nimbus.Render(h, false, nil)
}

// SetAction sets the interaction state of the window and updates its
// nimbus if it changed.
func (e *Engine) SetAction(h window.Handle, a window.Actions) {
	if e.Windows.SetAction(h, a) {
		e.Nimbus.Render(h, false, nil)
	}
}

// refreshGlass rebuilds the backdrop and content of w if it is a glass
// window, so the next composition shows what is now behind it.
func (e *Engine) refreshGlass(w *window.Window) {
	if !e.isGlass(w) {
		return
	}
	if err := e.RefreshBackgroundBuffer(w.Handle); err == nil {
		e.beginCycle()
		e.refresh(w, true)
		e.endCycle()
	}
}
