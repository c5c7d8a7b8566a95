// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"image"
	"log/slog"
	"slices"

	"cogentcore.org/compositor/geom"
	"cogentcore.org/compositor/paint"
	"cogentcore.org/compositor/window"
)

// Repaint cycles:
//
// A cycle starts with the outermost [Engine.Paint] or [Engine.Flush] call
// and ends when it returns. A window is painted at most once per cycle:
// its [window.Window.Update] state moves from UpdateNone (or UpdateWaiting
// after [Engine.Invalidate]) to UpdateRefreshed when its paint routine runs,
// and back to UpdateNone when the next cycle starts. Glass windows whose
// backdrop changed are the exception, as their content depends on it.

func (e *Engine) beginCycle() {
	if e.depth == 0 {
		for _, h := range e.refreshed {
			if w := e.Windows.Get(h); w != nil && w.Update == window.UpdateRefreshed {
				w.Update = window.UpdateNone
			}
		}
		e.refreshed = e.refreshed[:0]
	}
	e.depth++
}

func (e *Engine) endCycle() {
	e.depth--
}

func (e *Engine) markRefreshed(w *window.Window) {
	if w.Update != window.UpdateRefreshed {
		w.Update = window.UpdateRefreshed
		e.refreshed = append(e.refreshed, w.Handle)
	}
}

// refresh runs the paint routine of w on top of its background color or
// processed backdrop. It returns whether it ran.
func (e *Engine) refresh(w *window.Window, force bool) bool {
	if w.Pixels == nil || (w.Update == window.UpdateRefreshed && !force) {
		return false
	}
	// mark first so that a paint routine triggering a repaint of its
	// own window does not recurse
	e.markRefreshed(w)
	b := w.Pixels.Bounds()
	if w.Background != nil && w.Backdrop != nil {
		paint.Paste(w.Pixels, b, w.Backdrop, w.Backdrop.Bounds().Min)
	} else {
		paint.Fill(w.Pixels, b, w.Color)
	}
	if w.Painter != nil {
		w.Painter.Paint(w, w.Pixels)
	}
	return true
}

// Paint repaints the window and composites it onto the graph of its root.
//
// With [RequestRefresh] the paint routine of the window runs first, unless
// it already ran in this cycle; [MarkRefreshed] only marks the window as
// refreshed. The backing surface is then pasted at the visual rectangle of
// the window, followed by its children back to front: if cascade is set
// the mode applies to them as well, otherwise they are only re-pasted.
// Windows on top of the painted region are pasted again afterwards, with
// glass windows among them rebuilt if the content behind them changed.
// Last, the region is mapped onto the display and the edge nimbus
// highlights are drawn.
//
// Stale and invisible windows are ignored.
func (e *Engine) Paint(h window.Handle, mode PaintModes, cascade bool) {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("paint", h)
		return
	}
	e.beginCycle()
	defer e.endCycle()

	vr, ok := e.VisualRect(h)
	if !ok {
		// still honor the refresh so the surface is current once shown
		switch mode {
		case RequestRefresh:
			e.refresh(w, false)
		case MarkRefreshed:
			e.markRefreshed(w)
		}
		return
	}
	root := e.Windows.RootOf(w)
	changed := e.paintTree(w, root, vr, mode, cascade, false)
	for _, o := range e.SiblingOverlaps(h, vr) {
		ow := e.Windows.Get(o.Window)
		if ow == nil {
			continue
		}
		e.paintTree(ow, root, o.Rect, NoPaint, false, changed)
	}
	e.Nimbus.Render(h, false, &vr)
}

// paintTree refreshes w according to mode and pastes it with its subtree
// onto the graph of root, clipped to clip. behind is whether the content
// behind w changed. It returns whether the content of w or any of its
// descendants changed.
func (e *Engine) paintTree(w, root *window.Window, clip image.Rectangle, mode PaintModes, cascade, behind bool) bool {
	if !w.Visible {
		return false
	}
	r, ok := geom.Intersect(w.Rect(), clip)
	if !ok {
		return false
	}
	changed := false
	if behind && e.isGlass(w) {
		if err := e.RefreshBackgroundBuffer(w.Handle); err == nil {
			changed = e.refresh(w, true)
		}
	} else {
		switch mode {
		case RequestRefresh:
			changed = e.refresh(w, false)
		case MarkRefreshed:
			e.markRefreshed(w)
		}
	}
	paint.Paste(root.Graph, r, w.Pixels, r.Min.Sub(w.Pos))

	kidMode := NoPaint
	if cascade {
		kidMode = mode
	}
	sub := changed
	for _, c := range w.Children() {
		cw := e.Windows.Get(c)
		if cw == nil {
			continue
		}
		// earlier siblings are part of the backdrop of later ones
		if e.paintTree(cw, root, r, kidMode, cascade, sub) {
			sub = true
		}
	}
	return sub
}

// Refresh repaints the whole tree of the given root.
func (e *Engine) Refresh(root window.Handle) {
	e.Paint(root, RequestRefresh, true)
}

// Invalidate requests a repaint of the window at the next [Engine.Flush].
// Requests are coalesced: a window waits at most once.
func (e *Engine) Invalidate(h window.Handle) {
	w := e.Windows.Get(h)
	if w == nil {
		e.logStale("invalidate", h)
		return
	}
	if w.Update == window.UpdateWaiting {
		return
	}
	w.Update = window.UpdateWaiting
	e.waiting = append(e.waiting, h)
}

// Waiting returns the number of windows waiting for a repaint.
func (e *Engine) Waiting() int {
	return len(e.waiting)
}

// Flush paints all windows waiting for a repaint in one cycle, with their
// children. Windows are painted back to front, so a window whose ancestor
// was painted in the same flush is not painted again.
func (e *Engine) Flush() int {
	if len(e.waiting) == 0 {
		return 0
	}
	e.beginCycle()
	defer e.endCycle()

	waiting := e.waiting
	e.waiting = nil
	slices.SortStableFunc(waiting, func(a, b window.Handle) int {
		return e.Windows.ZIndex(a) - e.Windows.ZIndex(b)
	})
	n := 0
	for _, h := range waiting {
		w := e.Windows.Get(h)
		if w == nil || w.Update != window.UpdateWaiting {
			continue
		}
		w.Update = window.UpdateNone
		e.Paint(h, RequestRefresh, true)
		n++
	}
	slog.Debug("layout: flushed", "painted", n, "requested", len(waiting))
	return n
}
