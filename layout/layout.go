// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout computes the visual rectangles of the windows of a tree
// and composites them onto the graph of their root.
//
// Compositing logic:
//
//   - Each window has a backing surface ([window.Window.Pixels]) that its
//     painter draws into. Painting a window refreshes that surface and then
//     pastes it, clipped to the window's visual rectangle, onto the graph of
//     the root, followed by its children back to front and by the windows
//     on top of it that overlap the painted region.
//   - Windows with a background effect ("glass" windows) draw over a
//     backdrop made of what lies behind them, processed by their effect.
//     Whenever the content behind a glass window changes, its backdrop is
//     rebuilt and the window repainted.
//   - Finally the painted region is mapped from the graph onto the display
//     and the edge nimbus highlights are drawn, always as the top layer.
//
// Visual rectangles are never cached: they are derived from the current
// geometry of the window and its ancestors on every call.
//
// The engine is not safe for concurrent use; see package dispatch for the
// single goroutine that owns it.
package layout

import (
	"image"
	"log/slog"
	"slices"

	"cogentcore.org/compositor/geom"
	"cogentcore.org/compositor/nimbus"
	"cogentcore.org/compositor/paint"
	"cogentcore.org/compositor/window"
	"golang.org/x/image/draw"
)

// PaintModes select what [Engine.Paint] does with the paint routine of
// a window.
type PaintModes int32

const (
	// NoPaint only composites the current backing surface.
	NoPaint PaintModes = iota

	// MarkRefreshed marks the window as refreshed in the current cycle
	// without running its paint routine.
	MarkRefreshed

	// RequestRefresh runs the paint routine unless the window has
	// already been refreshed in the current cycle.
	RequestRefresh
)

func (m PaintModes) String() string {
	switch m {
	case NoPaint:
		return "NoPaint"
	case MarkRefreshed:
		return "MarkRefreshed"
	case RequestRefresh:
		return "RequestRefresh"
	}
	return "PaintModes(?)"
}

// Overlap is a window paired with a rectangle in root coordinates.
type Overlap = nimbus.Overlap

// Engine is the window layout engine for the trees of one [window.Manager].
type Engine struct {

	// Windows is the window arena.
	Windows *window.Manager

	// Nimbus is the edge nimbus compositor, driven by [Engine.Paint].
	Nimbus *nimbus.Compositor

	// glass is the background effect registry, per root.
	glass map[window.Handle][]window.Handle

	// refreshed are the windows refreshed in the current cycle.
	refreshed []window.Handle

	// waiting are the windows invalidated and not yet painted.
	waiting []window.Handle

	// depth is the nesting depth of paint calls.
	depth int
}

// New returns a new [Engine] for the given manager.
func New(m *window.Manager) *Engine {
	e := &Engine{Windows: m, glass: map[window.Handle][]window.Handle{}}
	e.Nimbus = nimbus.New(m, e)
	m.OnDestroy(e.destroyed)
	return e
}

func (e *Engine) destroyed(w *window.Window) {
	if w.IsRoot() {
		delete(e.glass, w.Handle)
		return
	}
	e.unregisterGlass(w)
}

// VisualRect returns the part of the rectangle of the window that is not
// clipped away by its ancestors, in root coordinates. It returns false if
// the window or any ancestor is hidden, or if nothing of it remains.
func (e *Engine) VisualRect(h window.Handle) (image.Rectangle, bool) {
	w := e.Windows.Get(h)
	if w == nil || !w.Visible {
		return image.Rectangle{}, false
	}
	r := w.Rect()
	if geom.Empty(r) {
		return image.Rectangle{}, false
	}
	for p := e.Windows.ParentOf(w); p != nil; p = e.Windows.ParentOf(p) {
		if !p.Visible {
			return image.Rectangle{}, false
		}
		var ok bool
		if r, ok = geom.Intersect(r, p.Rect()); !ok {
			return image.Rectangle{}, false
		}
	}
	return r, true
}

// SiblingOverlaps returns the windows of the tree that are drawn on top
// of the window and whose visual rectangles intersect region, paired with
// the intersections, back to front. At each level from the window up to
// the root the later siblings are considered; windows behind the window
// are never returned.
func (e *Engine) SiblingOverlaps(h window.Handle, region image.Rectangle) []Overlap {
	w := e.Windows.Get(h)
	if w == nil {
		return nil
	}
	var res []Overlap
	for cur := w; ; {
		p := e.Windows.ParentOf(cur)
		if p == nil {
			break
		}
		kids := p.Children()
		i := slices.Index(kids, cur.Handle)
		for _, sh := range kids[i+1:] {
			vr, ok := e.VisualRect(sh)
			if !ok {
				continue
			}
			if r, ok := geom.Intersect(vr, region); ok {
				res = append(res, Overlap{Window: sh, Rect: r})
			}
		}
		cur = p
	}
	return res
}

// WindowAt returns the front-most visible window of the tree of root
// containing the given point, or nil.
func (e *Engine) WindowAt(root window.Handle, pt image.Point) *window.Window {
	var hit *window.Window
	e.Windows.Walk(root, func(w *window.Window) bool {
		vr, ok := e.VisualRect(w.Handle)
		if !ok {
			return false
		}
		if pt.In(vr) {
			hit = w
		}
		return true
	})
	return hit
}

// PasteChildrenOnto composes the children of the window, with their
// subtrees, onto dst, whose top-left pixel is at origin in root
// coordinates. Children outside of dst are skipped.
func (e *Engine) PasteChildrenOnto(h window.Handle, dst draw.Image, origin image.Point) {
	vr, ok := e.VisualRect(h)
	if !ok {
		return
	}
	target := dst.Bounds().Sub(dst.Bounds().Min).Add(origin)
	clip, ok := geom.Intersect(vr, target)
	if !ok {
		return
	}
	w := e.Windows.Get(h)
	for _, c := range w.Children() {
		if cw := e.Windows.Get(c); cw != nil {
			e.pasteTree(cw, dst, origin.Sub(dst.Bounds().Min), clip)
		}
	}
}

// pasteTree pastes w and its visible descendants onto dst, clipped to clip
// (root coordinates); root point p lands on dst point p-offset.
func (e *Engine) pasteTree(w *window.Window, dst draw.Image, offset image.Point, clip image.Rectangle) {
	if !w.Visible {
		return
	}
	r, ok := geom.Intersect(w.Rect(), clip)
	if !ok {
		return
	}
	paint.Paste(dst, r.Sub(offset), w.Pixels, r.Min.Sub(w.Pos))
	for _, c := range w.Children() {
		if cw := e.Windows.Get(c); cw != nil {
			e.pasteTree(cw, dst, offset, r)
		}
	}
}

func (e *Engine) logStale(op string, h window.Handle) {
	slog.Debug("layout: ignoring stale window", "op", op, "handle", h)
}
