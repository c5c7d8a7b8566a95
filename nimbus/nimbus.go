// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nimbus draws the edge nimbus: a soft highlighted border around
// windows that are focused or hovered. Highlights are drawn on the display
// surface of a root, never on its composited graph, so they can always be
// erased by mapping the graph back onto the display.
package nimbus

import (
	"image"
	"image/color"
	"log/slog"
	"slices"

	"cogentcore.org/compositor/geom"
	"cogentcore.org/compositor/paint"
	"cogentcore.org/compositor/window"
)

// BorderThickness is the default [Compositor.Thickness].
const BorderThickness = 2

// Opacities of the inner and outer ring of the nimbus.
const (
	InnerOpacity = 0.95
	OuterOpacity = 0.4
)

// Layout is the part of the window layout the compositor needs.
type Layout interface {

	// VisualRect returns the ancestor-clipped rectangle of the window in
	// root coordinates, and false if nothing of it is visible.
	VisualRect(h window.Handle) (image.Rectangle, bool)

	// SiblingOverlaps returns the windows drawn on top of the window that
	// intersect region, back to front, with the intersected rectangles.
	SiblingOverlaps(h window.Handle, region image.Rectangle) []Overlap
}

// Overlap is a window paired with a rectangle in root coordinates.
type Overlap struct {
	Window window.Handle
	Rect   image.Rectangle
}

// entry is a window registered for the nimbus effect.
type entry struct {
	window   window.Handle
	rendered bool
}

// registry holds the nimbus windows of one root.
type registry struct {
	entries []*entry
}

func (r *registry) index(h window.Handle) int {
	return slices.IndexFunc(r.entries, func(e *entry) bool { return e.window == h })
}

// Compositor renders and erases edge nimbus highlights. It keeps one
// registry per root, which is dropped when the root is destroyed.
type Compositor struct {

	// Thickness is how far, in pixels, the nimbus extends outside the
	// visual rectangle of a window.
	Thickness int

	windows    *window.Manager
	layout     Layout
	registries map[window.Handle]*registry
}

// New returns a new [Compositor] for the windows of the given manager.
func New(m *window.Manager, l Layout) *Compositor {
	c := &Compositor{Thickness: BorderThickness, windows: m, layout: l, registries: map[window.Handle]*registry{}}
	m.OnDestroy(c.destroyed)
	return c
}

func (c *Compositor) destroyed(w *window.Window) {
	if w.IsRoot() {
		delete(c.registries, w.Handle)
		return
	}
	c.Erase(w.Handle)
}

// ShouldRender returns whether the nimbus of w must be shown given the
// focused window of its tree.
func ShouldRender(w *window.Window, focused window.Handle) bool {
	if w == nil || !w.Enabled {
		return false
	}
	if focused == w.Handle && w.Nimbus.Has(window.NimbusActive) {
		return true
	}
	return w.Action == window.ActionHovered && w.Nimbus.Has(window.NimbusHover)
}

// SetMode sets the nimbus mode of the window, registering it with the
// registry of its root or erasing and unregistering it for [window.NimbusNone].
func (c *Compositor) SetMode(h window.Handle, mode window.NimbusModes) {
	w := c.windows.Get(h)
	if w == nil {
		return
	}
	w.Nimbus = mode
	if mode == window.NimbusNone {
		c.Erase(h)
		return
	}
	c.Enable(h)
}

// Enable registers the window with the registry of its root. It returns
// false for stale handles, roots and windows that are already registered.
func (c *Compositor) Enable(h window.Handle) bool {
	w := c.windows.Get(h)
	if w == nil || w.IsRoot() {
		return false
	}
	reg := c.registries[w.Root()]
	if reg == nil {
		reg = &registry{}
		c.registries[w.Root()] = reg
	}
	if reg.index(h) >= 0 {
		return false
	}
	reg.entries = append(reg.entries, &entry{window: h})
	return true
}

// Registered returns the windows registered with the registry of root,
// in registration order.
func (c *Compositor) Registered(root window.Handle) []window.Handle {
	reg := c.registries[root]
	if reg == nil {
		return nil
	}
	hs := make([]window.Handle, len(reg.entries))
	for i, e := range reg.entries {
		hs[i] = e.window
	}
	return hs
}

// Rendered returns whether the nimbus of the window is currently drawn.
func (c *Compositor) Rendered(h window.Handle) bool {
	w := c.windows.Get(h)
	if w == nil {
		return false
	}
	reg := c.registries[w.Root()]
	if reg == nil {
		return false
	}
	if i := reg.index(h); i >= 0 {
		return reg.entries[i].rendered
	}
	return false
}

// Erase unregisters the window and restores the region its nimbus
// occupied from the composited graph.
func (c *Compositor) Erase(h window.Handle) {
	w := c.windows.Get(h)
	if w == nil {
		return
	}
	reg := c.registries[w.Root()]
	if reg == nil {
		return
	}
	i := reg.index(h)
	if i < 0 {
		return
	}
	reg.entries = slices.Delete(reg.entries, i, i+1)
	c.restore(w)
}

// restore maps the padded rectangle of w from the graph onto the display.
func (c *Compositor) restore(w *window.Window) {
	root := c.windows.RootOf(w)
	if root == nil {
		return
	}
	r := geom.Pad(w.Rect(), c.Thickness).Intersect(root.Graph.Bounds())
	paint.Paste(root.Display, r, root.Graph, r.Min)
}

// Render brings the display of the tree of the window up to date after
// the window was painted: it maps the window from the composited graph
// onto the display, erases highlights that must no longer be shown and
// draws the ones that must, back to front. forced redraws the highlight of
// the window even if it is already shown. If region is given, only that
// part of the window is mapped.
func (c *Compositor) Render(h window.Handle, forced bool, region *image.Rectangle) {
	w := c.windows.Get(h)
	if w == nil {
		slog.Debug("nimbus: render of stale window", "handle", h)
		return
	}
	root := c.windows.RootOf(w)
	if root == nil {
		return
	}
	area := geom.Pad(w.Rect(), c.Thickness)
	if region != nil {
		area = geom.Pad(*region, c.Thickness)
	}

	type job struct {
		w      *window.Window
		e      *entry
		visual image.Rectangle
		padded image.Rectangle
		stale  bool
		draw   bool
	}
	var jobs []job
	// dirty holds the parts of the display overwritten from the graph
	var dirty []image.Rectangle
	mapSeparately := true

	if reg := c.registries[root.Handle]; reg != nil && len(reg.entries) > 0 {
		focused := c.windows.Focus(root.Handle)
		for _, e := range reg.entries {
			ew := c.windows.Get(e.window)
			if ew == nil {
				continue
			}
			vr, visible := c.layout.VisualRect(e.window)
			if visible && ShouldRender(ew, focused) {
				pv := geom.Pad(vr, c.Thickness)
				stale := !e.rendered || forced && e.window == h || focused == e.window ||
					ew.Update == window.UpdateRefreshed ||
					geom.Overlaps(pv, area)
				jobs = append(jobs, job{w: ew, e: e, visual: vr, padded: pv, stale: stale})
				if stale && e.window == h {
					mapSeparately = false
				}
				continue
			}
			if e.rendered {
				e.rendered = false
				c.restore(ew)
				dirty = append(dirty, geom.Pad(ew.Rect(), c.Thickness))
			}
		}
	}

	if mapSeparately {
		if vr, ok := c.layout.VisualRect(h); ok {
			if region != nil {
				vr, ok = geom.Intersect(vr, *region)
			}
			if ok {
				paint.Paste(root.Display, vr, root.Graph, vr.Min)
				dirty = append(dirty, vr)
			}
		}
	}

	// z-order, not registration order, decides which highlight wins
	slices.SortStableFunc(jobs, func(a, b job) int {
		return c.windows.ZIndex(a.w.Handle) - c.windows.ZIndex(b.w.Handle)
	})
	padded := geom.Pad(w.Rect(), c.Thickness)
	for i := range jobs {
		j := &jobs[i]
		if !j.stale {
			continue
		}
		j.draw = j.w == w || w.IsRoot() || geom.Overlaps(j.padded, padded) || geom.Overlaps(j.padded, area)
		if j.draw {
			dirty = append(dirty, j.padded)
		}
	}
	// drawing a highlight pastes its whole padded rectangle from the graph,
	// so every shown highlight it touches is drawn again, in z-order
	for changed := true; changed; {
		changed = false
		for i := range jobs {
			j := &jobs[i]
			if j.draw || !slices.ContainsFunc(dirty, func(r image.Rectangle) bool { return geom.Overlaps(r, j.padded) }) {
				continue
			}
			j.draw = true
			dirty = append(dirty, j.padded)
			changed = true
		}
	}
	for _, j := range jobs {
		if !j.draw {
			continue
		}
		c.draw(root, j.w, j.visual)
		j.e.rendered = true
	}
}

// draw draws the nimbus of w around its visual rectangle onto the display
// of root, then maps the windows on top of w back over it.
func (c *Compositor) draw(root, w *window.Window, visual image.Rectangle) {
	w.ActionBefore = w.Action
	r := geom.Pad(visual, c.Thickness)
	buf := paint.Copy(root.Graph, r)

	// keep the corners so the ring looks rounded
	corners := paint.Corners(r)
	var saved [4]color.RGBA
	for i, p := range corners {
		saved[i] = buf.RGBAAt(p.X, p.Y)
	}
	// the inner half of the band is drawn at the inner opacity
	for i := 0; i < c.Thickness; i++ {
		var op float32 = OuterOpacity
		if i < (c.Thickness+1)/2 {
			op = InnerOpacity
		}
		paint.Outline(buf, geom.Pad(visual, i+1), w.Highlight, op)
	}
	for i, p := range corners {
		buf.SetRGBA(p.X, p.Y, saved[i])
	}
	vis := r.Intersect(root.Graph.Bounds())
	paint.Paste(root.Display, vis, buf, vis.Min)

	for _, o := range c.layout.SiblingOverlaps(w.Handle, r) {
		paint.Paste(root.Display, o.Rect, root.Graph, o.Rect.Min)
	}
}
