// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"cogentcore.org/compositor/paint"
)

// ErrNotFound is returned when an operation refers to a window that does
// not exist (anymore).
var ErrNotFound = errors.New("window: not found")

// Manager owns the windows of any number of trees. It is not safe for
// concurrent use; all calls must come from the dispatch goroutine.
type Manager struct {
	windows   map[Handle]*Window
	last      Handle
	onDestroy []func(w *Window)
}

// NewManager returns a new empty [Manager].
func NewManager() *Manager {
	return &Manager{windows: map[Handle]*Window{}}
}

// Get returns the window with the given handle, or nil if it does not
// exist. A nil result is the normal signal for a stale handle.
func (m *Manager) Get(h Handle) *Window {
	if h == 0 {
		return nil
	}
	return m.windows[h]
}

// Len returns the number of live windows.
func (m *Manager) Len() int { return len(m.windows) }

// OnDestroy adds a function called for every window right before it is
// removed, children before their parents.
func (m *Manager) OnDestroy(fn func(w *Window)) {
	m.onDestroy = append(m.onDestroy, fn)
}

func (m *Manager) newWindow(name string, pos, size image.Point) (*Window, error) {
	px, err := paint.NewImage(size)
	if err != nil {
		return nil, fmt.Errorf("window %q: %w", name, err)
	}
	m.last++
	w := &Window{
		Handle:    m.last,
		Name:      name,
		Pos:       pos,
		Size:      image.Pt(max(size.X, 0), max(size.Y, 0)),
		Visible:   true,
		Enabled:   true,
		Color:     color.RGBA{255, 255, 255, 255},
		Highlight: color.RGBA{0, 120, 215, 255},
		Pixels:    px,
	}
	paint.Fill(px, px.Bounds(), w.Color)
	m.windows[w.Handle] = w
	return w, nil
}

// NewRoot creates a new root window of the given size, with its own
// composited graph and display surfaces.
func (m *Manager) NewRoot(name string, size image.Point) (*Window, error) {
	graph, err := paint.NewImage(size)
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", name, err)
	}
	display, err := paint.NewImage(size)
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", name, err)
	}
	w, err := m.newWindow(name, image.Point{}, size)
	if err != nil {
		return nil, err
	}
	w.root = w.Handle
	w.Graph = graph
	w.Display = display
	slog.Debug("window: new root", "window", w, "size", size)
	return w, nil
}

// New creates a new window as the front-most child of parent. The
// rectangle is given in the coordinates of the parent.
func (m *Manager) New(parent Handle, name string, r image.Rectangle) (*Window, error) {
	p := m.Get(parent)
	if p == nil {
		return nil, fmt.Errorf("new window %q: parent %d: %w", name, parent, ErrNotFound)
	}
	w, err := m.newWindow(name, p.Pos.Add(r.Min), r.Size())
	if err != nil {
		return nil, err
	}
	w.parent = p.Handle
	w.root = p.root
	p.children = append(p.children, w.Handle)
	return w, nil
}

// Destroy removes the window and its whole subtree. Destroy listeners
// are called for each removed window, children first. Destroying a stale
// handle does nothing.
func (m *Manager) Destroy(h Handle) {
	w := m.Get(h)
	if w == nil {
		return
	}
	if p := m.Get(w.parent); p != nil {
		p.children = slices.DeleteFunc(p.children, func(c Handle) bool { return c == h })
	}
	m.destroy(w)
}

func (m *Manager) destroy(w *Window) {
	for _, c := range slices.Clone(w.children) {
		if cw := m.Get(c); cw != nil {
			m.destroy(cw)
		}
	}
	for _, fn := range m.onDestroy {
		fn(w)
	}
	if r := m.Get(w.root); r != nil && r.focus == w.Handle {
		r.focus = 0
	}
	delete(m.windows, w.Handle)
	w.children = nil
}

// Move moves the window to the given position in the coordinates of
// its parent, moving its whole subtree along with it. Roots stay at the
// origin.
func (m *Manager) Move(h Handle, pos image.Point) {
	w := m.Get(h)
	if w == nil || w.IsRoot() {
		return
	}
	p := m.Get(w.parent)
	delta := p.Pos.Add(pos).Sub(w.Pos)
	if delta == (image.Point{}) {
		return
	}
	m.Walk(h, func(d *Window) bool {
		d.Pos = d.Pos.Add(delta)
		return true
	})
}

// Resize changes the size of the window and reallocates its backing
// surface, filled with its background color. Children are not resized.
// The previous surfaces are kept if allocation fails.
func (m *Manager) Resize(h Handle, size image.Point) error {
	w := m.Get(h)
	if w == nil {
		return nil
	}
	size = image.Pt(max(size.X, 0), max(size.Y, 0))
	if size == w.Size {
		return nil
	}
	px, err := paint.NewImage(size)
	if err != nil {
		return fmt.Errorf("resize %v: %w", w, err)
	}
	if w.IsRoot() {
		graph, err := paint.NewImage(size)
		if err != nil {
			return fmt.Errorf("resize %v: %w", w, err)
		}
		display, err := paint.NewImage(size)
		if err != nil {
			return fmt.Errorf("resize %v: %w", w, err)
		}
		w.Graph, w.Display = graph, display
	}
	paint.Fill(px, px.Bounds(), w.Color)
	w.Pixels = px
	w.Backdrop = nil
	w.Size = size
	return nil
}

// SetVisible shows or hides the window.
func (m *Manager) SetVisible(h Handle, visible bool) {
	if w := m.Get(h); w != nil {
		w.Visible = visible
	}
}

// SetAction sets the interaction state of the window, remembering the
// previous one in [Window.ActionBefore]. It returns whether it changed.
func (m *Manager) SetAction(h Handle, a Actions) bool {
	w := m.Get(h)
	if w == nil || w.Action == a {
		return false
	}
	w.ActionBefore = w.Action
	w.Action = a
	return true
}

// Raise moves the window to the front of its siblings.
func (m *Manager) Raise(h Handle) {
	m.restack(h, true)
}

// Lower moves the window to the back of its siblings.
func (m *Manager) Lower(h Handle) {
	m.restack(h, false)
}

func (m *Manager) restack(h Handle, front bool) {
	w := m.Get(h)
	if w == nil {
		return
	}
	p := m.Get(w.parent)
	if p == nil {
		return
	}
	p.children = slices.DeleteFunc(p.children, func(c Handle) bool { return c == h })
	if front {
		p.children = append(p.children, h)
	} else {
		p.children = slices.Insert(p.children, 0, h)
	}
}

// SetFocus makes the window the focused window of its tree and returns
// the previously focused window handle.
func (m *Manager) SetFocus(h Handle) Handle {
	w := m.Get(h)
	if w == nil {
		return 0
	}
	r := m.Get(w.root)
	old := r.focus
	r.focus = h
	return old
}

// Focus returns the focused window of the tree with the given root,
// or zero if there is none.
func (m *Manager) Focus(root Handle) Handle {
	r := m.Get(root)
	if r == nil || m.Get(r.focus) == nil {
		return 0
	}
	return r.focus
}

// ParentOf returns the parent window of the window, or nil.
func (m *Manager) ParentOf(w *Window) *Window {
	if w == nil {
		return nil
	}
	return m.Get(w.parent)
}

// RootOf returns the root window of the tree the window belongs to.
func (m *Manager) RootOf(w *Window) *Window {
	if w == nil {
		return nil
	}
	return m.Get(w.root)
}

// Walk calls fn for the window and its descendants in pre-order, which
// is back-to-front z-order. Returning false from fn skips the children
// of that window.
func (m *Manager) Walk(h Handle, fn func(w *Window) bool) {
	w := m.Get(h)
	if w == nil {
		return
	}
	if !fn(w) {
		return
	}
	for _, c := range w.children {
		m.Walk(c, fn)
	}
}

// ZIndex returns the position of the window in the back-to-front
// traversal of its tree, or -1 for a stale handle. A window with a
// larger ZIndex is drawn on top of one with a smaller ZIndex.
func (m *Manager) ZIndex(h Handle) int {
	w := m.Get(h)
	if w == nil {
		return -1
	}
	idx, n := -1, 0
	m.Walk(w.root, func(d *Window) bool {
		if d.Handle == h {
			idx = n
		}
		n++
		return idx < 0
	})
	return idx
}

// IsAncestor returns whether a is a strict ancestor of w.
func (m *Manager) IsAncestor(a Handle, w *Window) bool {
	for p := m.ParentOf(w); p != nil; p = m.ParentOf(p) {
		if p.Handle == a {
			return true
		}
	}
	return false
}

// Find returns the first window named name in the tree of root.
func (m *Manager) Find(root Handle, name string) *Window {
	var found *Window
	m.Walk(root, func(w *Window) bool {
		if found == nil && w.Name == name {
			found = w
		}
		return found == nil
	})
	return found
}
