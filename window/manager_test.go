// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"image"
	"testing"

	"cogentcore.org/compositor/paint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T) (*Manager, *Window, *Window, *Window, *Window) {
	m := NewManager()
	root, err := m.NewRoot("root", image.Pt(200, 200))
	require.NoError(t, err)
	a, err := m.New(root.Handle, "a", image.Rect(10, 10, 110, 110))
	require.NoError(t, err)
	b, err := m.New(root.Handle, "b", image.Rect(50, 50, 150, 150))
	require.NoError(t, err)
	c, err := m.New(a.Handle, "c", image.Rect(5, 5, 25, 25))
	require.NoError(t, err)
	return m, root, a, b, c
}

func TestNew(t *testing.T) {
	m, root, a, b, c := newTree(t)
	assert.True(t, root.IsRoot())
	assert.NotNil(t, root.Graph)
	assert.NotNil(t, root.Display)
	assert.Nil(t, a.Graph)
	assert.Equal(t, root.Handle, c.Root())
	assert.Equal(t, a.Handle, c.Parent())
	assert.Equal(t, image.Pt(15, 15), c.Pos)
	assert.Equal(t, image.Rect(15, 15, 35, 35), c.Rect())
	assert.Equal(t, []Handle{a.Handle, b.Handle}, root.Children())
	assert.Equal(t, image.Rect(0, 0, 20, 20), c.Pixels.Bounds())
	assert.Equal(t, 4, m.Len())

	_, err := m.New(999, "x", image.Rect(0, 0, 1, 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroy(t *testing.T) {
	m, root, a, b, c := newTree(t)
	var order []Handle
	m.OnDestroy(func(w *Window) { order = append(order, w.Handle) })
	m.SetFocus(c.Handle)

	m.Destroy(a.Handle)
	assert.Equal(t, []Handle{c.Handle, a.Handle}, order)
	assert.Nil(t, m.Get(a.Handle))
	assert.Nil(t, m.Get(c.Handle))
	assert.Equal(t, []Handle{b.Handle}, root.Children())
	assert.Equal(t, Handle(0), m.Focus(root.Handle))

	// stale handles are ignored
	m.Destroy(a.Handle)
	m.Move(a.Handle, image.Pt(1, 1))
	m.SetVisible(c.Handle, false)
	assert.Equal(t, 2, m.Len())
}

func TestMove(t *testing.T) {
	m, _, a, _, c := newTree(t)
	m.Move(a.Handle, image.Pt(20, 30))
	assert.Equal(t, image.Pt(20, 30), a.Pos)
	assert.Equal(t, image.Pt(25, 35), c.Pos)
}

func TestResize(t *testing.T) {
	m, root, a, _, _ := newTree(t)
	require.NoError(t, m.Resize(a.Handle, image.Pt(40, 60)))
	assert.Equal(t, image.Pt(40, 60), a.Size)
	assert.Equal(t, image.Rect(0, 0, 40, 60), a.Pixels.Bounds())

	require.NoError(t, m.Resize(root.Handle, image.Pt(300, 100)))
	assert.Equal(t, image.Rect(0, 0, 300, 100), root.Graph.Bounds())

	old := a.Pixels
	err := m.Resize(a.Handle, image.Pt(paint.MaxPixels, 2))
	assert.ErrorIs(t, err, paint.ErrTooLarge)
	assert.Same(t, old, a.Pixels)
	assert.Equal(t, image.Pt(40, 60), a.Size)
}

func TestZOrder(t *testing.T) {
	m, root, a, b, c := newTree(t)
	assert.Equal(t, 0, m.ZIndex(root.Handle))
	assert.Equal(t, 1, m.ZIndex(a.Handle))
	assert.Equal(t, 2, m.ZIndex(c.Handle))
	assert.Equal(t, 3, m.ZIndex(b.Handle))

	m.Raise(a.Handle)
	assert.Equal(t, []Handle{b.Handle, a.Handle}, root.Children())
	assert.Equal(t, 3, m.ZIndex(c.Handle))
	m.Lower(a.Handle)
	assert.Equal(t, []Handle{a.Handle, b.Handle}, root.Children())
	assert.Equal(t, -1, m.ZIndex(12345))
}

func TestFocusAndAction(t *testing.T) {
	m, root, a, b, _ := newTree(t)
	assert.Equal(t, Handle(0), m.SetFocus(a.Handle))
	assert.Equal(t, a.Handle, m.SetFocus(b.Handle))
	assert.Equal(t, b.Handle, m.Focus(root.Handle))

	assert.True(t, m.SetAction(a.Handle, ActionHovered))
	assert.False(t, m.SetAction(a.Handle, ActionHovered))
	assert.True(t, m.SetAction(a.Handle, ActionPressed))
	assert.Equal(t, ActionHovered, a.ActionBefore)
	assert.Equal(t, ActionPressed, a.Action)
}

func TestFindAndAncestors(t *testing.T) {
	m, root, a, _, c := newTree(t)
	assert.Same(t, c, m.Find(root.Handle, "c"))
	assert.Nil(t, m.Find(root.Handle, "zz"))
	assert.True(t, m.IsAncestor(a.Handle, c))
	assert.True(t, m.IsAncestor(root.Handle, c))
	assert.False(t, m.IsAncestor(c.Handle, a))
}

func TestNimbusModes(t *testing.T) {
	assert.True(t, NimbusBoth.Has(NimbusActive))
	assert.True(t, NimbusBoth.Has(NimbusHover))
	assert.False(t, NimbusHover.Has(NimbusActive))
	assert.False(t, NimbusHover.Has(NimbusNone))
	m, ok := ParseNimbusMode("Hover")
	assert.True(t, ok)
	assert.Equal(t, NimbusHover, m)
	_, ok = ParseNimbusMode("sideways")
	assert.False(t, ok)
	assert.Equal(t, "both", NimbusBoth.String())
}
