// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nimbus_test

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/compositor/base/iox/imagex"
	"cogentcore.org/compositor/geom"
	"cogentcore.org/compositor/layout"
	"cogentcore.org/compositor/nimbus"
	"cogentcore.org/compositor/paint"
	"cogentcore.org/compositor/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScene(t *testing.T) (*layout.Engine, *window.Window, *window.Window) {
	e := layout.New(window.NewManager())
	root, err := e.Windows.NewRoot("root", image.Pt(100, 100))
	require.NoError(t, err)
	w, err := e.Windows.New(root.Handle, "w", image.Rect(20, 20, 60, 60))
	require.NoError(t, err)
	w.Color = color.RGBA{200, 200, 200, 255}
	e.Refresh(root.Handle)
	return e, root, w
}

func displayAt(root *window.Window, x, y int) color.RGBA {
	return color.RGBAModel.Convert(root.Display.At(x, y)).(color.RGBA)
}

func TestShouldRender(t *testing.T) {
	w := &window.Window{Handle: 3, Enabled: true, Nimbus: window.NimbusHover}
	assert.False(t, nimbus.ShouldRender(w, 0))
	w.Action = window.ActionHovered
	assert.True(t, nimbus.ShouldRender(w, 0))
	w.Enabled = false
	assert.False(t, nimbus.ShouldRender(w, 0))

	w = &window.Window{Handle: 3, Enabled: true, Nimbus: window.NimbusActive}
	assert.True(t, nimbus.ShouldRender(w, 3))
	assert.False(t, nimbus.ShouldRender(w, 4))
	w.Action = window.ActionHovered
	assert.False(t, nimbus.ShouldRender(w, 4))
	w.Nimbus = window.NimbusBoth
	assert.True(t, nimbus.ShouldRender(w, 4))
	assert.False(t, nimbus.ShouldRender(nil, 3))
}

func TestEnable(t *testing.T) {
	e, root, w := newScene(t)
	c := e.Nimbus
	assert.False(t, c.Enable(root.Handle))
	assert.False(t, c.Enable(9999))
	assert.True(t, c.Enable(w.Handle))
	assert.False(t, c.Enable(w.Handle))
	assert.Equal(t, []window.Handle{w.Handle}, c.Registered(root.Handle))
	c.SetMode(w.Handle, window.NimbusNone)
	assert.Empty(t, c.Registered(root.Handle))
}

func TestRenderRoundTrip(t *testing.T) {
	e, root, w := newScene(t)
	area := geom.Pad(w.Rect(), nimbus.BorderThickness)
	before := paint.Copy(root.Display, area)

	e.Nimbus.SetMode(w.Handle, window.NimbusHover)
	e.Nimbus.Render(w.Handle, false, nil)
	assert.False(t, e.Nimbus.Rendered(w.Handle))

	e.SetAction(w.Handle, window.ActionHovered)
	assert.True(t, e.Nimbus.Rendered(w.Handle))
	assert.Equal(t, window.ActionHovered, w.ActionBefore)
	ok, _ := imagex.Equal(before, root.Display, area)
	assert.False(t, ok)
	// both rings lie just outside of the window
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, displayAt(root, 18, 40))
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, displayAt(root, 19, 40))
	assert.Equal(t, w.Color, displayAt(root, 20, 40))
	// the graph is never drawn on
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, root.Graph.RGBAAt(18, 40))

	e.SetAction(w.Handle, window.ActionNormal)
	assert.False(t, e.Nimbus.Rendered(w.Handle))
	ok, pt := imagex.Equal(before, root.Display, area)
	assert.True(t, ok, "display differs at %v", pt)
	assert.Equal(t, []window.Handle{w.Handle}, e.Nimbus.Registered(root.Handle))
}

func TestRenderCorners(t *testing.T) {
	e, root, w := newScene(t)
	e.Nimbus.SetMode(w.Handle, window.NimbusActive)
	e.SetFocus(w.Handle)
	require.True(t, e.Nimbus.Rendered(w.Handle))
	r := geom.Pad(w.Rect(), nimbus.BorderThickness)
	for _, p := range paint.Corners(r) {
		assert.Equal(t, root.Graph.RGBAAt(p.X, p.Y), displayAt(root, p.X, p.Y), "corner %v", p)
	}
	assert.NotEqual(t, root.Graph.RGBAAt(r.Min.X+1, r.Min.Y), displayAt(root, r.Min.X+1, r.Min.Y))
	// inner ring at 0.95 and outer ring at 0.4 of the default highlight over white
	assert.True(t, imagex.CompareColors(color.RGBA{13, 127, 217, 255}, displayAt(root, 19, 40), 2), "%v", displayAt(root, 19, 40))
	assert.True(t, imagex.CompareColors(color.RGBA{153, 201, 239, 255}, displayAt(root, 18, 40), 2), "%v", displayAt(root, 18, 40))
	assert.Equal(t, w.Color, displayAt(root, 20, 40))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, displayAt(root, 17, 40))
}

func TestRenderThickness(t *testing.T) {
	e, root, w := newScene(t)
	e.Nimbus.Thickness = 4
	e.Nimbus.SetMode(w.Handle, window.NimbusActive)
	e.SetFocus(w.Handle)
	require.True(t, e.Nimbus.Rendered(w.Handle))
	// the whole band is drawn, the inner half stronger than the outer
	for x := 16; x < 20; x++ {
		assert.NotEqual(t, root.Graph.RGBAAt(x, 40), displayAt(root, x, 40), "x %d", x)
	}
	assert.Equal(t, displayAt(root, 18, 40), displayAt(root, 19, 40))
	assert.Equal(t, displayAt(root, 16, 40), displayAt(root, 17, 40))
	assert.Less(t, displayAt(root, 19, 40).R, displayAt(root, 17, 40).R)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, displayAt(root, 15, 40))

	e.SetFocus(root.Handle)
	ok, pt := imagex.Equal(root.Graph, root.Display, root.Display.Bounds())
	assert.True(t, ok, "display differs at %v", pt)
}

func TestRenderFocusChange(t *testing.T) {
	e, root, w := newScene(t)
	v, err := e.Windows.New(root.Handle, "v", image.Rect(70, 70, 90, 90))
	require.NoError(t, err)
	e.Refresh(root.Handle)
	e.Nimbus.SetMode(w.Handle, window.NimbusActive)
	e.Nimbus.SetMode(v.Handle, window.NimbusActive)

	e.SetFocus(w.Handle)
	assert.True(t, e.Nimbus.Rendered(w.Handle))
	assert.False(t, e.Nimbus.Rendered(v.Handle))

	e.SetFocus(v.Handle)
	assert.False(t, e.Nimbus.Rendered(w.Handle))
	assert.True(t, e.Nimbus.Rendered(v.Handle))
	ok, pt := imagex.Equal(root.Graph, root.Display, geom.Pad(w.Rect(), nimbus.BorderThickness))
	assert.True(t, ok, "display differs at %v", pt)
}

func TestRenderZOrder(t *testing.T) {
	// registration order is the reverse of the z-order
	for _, reverse := range []bool{false, true} {
		e := layout.New(window.NewManager())
		root, err := e.Windows.NewRoot("root", image.Pt(100, 100))
		require.NoError(t, err)
		a, err := e.Windows.New(root.Handle, "a", image.Rect(10, 10, 50, 50))
		require.NoError(t, err)
		b, err := e.Windows.New(root.Handle, "b", image.Rect(30, 30, 70, 70))
		require.NoError(t, err)
		a.Highlight = color.RGBA{255, 0, 0, 255}
		b.Highlight = color.RGBA{0, 0, 255, 255}
		e.Refresh(root.Handle)

		first, second := a, b
		if reverse {
			first, second = b, a
		}
		e.Nimbus.SetMode(first.Handle, window.NimbusHover)
		e.Nimbus.SetMode(second.Handle, window.NimbusHover)
		e.Windows.SetAction(a.Handle, window.ActionHovered)
		e.Windows.SetAction(b.Handle, window.ActionHovered)
		e.Nimbus.Render(root.Handle, false, nil)

		// the left edge of b lies inside a; b is on top so its ring shows
		c := displayAt(root, 28, 40)
		assert.Greater(t, c.B, c.R, "reverse %v: %v", reverse, c)
	}
}

func TestRenderZOrderNeighbors(t *testing.T) {
	e := layout.New(window.NewManager())
	root, err := e.Windows.NewRoot("root", image.Pt(100, 100))
	require.NoError(t, err)
	back, err := e.Windows.New(root.Handle, "back", image.Rect(32, 10, 52, 30))
	require.NoError(t, err)
	front, err := e.Windows.New(root.Handle, "front", image.Rect(10, 10, 30, 30))
	require.NoError(t, err)
	other, err := e.Windows.New(root.Handle, "other", image.Rect(53, 10, 70, 30))
	require.NoError(t, err)
	front.Highlight = color.RGBA{255, 0, 0, 255}
	back.Highlight = color.RGBA{0, 0, 255, 255}
	e.Refresh(root.Handle)

	e.Nimbus.SetMode(back.Handle, window.NimbusHover)
	e.Nimbus.SetMode(front.Handle, window.NimbusHover)
	e.Windows.SetAction(back.Handle, window.ActionHovered)
	e.Windows.SetAction(front.Handle, window.ActionHovered)
	e.Nimbus.Render(root.Handle, false, nil)
	// the rings of front and back share column 30; front is on top
	c := displayAt(root, 30, 20)
	require.Greater(t, c.R, c.B, "%v", c)

	// hovering a window next to back redraws back, and front with it
	e.SetAction(other.Handle, window.ActionHovered)
	assert.Equal(t, c, displayAt(root, 30, 20))
	assert.True(t, e.Nimbus.Rendered(front.Handle))
	assert.True(t, e.Nimbus.Rendered(back.Handle))
}

func TestRenderStale(t *testing.T) {
	e, _, w := newScene(t)
	e.Nimbus.Render(9999, false, nil)
	e.Nimbus.Erase(9999)
	assert.False(t, e.Nimbus.Rendered(9999))
	assert.False(t, e.Nimbus.Rendered(w.Handle))
}

func TestDestroy(t *testing.T) {
	e, root, w := newScene(t)
	e.Nimbus.SetMode(w.Handle, window.NimbusActive)
	e.SetFocus(w.Handle)
	require.True(t, e.Nimbus.Rendered(w.Handle))

	e.Destroy(w.Handle)
	assert.Empty(t, e.Nimbus.Registered(root.Handle))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, displayAt(root, 18, 40))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, displayAt(root, 30, 30))

	v, err := e.Windows.New(root.Handle, "v", image.Rect(10, 10, 30, 30))
	require.NoError(t, err)
	assert.True(t, e.Nimbus.Enable(v.Handle))
	e.Windows.Destroy(root.Handle)
	assert.Nil(t, e.Nimbus.Registered(root.Handle))
}
