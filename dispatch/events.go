// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"image"
	"time"

	"cogentcore.org/compositor/window"
)

// Event is an event handled by a [Loop].
type Event interface {
	fmt.Stringer
	isEvent()
}

// MouseMove is sent when the pointer moves to Point over the tree of Root.
// It updates the hover state of the windows under the pointer.
type MouseMove struct {
	Root  window.Handle
	Point image.Point
}

// MouseDown is sent when a button is pressed at Point. The window under
// the pointer is pressed and focused.
type MouseDown struct {
	Root  window.Handle
	Point image.Point
}

// MouseUp is sent when a button is released at Point.
type MouseUp struct {
	Root  window.Handle
	Point image.Point
}

// Focus focuses Window.
type Focus struct {
	Window window.Handle
}

// Invalidate requests a repaint of Window at the next frame.
type Invalidate struct {
	Window window.Handle
}

// Flush paints the invalidated windows right away.
type Flush struct{}

// Tick is a frame of the animation timer.
type Tick struct {
	Time time.Time
}

// call runs a function on the loop goroutine for [Loop.Do].
type call struct {
	fn   func()
	done chan struct{}
}

func (MouseMove) isEvent()  {}
func (MouseDown) isEvent()  {}
func (MouseUp) isEvent()    {}
func (Focus) isEvent()      {}
func (Invalidate) isEvent() {}
func (Flush) isEvent()      {}
func (Tick) isEvent()       {}
func (call) isEvent()       {}

func (e MouseMove) String() string  { return fmt.Sprintf("MouseMove{%d %v}", e.Root, e.Point) }
func (e MouseDown) String() string  { return fmt.Sprintf("MouseDown{%d %v}", e.Root, e.Point) }
func (e MouseUp) String() string    { return fmt.Sprintf("MouseUp{%d %v}", e.Root, e.Point) }
func (e Focus) String() string      { return fmt.Sprintf("Focus{%d}", e.Window) }
func (e Invalidate) String() string { return fmt.Sprintf("Invalidate{%d}", e.Window) }
func (Flush) String() string        { return "Flush" }
func (Tick) String() string         { return "Tick" }
func (call) String() string         { return "call" }
