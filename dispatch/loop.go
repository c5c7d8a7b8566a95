// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch runs the single goroutine that owns a window tree.
// Input, focus and repaint requests are sent to a [Loop] as events and
// handled one at a time, so the layout engine never needs locks.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cogentcore.org/compositor/layout"
	"cogentcore.org/compositor/window"
)

// ErrStopped is returned by [Loop.Do] and [Loop.Send] once the loop
// has stopped.
var ErrStopped = errors.New("dispatch: loop stopped")

// loopKey marks contexts passed to functions running on a loop.
type loopKey struct{}

// Loop is the event loop of a [layout.Engine]. Create it with [New]
// and run it with [Loop.Run].
type Loop struct {

	// Engine is the layout engine owned by the loop.
	Engine *layout.Engine

	// FPS is the rate of [Tick] events while running; no ticks are
	// generated if it is zero or negative.
	FPS int

	events chan Event
	stop   chan struct{}

	// hovered and pressed are the windows under the pointer and the
	// pressed window, per root.
	hovered map[window.Handle]window.Handle
	pressed map[window.Handle]window.Handle

	// animating are the windows whose nimbus is redrawn on every tick.
	animating map[window.Handle]bool

	// ctx is the context of the running loop, carrying loopKey.
	ctx context.Context
}

// New returns a new [Loop] for the given engine.
func New(e *layout.Engine, fps int) *Loop {
	l := &Loop{
		Engine:    e,
		FPS:       fps,
		events:    make(chan Event, 64),
		stop:      make(chan struct{}),
		hovered:   map[window.Handle]window.Handle{},
		pressed:   map[window.Handle]window.Handle{},
		animating: map[window.Handle]bool{},
	}
	e.Windows.OnDestroy(l.destroyed)
	return l
}

func (l *Loop) destroyed(w *window.Window) {
	delete(l.animating, w.Handle)
	for _, m := range []map[window.Handle]window.Handle{l.hovered, l.pressed} {
		if m[w.Root()] == w.Handle {
			delete(m, w.Root())
		}
	}
}

// onLoop returns whether ctx belongs to a function running on l.
func (l *Loop) onLoop(ctx context.Context) bool {
	return ctx != nil && ctx.Value(loopKey{}) == l
}

// Run handles events until ctx is done. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	l.ctx = context.WithValue(ctx, loopKey{}, l)
	defer close(l.stop)

	var tick <-chan time.Time
	if l.FPS > 0 {
		t := time.NewTicker(time.Second / time.Duration(l.FPS))
		defer t.Stop()
		tick = t.C
	}
	slog.Debug("dispatch: loop started", "fps", l.FPS)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("dispatch: loop stopped")
			return nil
		case ev := <-l.events:
			l.handle(ev)
		case now := <-tick:
			l.handle(Tick{Time: now})
		}
	}
}

// Send queues an event for the loop. From a function already running on
// the loop, as told by ctx, the event is handled right away.
func (l *Loop) Send(ctx context.Context, ev Event) error {
	if l.onLoop(ctx) {
		l.handle(ev)
		return nil
	}
	select {
	case l.events <- ev:
		return nil
	case <-l.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the loop goroutine and waits for it to return. The
// context passed to fn marks it as running on the loop: calling Do or
// Send with it runs inline instead of waiting on the loop, which would
// never come back.
func (l *Loop) Do(ctx context.Context, fn func(ctx context.Context)) error {
	if l.onLoop(ctx) {
		fn(ctx)
		return nil
	}
	c := call{done: make(chan struct{})}
	c.fn = func() { fn(l.ctx) }
	if err := l.Send(ctx, c); err != nil {
		return err
	}
	select {
	case <-c.done:
		return nil
	case <-l.stop:
		// the call may have been queued behind the stop
		select {
		case <-c.done:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Animate turns the per-frame nimbus redraw of the window on or off.
// It must be called on the loop.
func (l *Loop) Animate(h window.Handle, on bool) {
	if on {
		l.animating[h] = true
	} else {
		delete(l.animating, h)
	}
}

// Hovered returns the window under the pointer in the tree of root.
// It must be called on the loop.
func (l *Loop) Hovered(root window.Handle) window.Handle {
	return l.hovered[root]
}

func (l *Loop) handle(ev Event) {
	e := l.Engine
	switch ev := ev.(type) {
	case call:
		ev.fn()
		close(ev.done)
	case MouseMove:
		l.hover(ev.Root, e.WindowAt(ev.Root, ev.Point))
	case MouseDown:
		w := e.WindowAt(ev.Root, ev.Point)
		if w == nil || !w.Enabled {
			return
		}
		l.pressed[ev.Root] = w.Handle
		e.SetAction(w.Handle, window.ActionPressed)
		e.SetFocus(w.Handle)
	case MouseUp:
		h, ok := l.pressed[ev.Root]
		if !ok {
			return
		}
		delete(l.pressed, ev.Root)
		a := window.ActionNormal
		if w := e.WindowAt(ev.Root, ev.Point); w != nil && w.Handle == h {
			a = window.ActionHovered
		}
		e.SetAction(h, a)
	case Focus:
		e.SetFocus(ev.Window)
	case Invalidate:
		e.Invalidate(ev.Window)
	case Flush:
		e.Flush()
	case Tick:
		e.Flush()
		for h := range l.animating {
			if e.Nimbus.Rendered(h) {
				e.Nimbus.Render(h, true, nil)
			}
		}
	default:
		slog.Warn("dispatch: unknown event", "event", ev)
	}
}

// hover moves the hover state of the tree of root to w.
func (l *Loop) hover(root window.Handle, w *window.Window) {
	var h window.Handle
	if w != nil && w.Enabled {
		h = w.Handle
	}
	prev := l.hovered[root]
	if prev == h {
		return
	}
	e := l.Engine
	if prev != 0 && l.pressed[root] != prev {
		e.SetAction(prev, window.ActionNormal)
	}
	if h == 0 {
		delete(l.hovered, root)
		return
	}
	l.hovered[root] = h
	if l.pressed[root] != h {
		e.SetAction(h, window.ActionHovered)
	}
}
