// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"strconv"
	"strings"
)

// Actions are the interaction states of a window.
type Actions int32

const (
	// ActionNormal is the resting state.
	ActionNormal Actions = iota

	// ActionHovered means the mouse is over the window.
	ActionHovered

	// ActionPressed means a mouse button is held down on the window.
	ActionPressed
)

func (a Actions) String() string {
	switch a {
	case ActionNormal:
		return "Normal"
	case ActionHovered:
		return "Hovered"
	case ActionPressed:
		return "Pressed"
	}
	return "Actions(" + strconv.Itoa(int(a)) + ")"
}

// NimbusModes are bit flags selecting when the edge nimbus of a window
// is drawn.
type NimbusModes int32

const (
	// NimbusNone disables the edge nimbus.
	NimbusNone NimbusModes = 0

	// NimbusActive draws the nimbus while the window has focus.
	NimbusActive NimbusModes = 1 << (iota - 1)

	// NimbusHover draws the nimbus while the window is hovered.
	NimbusHover

	// NimbusBoth draws the nimbus while focused or hovered.
	NimbusBoth = NimbusActive | NimbusHover
)

// Has returns whether m includes all of the flags in f.
func (m NimbusModes) Has(f NimbusModes) bool {
	return f != 0 && m&f == f
}

func (m NimbusModes) String() string {
	switch m {
	case NimbusNone:
		return "none"
	case NimbusActive:
		return "active"
	case NimbusHover:
		return "hover"
	case NimbusBoth:
		return "both"
	}
	return "NimbusModes(" + strconv.Itoa(int(m)) + ")"
}

// ParseNimbusMode returns the mode with the given name as returned by
// [NimbusModes.String], and false if there is none.
func ParseNimbusMode(s string) (NimbusModes, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NimbusNone, true
	case "active":
		return NimbusActive, true
	case "hover", "over":
		return NimbusHover, true
	case "both":
		return NimbusBoth, true
	}
	return NimbusNone, false
}

// UpdateStates track the repaint state of a window within one
// repaint cycle: none -> waiting -> refreshed -> none.
type UpdateStates int32

const (
	// UpdateNone means no repaint is pending.
	UpdateNone UpdateStates = iota

	// UpdateWaiting means a repaint was requested but has not run yet.
	UpdateWaiting

	// UpdateRefreshed means the window was painted in the current cycle.
	UpdateRefreshed
)

func (u UpdateStates) String() string {
	switch u {
	case UpdateNone:
		return "None"
	case UpdateWaiting:
		return "Waiting"
	case UpdateRefreshed:
		return "Refreshed"
	}
	return "UpdateStates(" + strconv.Itoa(int(u)) + ")"
}
