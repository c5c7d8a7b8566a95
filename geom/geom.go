// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the rectangle and segment arithmetic used by the
// compositor: overlap, intersection, containment, proportional scaling
// and line clipping. All functions are pure; degenerate (zero-area)
// rectangles are valid inputs meaning "nothing".
package geom

import (
	"image"

	"github.com/chewxy/math32"
)

// RectOf returns the rectangle at the given position with the given size.
func RectOf(pos, size image.Point) image.Rectangle {
	return image.Rectangle{Min: pos, Max: pos.Add(size)}
}

// Empty reports whether r has no area.
func Empty(r image.Rectangle) bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// Pad grows r by n pixels on every side. A negative n shrinks it.
func Pad(r image.Rectangle, n int) image.Rectangle {
	d := image.Pt(n, n)
	return image.Rectangle{Min: r.Min.Sub(d), Max: r.Max.Add(d)}
}

// Overlaps reports whether the open intervals of a and b intersect on both
// axes. Rectangles that only share an edge do not overlap.
func Overlaps(a, b image.Rectangle) bool {
	if Empty(a) || Empty(b) {
		return false
	}
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// Intersect returns the overlapping part of a and b, and false
// if they do not [Overlaps].
func Intersect(a, b image.Rectangle) (image.Rectangle, bool) {
	if !Overlaps(a, b) {
		return image.Rectangle{}, false
	}
	r := a
	r.Min.X = max(a.Min.X, b.Min.X)
	r.Min.Y = max(a.Min.Y, b.Min.Y)
	r.Max.X = min(a.Max.X, b.Max.X)
	r.Max.Y = min(a.Max.Y, b.Max.Y)
	return r, true
}

// Covered reports whether inner lies entirely within outer,
// edges included.
func Covered(inner, outer image.Rectangle) bool {
	return inner.Min.X >= outer.Min.X && inner.Min.Y >= outer.Min.Y &&
		inner.Max.X <= outer.Max.X && inner.Max.Y <= outer.Max.Y
}

// ScaleRect maps scaled, which is expressed relative to ref, into the
// frame of newRef, keeping its relative offset and proportional size.
// An axis on which ref has no extent maps onto the whole of newRef.
func ScaleRect(ref, scaled, newRef image.Rectangle) image.Rectangle {
	var r image.Rectangle
	r.Min.X, r.Max.X = scaleAxis(ref.Min.X, ref.Dx(), scaled.Min.X, scaled.Dx(), newRef.Min.X, newRef.Dx())
	r.Min.Y, r.Max.Y = scaleAxis(ref.Min.Y, ref.Dy(), scaled.Min.Y, scaled.Dy(), newRef.Min.Y, newRef.Dy())
	return r
}

func scaleAxis(refPos, refLen, pos, ln, newPos, newLen int) (int, int) {
	if refLen <= 0 {
		return newPos, newPos + max(newLen, 0)
	}
	rate := float32(pos-refPos) / float32(refLen)
	p := newPos + int(rate*float32(newLen))
	n := 0
	if ln > 0 {
		n = int(float32(ln) / float32(refLen) * float32(newLen))
	}
	return p, p + n
}

// FitSize returns the largest size with the aspect ratio of in that fits
// within bound. If the aspect ratios are equal, bound is returned as is.
func FitSize(in, bound image.Point) image.Point {
	if in.X <= 0 || in.Y <= 0 || bound.X <= 0 || bound.Y <= 0 {
		return image.Point{}
	}
	// compare in.X/in.Y with bound.X/bound.Y without rounding
	l, r := in.X*bound.Y, bound.X*in.Y
	switch {
	case l < r:
		return image.Pt(int(float32(in.X)*float32(bound.Y)/float32(in.Y)), bound.Y)
	case l > r:
		return image.Pt(bound.X, int(float32(in.Y)*float32(bound.X)/float32(in.X)))
	}
	return bound
}

// outcode bits for [ClipSegment]
const (
	left = 1 << iota
	right
	top
	bottom

	inside = 0
)

// ClipSegment clips the segment p0-p1 against r using the Cohen-Sutherland
// algorithm and returns the clipped endpoints, or false if no part of the
// segment lies within r. The rectangle is taken as the closed pixel range
// [Min, Max-1] on each axis.
func ClipSegment(r image.Rectangle, p0, p1 image.Point) (image.Point, image.Point, bool) {
	if Empty(r) {
		return image.Point{}, image.Point{}, false
	}
	xmin, ymin := r.Min.X, r.Min.Y
	xmax, ymax := r.Max.X-1, r.Max.Y-1

	switch {
	case p0.X == p1.X: // vertical: no slope
		if p0.X < xmin || p0.X > xmax {
			return image.Point{}, image.Point{}, false
		}
		if max(p0.Y, p1.Y) < ymin || min(p0.Y, p1.Y) > ymax {
			return image.Point{}, image.Point{}, false
		}
		p0.Y = clamp(p0.Y, ymin, ymax)
		p1.Y = clamp(p1.Y, ymin, ymax)
		return p0, p1, true
	case p0.Y == p1.Y: // horizontal
		if p0.Y < ymin || p0.Y > ymax {
			return image.Point{}, image.Point{}, false
		}
		if max(p0.X, p1.X) < xmin || min(p0.X, p1.X) > xmax {
			return image.Point{}, image.Point{}, false
		}
		p0.X = clamp(p0.X, xmin, xmax)
		p1.X = clamp(p1.X, xmin, xmax)
		return p0, p1, true
	}

	fxmin, fymin, fxmax, fymax := float32(xmin), float32(ymin), float32(xmax), float32(ymax)
	code := func(x, y float32) int {
		c := inside
		if x < fxmin {
			c |= left
		} else if x > fxmax {
			c |= right
		}
		if y < fymin {
			c |= top
		} else if y > fymax {
			c |= bottom
		}
		return c
	}

	x0, y0 := float32(p0.X), float32(p0.Y)
	x1, y1 := float32(p1.X), float32(p1.Y)
	c0, c1 := code(x0, y0), code(x1, y1)
	for {
		if c0|c1 == inside {
			break
		}
		if c0&c1 != 0 {
			return image.Point{}, image.Point{}, false
		}
		c := c0
		if c == inside {
			c = c1
		}
		var x, y float32
		switch {
		case c&top != 0:
			x = x0 + (x1-x0)*(fymin-y0)/(y1-y0)
			y = fymin
		case c&bottom != 0:
			x = x0 + (x1-x0)*(fymax-y0)/(y1-y0)
			y = fymax
		case c&right != 0:
			y = y0 + (y1-y0)*(fxmax-x0)/(x1-x0)
			x = fxmax
		default:
			y = y0 + (y1-y0)*(fxmin-x0)/(x1-x0)
			x = fxmin
		}
		if c == c0 {
			x0, y0 = x, y
			c0 = code(x0, y0)
		} else {
			x1, y1 = x, y
			c1 = code(x1, y1)
		}
	}
	q0 := image.Pt(clamp(int(math32.Round(x0)), xmin, xmax), clamp(int(math32.Round(y0)), ymin, ymax))
	q1 := image.Pt(clamp(int(math32.Round(x1)), xmin, xmax), clamp(int(math32.Round(y1)), ymin, ymax))
	return q0, q1, true
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
