// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paint provides the pixel-level primitives the compositor is
// built on: surface allocation, rectangular blits, blended outlines and
// single pixel access. Surfaces are plain [image.RGBA] values.
package paint

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrTooLarge is returned by [NewImage] when a surface would exceed
// [MaxPixels].
var ErrTooLarge = errors.New("paint: surface too large")

// MaxPixels is the largest number of pixels a single surface may hold.
// Allocation beyond it fails with [ErrTooLarge] instead of exhausting memory.
var MaxPixels = 1 << 26

// NewImage allocates a transparent surface of the given size with its
// origin at (0, 0). Negative sizes are treated as zero.
func NewImage(size image.Point) (*image.RGBA, error) {
	size.X = max(size.X, 0)
	size.Y = max(size.Y, 0)
	if size.X > 0 && size.Y > MaxPixels/size.X {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, size.X, size.Y)
	}
	return image.NewRGBA(image.Rectangle{Max: size}), nil
}

// Paste copies the pixels of src starting at sp into the dr region of dst,
// replacing what was there. This is the blit primitive used throughout
// the compositor; the region is clipped to both images.
func Paste(dst draw.Image, dr image.Rectangle, src image.Image, sp image.Point) {
	if dst == nil || src == nil {
		return
	}
	draw.Draw(dst, dr, src, sp, draw.Src)
}

// Fill sets every pixel of r in dst to c.
func Fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// BlendRect blends c over the pixels of r in dst at the given opacity (0-1).
func BlendRect(dst draw.Image, r image.Rectangle, c color.Color, opacity float32) {
	if opacity <= 0 {
		return
	}
	a := uint8(min(opacity, 1)*255 + 0.5)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, image.NewUniform(color.Alpha{a}), image.Point{}, draw.Over)
}

// Outline blends a one pixel wide outline of r into dst with the given
// color and opacity. Each pixel of the outline is blended exactly once.
func Outline(dst draw.Image, r image.Rectangle, c color.Color, opacity float32) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	BlendRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c, opacity)
	if r.Dy() == 1 {
		return
	}
	BlendRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c, opacity)
	BlendRect(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), c, opacity)
	if r.Dx() > 1 {
		BlendRect(dst, image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), c, opacity)
	}
}

// Corners returns the corner points of r as top-left, top-right,
// bottom-left, bottom-right pixel positions.
func Corners(r image.Rectangle) [4]image.Point {
	return [4]image.Point{
		r.Min,
		{r.Max.X - 1, r.Min.Y},
		{r.Min.X, r.Max.Y - 1},
		{r.Max.X - 1, r.Max.Y - 1},
	}
}

// Copy returns a copy of the r region of src as a new surface whose bounds
// are r itself.
func Copy(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(r)
	Paste(dst, r, src, r.Min)
	return dst
}
