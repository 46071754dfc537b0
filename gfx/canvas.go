// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

// Canvas is a drawing surface on top of a display.
type Canvas struct {
	d    display.Drawer
	font Font
}

// New returns a Canvas drawing on d. When f is nil, Classic is used.
func New(d display.Drawer, f Font) *Canvas {
	if f == nil {
		f = Classic{}
	}
	return &Canvas{d: d, font: f}
}

// FillRect paints r in a single color.
func (c *Canvas) FillRect(r image.Rectangle, col rgb565.Color) error {
	return c.d.Draw(r, &image.Uniform{C: col}, image.Point{})
}

// DrawText draws s with its top left corner at pt.
//
// Only the text's bounding box is sent to the display; it is filled with bg
// behind the glyphs.
func (c *Canvas) DrawText(pt image.Point, s string, fg, bg rgb565.Color, size int) error {
	if s == "" {
		return nil
	}
	img, err := c.font.Rasterize(s, fg, bg, size)
	if err != nil {
		return err
	}
	b := img.Bounds()
	return c.d.Draw(b.Sub(b.Min).Add(pt), img, b.Min)
}

// Bounds returns the display's drawable area.
func (c *Canvas) Bounds() image.Rectangle {
	return c.d.Bounds()
}

func (c *Canvas) String() string {
	return fmt.Sprintf("gfx.Canvas{%s}", c.d)
}
