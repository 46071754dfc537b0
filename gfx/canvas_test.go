// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

// frame is a display.Drawer recording every Draw call into memory.
type frame struct {
	img   *rgb565.Image
	draws []image.Rectangle
	err   error
}

func newFrame(w, h int) *frame {
	return &frame{img: rgb565.NewImage(image.Rect(0, 0, w, h))}
}

func (f *frame) String() string          { return "frame" }
func (f *frame) Halt() error             { return nil }
func (f *frame) ColorModel() color.Model { return rgb565.Model }
func (f *frame) Bounds() image.Rectangle { return f.img.Bounds() }

func (f *frame) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if f.err != nil {
		return f.err
	}
	f.draws = append(f.draws, r)
	draw.Draw(f.img, r, src, sp, draw.Src)
	return nil
}

// colors returns the number of pixels of each color found in r.
func (f *frame) colors(r image.Rectangle) map[rgb565.Color]int {
	out := map[rgb565.Color]int{}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out[f.img.RGB565At(x, y)]++
		}
	}
	return out
}

func TestFillRect(t *testing.T) {
	f := newFrame(20, 10)
	c := New(f, nil)
	r := image.Rect(2, 3, 7, 5)
	require.NoError(t, c.FillRect(r, rgb565.Red))
	assert.Equal(t, []image.Rectangle{r}, f.draws)
	assert.Equal(t, map[rgb565.Color]int{rgb565.Red: 10}, f.colors(r))
	assert.Equal(t, 190, f.colors(f.img.Bounds())[rgb565.Black])
}

func TestDrawTextClassic(t *testing.T) {
	f := newFrame(240, 60)
	c := New(f, Classic{})
	require.NoError(t, c.DrawText(image.Pt(10, 12), "Roll:", rgb565.White, rgb565.DarkCyan, 2))

	box := image.Rect(10, 12, 10+5*14, 12+26)
	assert.Equal(t, []image.Rectangle{box}, f.draws)
	in := f.colors(box)
	assert.NotZero(t, in[rgb565.White], "no glyph pixels")
	assert.NotZero(t, in[rgb565.DarkCyan], "no background pixels")
	// Integer scaling keeps each source pixel a solid 2x2 block.
	for y := box.Min.Y; y < box.Max.Y; y += 2 {
		for x := box.Min.X; x < box.Max.X; x += 2 {
			p := f.img.RGB565At(x, y)
			require.True(t, f.img.RGB565At(x+1, y) == p && f.img.RGB565At(x, y+1) == p && f.img.RGB565At(x+1, y+1) == p,
				"block at (%d,%d) is not uniform", x, y)
		}
	}
	assert.Equal(t, 240*60-box.Dx()*box.Dy(), f.colors(f.img.Bounds())[rgb565.Black], "text leaked outside its box")
}

func TestDrawTextEmpty(t *testing.T) {
	f := newFrame(10, 10)
	require.NoError(t, New(f, nil).DrawText(image.Pt(1, 1), "", rgb565.White, rgb565.Black, 2))
	assert.Empty(t, f.draws)
}

func TestDrawError(t *testing.T) {
	f := newFrame(10, 10)
	f.err = errors.New("bus")
	c := New(f, nil)
	assert.ErrorIs(t, c.FillRect(f.img.Bounds(), rgb565.Red), f.err)
	assert.ErrorIs(t, c.DrawText(image.Point{}, "x", rgb565.Red, rgb565.Black, 1), f.err)
}

func TestCanvasString(t *testing.T) {
	c := New(newFrame(1, 1), nil)
	assert.Equal(t, "gfx.Canvas{frame}", c.String())
	assert.Equal(t, image.Rect(0, 0, 1, 1), c.Bounds())
}
