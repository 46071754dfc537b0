// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console implements a display.Drawer that paints an RGB565 screen
// in a terminal using ANSI color codes.
//
// Useful to run the whole pipeline on a board that has the sensor wired but
// not the TFT panel.
package console

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

// DefaultOpts emulates a 240x320 panel, one terminal cell per 4x4 pixels.
var DefaultOpts = Opts{
	W:     240,
	H:     320,
	Scale: 4,
}

// Opts represents the options available for this display.
type Opts struct {
	W, H int
	// Scale is the number of pixels per terminal cell in each direction.
	Scale   int
	Palette *ansi256.Palette
	// Out defaults to a colorable stdout.
	Out io.Writer

	_ struct{}
}

// Dev is a screen emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	scale   int
	palette ansi256.Palette

	mu    sync.Mutex
	frame *rgb565.Image
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("console: invalid size %dx%d", opts.W, opts.H)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	s := opts.Scale
	if s < 1 {
		s = 1
	}
	return &Dev{
		w:       w,
		scale:   s,
		palette: *p,
		frame:   rgb565.NewImage(image.Rect(0, 0, opts.W, opts.H)),
	}, nil
}

func (d *Dev) String() string {
	b := d.frame.Bounds()
	return fmt.Sprintf("console.Dev{%dx%d}", b.Dx(), b.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell prompt is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Bounds()
}

// Draw implements display.Drawer.
//
// The frame buffer is updated then the whole screen is repainted.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if src == nil {
		return errors.New("console: nil source image")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	// draw.Draw clips r to the frame and moves sp accordingly.
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.refresh()
}

// Frame returns a copy of the frame buffer.
func (d *Dev) Frame() *rgb565.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := rgb565.NewImage(d.frame.Bounds())
	copy(out.Pix, d.frame.Pix)
	return out
}

func (d *Dev) refresh() error {
	// Move the cursor home and paint over the previous frame.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H\033[0m")
	b := d.frame.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			c := color.NRGBAModel.Convert(d.frame.At(x, y)).(color.NRGBA)
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
