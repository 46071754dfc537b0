// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package console

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

func newDev(t *testing.T, w, h, scale int) (*Dev, *bytes.Buffer) {
	var out bytes.Buffer
	d, err := New(&Opts{W: w, H: h, Scale: scale, Out: &out})
	require.NoError(t, err)
	return d, &out
}

func TestNew(t *testing.T) {
	d, out := newDev(t, 8, 4, 2)
	assert.Equal(t, "console.Dev{8x4}", d.String())
	assert.Equal(t, image.Rect(0, 0, 8, 4), d.Bounds())
	assert.True(t, d.ColorModel() == rgb565.Model)
	assert.Zero(t, out.Len())

	_, err := New(&Opts{W: 0, H: 4})
	assert.Error(t, err)
}

func TestDraw(t *testing.T) {
	d, out := newDev(t, 8, 4, 2)
	require.NoError(t, d.Draw(image.Rect(2, 0, 20, 2), &image.Uniform{C: rgb565.Red}, image.Point{}))

	want := rgb565.NewImage(image.Rect(0, 0, 8, 4))
	want.Fill(image.Rect(2, 0, 8, 2), rgb565.Red)
	f := d.Frame()
	assert.Equal(t, want.Pix, f.Pix)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[H"), "missing cursor home: %q", s)
	assert.Equal(t, 2, strings.Count(s, "\n"))
	red := ansi256.Default.Block(color.NRGBA{R: 255, A: 255})
	black := ansi256.Default.Block(color.NRGBA{A: 255})
	// Row 0 samples x=0,2,4,6: one black cell then three red ones.
	assert.Equal(t, 3, strings.Count(strings.SplitN(s, "\n", 2)[0], red))
	assert.Contains(t, s, black)

	// Frame returns a copy.
	f.SetRGB565(0, 0, rgb565.White)
	assert.Equal(t, rgb565.Black, d.Frame().RGB565At(0, 0))
}

func TestDrawNegativeOrigin(t *testing.T) {
	d, _ := newDev(t, 8, 4, 4)
	src := rgb565.NewImage(image.Rect(0, 0, 5, 3))
	src.Fill(src.Bounds(), rgb565.Blue)
	src.SetRGB565(2, 1, rgb565.Green)

	require.NoError(t, d.Draw(image.Rect(-2, -1, 3, 2), src, image.Point{}))
	f := d.Frame()
	assert.Equal(t, rgb565.Green, f.RGB565At(0, 0))
	assert.Equal(t, rgb565.Blue, f.RGB565At(1, 0))
	assert.Equal(t, rgb565.Blue, f.RGB565At(2, 1))
	assert.Equal(t, rgb565.Black, f.RGB565At(3, 0))
	assert.Equal(t, rgb565.Black, f.RGB565At(0, 2))
}

func TestDrawNil(t *testing.T) {
	d, _ := newDev(t, 1, 1, 1)
	assert.Error(t, d.Draw(d.Bounds(), nil, image.Point{}))
}

func TestHalt(t *testing.T) {
	d, out := newDev(t, 1, 1, 1)
	require.NoError(t, d.Halt())
	assert.Equal(t, "\033[0m\n", out.String())
}
