// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

func TestClassicMeasure(t *testing.T) {
	data := []struct {
		s    string
		size int
		want image.Point
	}{
		{"Roll:", 1, image.Pt(35, 13)},
		{"Roll:", 2, image.Pt(70, 26)},
		{"-180.0 deg", 2, image.Pt(140, 26)},
		{"x", 0, image.Pt(7, 13)},
	}
	for _, line := range data {
		assert.Equal(t, line.want, Classic{}.Measure(line.s, line.size), "Measure(%q, %d)", line.s, line.size)
	}
}

func TestClassicRasterize(t *testing.T) {
	img, err := Classic{}.Rasterize("8", rgb565.Green, rgb565.Black, 3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 21, 39), img.Bounds())
	assert.Equal(t, rgb565.Black, img.RGB565At(0, 0), "corner should be background")
	assert.Contains(t, pixels(img), rgb565.Green)
}

func TestTrueType(t *testing.T) {
	tt, err := GoMono()
	require.NoError(t, err)
	m1 := tt.Measure("Temp", 1)
	m2 := tt.Measure("Temp", 2)
	assert.Positive(t, m1.X)
	assert.Positive(t, m1.Y)
	assert.Greater(t, m2.X, m1.X)
	assert.Greater(t, m2.Y, m1.Y)

	img, err := tt.Rasterize("Temp", rgb565.White, rgb565.Black, 2)
	require.NoError(t, err)
	assert.Equal(t, m2, img.Bounds().Size())
	assert.Equal(t, rgb565.Black, img.RGB565At(0, 0), "corner should be background")
	lit := 0
	for _, p := range pixels(img) {
		if p != rgb565.Black {
			lit++
		}
	}
	assert.NotZero(t, lit, "no glyph pixels")
	assert.Len(t, tt.faces, 2)
}

func TestNewTrueTypeErrors(t *testing.T) {
	_, err := NewTrueType([]byte("not a font"), 11)
	assert.Error(t, err)
	_, err = NewTrueType(gomono.TTF, 0)
	assert.Error(t, err)
}

func pixels(img *rgb565.Image) []rgb565.Color {
	b := img.Bounds()
	out := make([]rgb565.Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, img.RGB565At(x, y))
		}
	}
	return out
}
