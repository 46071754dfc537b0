// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	xdraw "golang.org/x/image/draw"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

// Font rasterizes a single line of text.
//
// size is a text size multiplier; 1 is the font's native size.
type Font interface {
	// Measure returns the width and height in pixels of s at size.
	Measure(s string, size int) image.Point
	// Rasterize renders s in fg on an opaque bg. The returned image bounds
	// start at (0, 0) and have the dimensions reported by Measure.
	Rasterize(s string, fg, bg color.Color, size int) (*rgb565.Image, error)
}

// Classic is the 7x13 fixed bitmap font, scaled up by whole pixels.
//
// At size 2 each glyph is 14x26 pixels.
type Classic struct{}

// Measure implements Font.
func (Classic) Measure(s string, size int) image.Point {
	size = clampSize(size)
	face := basicfont.Face7x13
	return image.Pt(font.MeasureString(face, s).Ceil()*size, face.Metrics().Height.Ceil()*size)
}

// Rasterize implements Font.
func (Classic) Rasterize(s string, fg, bg color.Color, size int) (*rgb565.Image, error) {
	size = clampSize(size)
	src := compose(basicfont.Face7x13, s, fg, bg)
	b := src.Bounds()
	dst := rgb565.NewImage(image.Rect(0, 0, b.Dx()*size, b.Dy()*size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst, nil
}

// TrueType renders text with an anti-aliased TrueType face.
//
// Faces are created lazily and cached per text size.
type TrueType struct {
	pointSize float64

	mu    sync.Mutex
	font  *truetype.Font
	faces map[int]font.Face
}

// NewTrueType parses a TrueType font. pointSize is the size used for text
// size 1.
func NewTrueType(ttf []byte, pointSize float64) (*TrueType, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("gfx: failed to parse font: %w", err)
	}
	if pointSize <= 0 {
		return nil, fmt.Errorf("gfx: invalid point size %g", pointSize)
	}
	return &TrueType{pointSize: pointSize, font: f, faces: map[int]font.Face{}}, nil
}

// GoMono returns the Go Mono font sized to match Classic's line height.
func GoMono() (*TrueType, error) {
	return NewTrueType(gomono.TTF, 11)
}

// Measure implements Font.
func (t *TrueType) Measure(s string, size int) image.Point {
	face := t.face(clampSize(size))
	return image.Pt(font.MeasureString(face, s).Ceil(), face.Metrics().Height.Ceil())
}

// Rasterize implements Font.
func (t *TrueType) Rasterize(s string, fg, bg color.Color, size int) (*rgb565.Image, error) {
	src := compose(t.face(clampSize(size)), s, fg, bg)
	dst := rgb565.NewImage(src.Bounds())
	xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

func (t *TrueType) face(size int) font.Face {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(t.font, &truetype.Options{
		Size:    t.pointSize * float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	t.faces[size] = f
	return f
}

// compose draws s on a bg filled context exactly as large as the text.
func compose(face font.Face, s string, fg, bg color.Color) image.Image {
	m := face.Metrics()
	dc := gg.NewContext(font.MeasureString(face, s).Ceil(), m.Height.Ceil())
	dc.SetColor(bg)
	dc.Clear()
	dc.SetColor(fg)
	dc.SetFontFace(face)
	dc.DrawString(s, 0, float64(m.Ascent.Ceil()))
	return dc.Image()
}

func clampSize(size int) int {
	if size < 1 {
		return 1
	}
	return size
}

var _ Font = Classic{}
var _ Font = &TrueType{}
