// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgb565 implements the 16 bits per pixel color format used by small
// TFT controllers like the ILI9341.
//
// Pixels are stored big endian, which is the byte order the controllers
// expect on the wire, so an Image's Pix can be streamed as is.
package rgb565

import (
	"fmt"
	"image"
	"image/color"
)

// Color is a 5-6-5 bits RGB color.
type Color uint16

// Common colors, same values as the Adafruit GFX palette.
const (
	Black       Color = 0x0000
	Navy        Color = 0x000F
	DarkGreen   Color = 0x03E0
	DarkCyan    Color = 0x03EF
	Maroon      Color = 0x7800
	LightGrey   Color = 0xC618
	DarkGrey    Color = 0x7BEF
	Blue        Color = 0x001F
	Green       Color = 0x07E0
	Cyan        Color = 0x07FF
	Red         Color = 0xF800
	Magenta     Color = 0xF81F
	Yellow      Color = 0xFFE0
	White       Color = 0xFFFF
	Orange      Color = 0xFD20
	GreenYellow Color = 0xAFE5
)

// FromRGB packs 8 bits channels into a Color, dropping the low bits.
func FromRGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGB returns the color expanded back to 8 bits per channel.
//
// The high bits are replicated in the low bits so that White maps to 0xFF.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("RGB565(%#04x)", uint16(c))
}

// Bytes returns the color in wire order.
func (c Color) Bytes() [2]byte {
	return [2]byte{byte(c >> 8), byte(c)}
}

// Model is the color Model for Color.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return toColor(c)
}

func toColor(c color.Color) Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return Color((r>>11)<<11 | (g>>10)<<5 | b>>11)
}

// Image is an in-memory image of RGB565 pixels.
type Image struct {
	// Pix holds the pixels, two bytes each, big endian.
	Pix []byte
	// Stride is the Pix stride in bytes between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewImage returns an Image of the given bounds, all black.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	return &Image{Pix: make([]byte, 2*w*h), Stride: 2 * w, Rect: r}
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At returns the pixel at (x, y), Black if outside the bounds.
func (i *Image) RGB565At(x, y int) Color {
	if !(image.Point{x, y}.In(i.Rect)) {
		return Black
	}
	o := i.PixOffset(x, y)
	return Color(uint16(i.Pix[o])<<8 | uint16(i.Pix[o+1]))
}

// Opaque reports true, RGB565 has no alpha channel.
func (i *Image) Opaque() bool {
	return true
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*2
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, toColor(c))
}

// SetRGB565 sets the pixel at (x, y). Out of bounds writes are ignored.
func (i *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	o := i.PixOffset(x, y)
	i.Pix[o] = byte(c >> 8)
	i.Pix[o+1] = byte(c)
}

// Fill sets every pixel of r, clipped to the image, to c.
func (i *Image) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(i.Rect)
	hi, lo := byte(c>>8), byte(c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		o := i.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			i.Pix[o] = hi
			i.Pix[o+1] = lo
			o += 2
		}
	}
}

// SubImage returns the part of the image visible through r. The pixels are
// shared with the original image.
func (i *Image) SubImage(r image.Rectangle) *Image {
	r = r.Intersect(i.Rect)
	if r.Empty() {
		return &Image{}
	}
	o := i.PixOffset(r.Min.X, r.Min.Y)
	return &Image{Pix: i.Pix[o:], Stride: i.Stride, Rect: r}
}

var _ color.Color = Color(0)
var _ image.Image = (*Image)(nil)
