// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgb565

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModelRoundTrip(t *testing.T) {
	for c := 0; c <= 0xFFFF; c++ {
		if got := Model.Convert(Color(c)); got != Color(c) {
			t.Fatalf("Convert(%v) = %v", Color(c), got)
		}
		r, g, b, a := Color(c).RGBA()
		if got := Model.Convert(color.RGBA64{uint16(r), uint16(g), uint16(b), uint16(a)}); got != Color(c) {
			t.Fatalf("Convert(RGBA64 of %v) = %v", Color(c), got)
		}
	}
}

func TestConvert(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   color.Color
		want Color
	}{
		{"black", color.Black, Black},
		{"white", color.White, White},
		{"red", color.RGBA{R: 0xFF, A: 0xFF}, Red},
		{"green", color.NRGBA{G: 0xFF, A: 0xFF}, Green},
		{"blue", color.RGBA{B: 0xFF, A: 0xFF}, Blue},
		{"cyan", color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}, Cyan},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(Model.Convert(tc.in), color.Color(tc.want)); diff != "" {
				t.Errorf("Convert() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	r, g, b := White.RGB()
	if r != 0xFF || g != 0xFF || b != 0xFF {
		t.Errorf("White.RGB() = %d, %d, %d", r, g, b)
	}
	if got := FromRGB(0x00, 0x80, 0x80); got != 0x0410 {
		t.Errorf("FromRGB() = %v", got)
	}
	if got := Red.Bytes(); got != [2]byte{0xF8, 0x00} {
		t.Errorf("Red.Bytes() = %#v", got)
	}
}

func TestImage(t *testing.T) {
	img := NewImage(image.Rect(10, 20, 14, 22))
	if diff := cmp.Diff(len(img.Pix), 4*2*2); diff != "" {
		t.Errorf("len(Pix) difference (-got +want):\n%s", diff)
	}
	img.Set(11, 21, color.RGBA{R: 0xFF, A: 0xFF})
	if got := img.RGB565At(11, 21); got != Red {
		t.Errorf("RGB565At() = %v", got)
	}
	if got := img.Pix[img.PixOffset(11, 21)]; got != 0xF8 {
		t.Errorf("Pix = %#x", got)
	}
	// Out of bounds is ignored.
	img.Set(0, 0, color.White)
	if got := img.At(0, 0); got != Black {
		t.Errorf("At(0, 0) = %v", got)
	}

	img.Fill(image.Rect(0, 0, 12, 21), Cyan)
	want := []Color{
		Cyan, Cyan, Black, Black,
		Black, Red, Black, Black,
	}
	var got []Color
	for y := 20; y < 22; y++ {
		for x := 10; x < 14; x++ {
			got = append(got, img.RGB565At(x, y))
		}
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("pixels difference (-got +want):\n%s", diff)
	}
}

func TestSubImage(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 4, 4))
	sub := img.SubImage(image.Rect(2, 2, 6, 6))
	if diff := cmp.Diff(sub.Bounds(), image.Rect(2, 2, 4, 4)); diff != "" {
		t.Errorf("Bounds() difference (-got +want):\n%s", diff)
	}
	sub.SetRGB565(3, 3, Yellow)
	if got := img.RGB565At(3, 3); got != Yellow {
		t.Errorf("shared pixel = %v", got)
	}
	if !img.SubImage(image.Rect(5, 5, 6, 6)).Bounds().Empty() {
		t.Error("expected empty SubImage")
	}
}
