// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tilt

import (
	"errors"
	"fmt"
	"image"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

// Field is a value shown on screen and redrawn on every cycle.
type Field struct {
	// Rect is the box cleared before each redraw. The text is drawn at its
	// top left corner.
	Rect image.Rectangle
	// Color is the text color.
	Color rgb565.Color
	// Current is the value last drawn, nil until the first render.
	Current *float64
	// Decimals is the number of digits after the decimal point.
	Decimals int
	// Unit is appended after a space.
	Unit string
}

// Label is a static text drawn once with the chrome.
type Label struct {
	Text string
	At   image.Point
}

// Layout describes where everything goes on screen.
type Layout struct {
	// Size is the screen size in pixels.
	Size image.Point
	// Background fills the whole screen and every value box.
	Background rgb565.Color

	Header      image.Rectangle
	HeaderColor rgb565.Color
	Title       string
	TitleAt     image.Point
	TitleColor  rgb565.Color
	TitleSize   int

	Labels     []Label
	LabelColor rgb565.Color
	// LabelColumn is the area covered by the labels. Value boxes must not
	// overlap it.
	LabelColumn image.Rectangle

	// TextSize is the text size of labels and values.
	TextSize int

	Roll        Field
	Pitch       Field
	Temperature Field
}

// DefaultLayout is a 240x320 portrait screen.
//
// Values use 14x26 glyphs so the boxes start right of "Pitch:", the widest
// label, and are wide enough for "-180.0 deg".
var DefaultLayout = Layout{
	Size:        image.Pt(240, 320),
	Background:  rgb565.Black,
	Header:      image.Rect(0, 0, 240, 40),
	HeaderColor: rgb565.DarkCyan,
	Title:       "ERESENSE - MPU6050",
	TitleAt:     image.Pt(10, 14),
	TitleColor:  rgb565.White,
	TitleSize:   1,
	Labels: []Label{
		{Text: "Roll:", At: image.Pt(10, 70)},
		{Text: "Pitch:", At: image.Pt(10, 110)},
		{Text: "Temp:", At: image.Pt(10, 150)},
	},
	LabelColor:  rgb565.White,
	LabelColumn: image.Rect(0, 40, 96, 320),
	TextSize:    2,
	Roll:        Field{Rect: image.Rect(100, 70, 240, 96), Color: rgb565.Green, Decimals: 1, Unit: "deg"},
	Pitch:       Field{Rect: image.Rect(100, 110, 240, 136), Color: rgb565.Cyan, Decimals: 1, Unit: "deg"},
	Temperature: Field{Rect: image.Rect(100, 150, 240, 176), Color: rgb565.Red, Decimals: 1, Unit: "C"},
}

// Validate returns an error if a value box is empty, falls outside the
// screen, or overlaps the header, the labels or another value box.
func (l *Layout) Validate() error {
	screen := image.Rectangle{Max: l.Size}
	if screen.Empty() {
		return errors.New("tilt: empty screen")
	}
	fields := []struct {
		name string
		f    *Field
	}{{"roll", &l.Roll}, {"pitch", &l.Pitch}, {"temperature", &l.Temperature}}
	for i, a := range fields {
		r := a.f.Rect
		switch {
		case r.Empty():
			return fmt.Errorf("tilt: %s box is empty", a.name)
		case !r.In(screen):
			return fmt.Errorf("tilt: %s box %v is outside the screen %v", a.name, r, screen)
		case r.Overlaps(l.Header):
			return fmt.Errorf("tilt: %s box %v overlaps the header %v", a.name, r, l.Header)
		case r.Overlaps(l.LabelColumn):
			return fmt.Errorf("tilt: %s box %v overlaps the labels %v", a.name, r, l.LabelColumn)
		}
		if a.f.Decimals < 0 {
			return fmt.Errorf("tilt: %s has %d decimals", a.name, a.f.Decimals)
		}
		for _, b := range fields[i+1:] {
			if r.Overlaps(b.f.Rect) {
				return fmt.Errorf("tilt: %s box %v overlaps %s box %v", a.name, r, b.name, b.f.Rect)
			}
		}
	}
	return nil
}
