// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tilt

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
)

// Screen is a color display that can fill rectangles and draw text.
//
// gfx.Canvas implements it on top of any display.Drawer.
type Screen interface {
	// FillRect paints r in a single color.
	FillRect(r image.Rectangle, c rgb565.Color) error
	// DrawText draws s with its top left corner at pt, fg on bg. size is a
	// text size multiplier.
	DrawText(pt image.Point, s string, fg, bg rgb565.Color, size int) error
}

var (
	// ErrChromeDrawn is returned when InitChrome is called more than once.
	ErrChromeDrawn = errors.New("tilt: chrome already drawn")
	// ErrNoChrome is returned when a field is rendered before InitChrome.
	ErrNoChrome = errors.New("tilt: chrome not drawn")
)

// Renderer draws the chrome once and the value fields on every cycle.
type Renderer struct {
	Roll        Field
	Pitch       Field
	Temperature Field

	s      Screen
	l      Layout
	chrome bool
}

// NewRenderer returns a Renderer drawing on s. It doesn't draw anything.
//
// When l is nil, DefaultLayout is used. If s has a Bounds method, like
// gfx.Canvas, its size must be the layout's.
func NewRenderer(s Screen, l *Layout) (*Renderer, error) {
	if l == nil {
		l = &DefaultLayout
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if b, ok := s.(interface{ Bounds() image.Rectangle }); ok && b.Bounds().Size() != l.Size {
		return nil, fmt.Errorf("tilt: layout is %dx%d but the screen is %dx%d", l.Size.X, l.Size.Y, b.Bounds().Dx(), b.Bounds().Dy())
	}
	r := &Renderer{s: s, l: *l, Roll: l.Roll, Pitch: l.Pitch, Temperature: l.Temperature}
	r.Roll.Current = nil
	r.Pitch.Current = nil
	r.Temperature.Current = nil
	return r, nil
}

// InitChrome clears the screen, then draws the header and the labels.
//
// It must be called exactly once, before any field is rendered.
func (r *Renderer) InitChrome() error {
	if r.chrome {
		return ErrChromeDrawn
	}
	l := &r.l
	if err := r.s.FillRect(image.Rectangle{Max: l.Size}, l.Background); err != nil {
		return fmt.Errorf("tilt: clearing screen: %w", err)
	}
	if err := r.s.FillRect(l.Header, l.HeaderColor); err != nil {
		return fmt.Errorf("tilt: drawing header: %w", err)
	}
	if err := r.s.DrawText(l.TitleAt, l.Title, l.TitleColor, l.HeaderColor, l.TitleSize); err != nil {
		return fmt.Errorf("tilt: drawing title: %w", err)
	}
	for _, lb := range l.Labels {
		if err := r.s.DrawText(lb.At, lb.Text, l.LabelColor, l.Background, l.TextSize); err != nil {
			return fmt.Errorf("tilt: drawing label %q: %w", lb.Text, err)
		}
	}
	r.chrome = true
	return nil
}

// RenderField clears f's box and draws v in it.
//
// The field is redrawn even if v equals f.Current. On success f.Current is
// set to v.
func (r *Renderer) RenderField(f *Field, v float64) error {
	if !r.chrome {
		return ErrNoChrome
	}
	if err := r.s.FillRect(f.Rect, r.l.Background); err != nil {
		return err
	}
	if err := r.s.DrawText(f.Rect.Min, FormatValue(v, f.Decimals, f.Unit), f.Color, r.l.Background, r.l.TextSize); err != nil {
		return err
	}
	f.Current = &v
	return nil
}

// FormatValue formats v with a fixed number of decimals followed by unit.
//
// Halfway values are rounded away from zero, so 0.25 with 1 decimal is "0.3".
// A value that rounds to zero is printed without a sign.
func FormatValue(v float64, decimals int, unit string) string {
	if decimals < 0 {
		decimals = 0
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		p := math.Pow10(decimals)
		if r := math.Round(v*p) / p; !math.IsInf(r, 0) {
			v = r
		}
		if v == 0 {
			v = 0
		}
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}
