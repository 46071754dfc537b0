// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili9341

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/GermanBionicSystems/tiltmon/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Rotation is the orientation of the panel, the connector being at the
// bottom in Portrait.
type Rotation byte

// Possible rotations, clockwise.
const (
	Portrait Rotation = iota
	Landscape
	PortraitFlipped
	LandscapeFlipped
)

func (r Rotation) madctl() byte {
	switch r {
	case Landscape:
		return madctlMV | madctlBGR
	case PortraitFlipped:
		return madctlMY | madctlBGR
	case LandscapeFlipped:
		return madctlMX | madctlMY | madctlMV | madctlBGR
	default:
		return madctlMX | madctlBGR
	}
}

func (r Rotation) swapsAxes() bool {
	return r == Landscape || r == LandscapeFlipped
}

func (r Rotation) String() string {
	switch r {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case PortraitFlipped:
		return "portrait-flipped"
	case LandscapeFlipped:
		return "landscape-flipped"
	default:
		return fmt.Sprintf("Rotation(%d)", byte(r))
	}
}

// Set sets the Rotation to a value represented by the string s. Set
// implements the flag.Value interface.
func (r *Rotation) Set(s string) error {
	for v := Portrait; v <= LandscapeFlipped; v++ {
		if v.String() == s {
			*r = v
			return nil
		}
	}
	return fmt.Errorf("unknown rotation %q: expected portrait, landscape, portrait-flipped or landscape-flipped", s)
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:        240,
	H:        320,
	Rotation: Portrait,
	Freq:     24 * physic.MegaHertz,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the panel size in Portrait.
	W int
	H int
	// Rotation is applied by Init.
	Rotation Rotation
	// Freq is the SPI clock. The controller is specified for 10MHz writes
	// but most panels run fine much faster.
	Freq physic.Frequency
}

// Dev is an open handle to the display controller.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinOut

	opts     Opts
	rotation Rotation
	rect     image.Rectangle
	// maxTx is the largest transfer accepted by the SPI port.
	maxTx int
}

// New returns a Dev object that communicates over SPI to an ILI9341 display
// controller.
//
// # Wiring
//
// Connect SDI to SPI_MOSI, SCK to SPI_CLK, CS to SPI_CS. dc is the
// data/command select pin and is required. rst may be nil when the RESET
// line is tied high, a software reset is then used.
//
// The display is not touched until Init is called.
func New(p spi.Port, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("ili9341: a dc pin is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	freq := opts.Freq
	if freq == 0 {
		freq = DefaultOpts.Freq
	}
	c, err := p.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ili9341: %w", err)
	}
	d := &Dev{
		c:     c,
		dc:    dc,
		rst:   rst,
		opts:  *opts,
		maxTx: 4096,
	}
	if l, ok := c.(conn.Limits); ok {
		if n := l.MaxTxSize(); n > 0 {
			d.maxTx = n
		}
	}
	d.setBounds(opts.Rotation)
	return d, nil
}

// Init resets the controller, programs it and turns the display on.
//
// The panel content is undefined until the first Draw.
func (d *Dev) Init() error {
	if err := d.reset(); err != nil {
		return err
	}
	eh := errorHandler{d: d}
	initDisplay(&eh, d.rotation)
	return eh.err
}

// SetRotation changes the orientation. Bounds follows the new orientation.
func (d *Dev) SetRotation(r Rotation) error {
	eh := errorHandler{d: d}
	setRotation(&eh, r)
	if eh.err != nil {
		return eh.err
	}
	d.setBounds(r)
	return nil
}

// Rotation returns the current orientation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

func (d *Dev) String() string {
	return fmt.Sprintf("ili9341.Dev{%s, %s, %s}", d.c, d.dc, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a 16 bits color model, as implemented by rgb565.Color.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// Only r, clipped to the display, is transferred. It draws synchronously,
// once this function returns the display is updated. *rgb565.Image and
// *image.Uniform sources skip the per pixel color conversion.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	dst := r.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	sp = sp.Add(dst.Min.Sub(r.Min))

	eh := errorHandler{d: d}
	setWindow(&eh, dst)
	eh.sendData(pixels(dst, src, sp))
	return eh.err
}

// Halt turns off the display and puts the controller to sleep.
//
// Init must be called again to use the display.
func (d *Dev) Halt() error {
	eh := errorHandler{d: d}
	eh.sendCommand(displayOff)
	eh.sendCommand(sleepIn)
	return eh.err
}

func (d *Dev) setBounds(r Rotation) {
	d.rotation = r
	w, h := d.opts.W, d.opts.H
	if r.swapsAxes() {
		w, h = h, w
	}
	d.rect = image.Rect(0, 0, w, h)
}

// reset toggles the RESET line. Without one, Init relies on the software
// reset command.
func (d *Dev) reset() error {
	if d.rst == nil {
		return nil
	}
	eh := errorHandler{d: d}

	eh.rstOut(gpio.High)
	eh.delay(5 * time.Millisecond)
	eh.rstOut(gpio.Low)
	eh.delay(20 * time.Millisecond)
	eh.rstOut(gpio.High)
	eh.delay(displayOnDelay)

	return eh.err
}

// pixels returns the wire content for the window dst, reading src from sp.
func pixels(dst image.Rectangle, src image.Image, sp image.Point) []byte {
	w, h := dst.Dx(), dst.Dy()
	buf := make([]byte, 2*w*h)

	switch img := src.(type) {
	case *image.Uniform:
		c := rgb565.Model.Convert(img.C).(rgb565.Color).Bytes()
		for i := 0; i < len(buf); i += 2 {
			buf[i] = c[0]
			buf[i+1] = c[1]
		}
		return buf
	case *rgb565.Image:
		if (image.Rectangle{Min: sp, Max: sp.Add(dst.Size())}).In(img.Rect) {
			for y := 0; y < h; y++ {
				o := img.PixOffset(sp.X, sp.Y+y)
				copy(buf[2*w*y:2*w*(y+1)], img.Pix[o:o+2*w])
			}
			return buf
		}
	}

	// Generic version.
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := rgb565.Model.Convert(src.At(sp.X+x, sp.Y+y)).(rgb565.Color).Bytes()
			buf[i] = c[0]
			buf[i+1] = c[1]
			i += 2
		}
	}
	return buf
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
