// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tinygo

// tiltmon-mcu is the microcontroller build of tiltmon for an ESP32 with an
// MPU-6050 on I²C and an ILI9341 on SPI.
//
//	tinygo flash -target esp32-coreboard-v2 ./cmd/tiltmon-mcu
//
// The diagnostic lines are written to the default UART at 115200 bauds.
package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log"
	"machine"
	"os"
	"time"

	"golang.org/x/image/draw"
	"tinygo.org/x/drivers/ili9341"
	tinympu "tinygo.org/x/drivers/mpu6050"

	"github.com/GermanBionicSystems/tiltmon/gfx"
	"github.com/GermanBionicSystems/tiltmon/mpu6050"
	"github.com/GermanBionicSystems/tiltmon/rgb565"
	"github.com/GermanBionicSystems/tiltmon/tilt"
)

// Pin map.
const (
	i2cSDA = machine.GPIO21
	i2cSCL = machine.GPIO22

	tftCS  = machine.GPIO5
	tftDC  = machine.GPIO2
	tftRST = machine.GPIO4

	spiSCK = machine.GPIO18
	spiSDI = machine.GPIO19
	spiSDO = machine.GPIO23
)

// MPU-6050 power management.
const (
	pwrMgmt1    = 0x6B
	deviceReset = 0x80
)

// panel implements tilt.Screen on the TinyGo ILI9341 driver.
type panel struct {
	d    *ili9341.Device
	font gfx.Font
}

func (p *panel) FillRect(r image.Rectangle, c rgb565.Color) error {
	r = r.Intersect(p.bounds())
	if r.Empty() {
		return nil
	}
	return p.d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), toRGBA(c))
}

func (p *panel) DrawText(pt image.Point, s string, fg, bg rgb565.Color, size int) error {
	if s == "" {
		return nil
	}
	img, err := p.font.Rasterize(s, fg, bg, size)
	if err != nil {
		return err
	}
	b := img.Bounds()
	// DrawRGBBitmap8 doesn't clip.
	if vis := b.Add(pt).Intersect(p.bounds()); vis != b.Add(pt) {
		if vis.Empty() {
			return nil
		}
		crop := rgb565.NewImage(image.Rectangle{Max: vis.Size()})
		draw.Draw(crop, crop.Bounds(), img, vis.Min.Sub(pt), draw.Src)
		img, b, pt = crop, crop.Bounds(), vis.Min
	}
	return p.d.DrawRGBBitmap8(int16(pt.X), int16(pt.Y), img.Pix, int16(b.Dx()), int16(b.Dy()))
}

func (p *panel) bounds() image.Rectangle {
	w, h := p.d.Size()
	return image.Rect(0, 0, int(w), int(h))
}

func toRGBA(c rgb565.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func sensorUp() (tilt.Source, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{SDA: i2cSDA, SCL: i2cSCL, Frequency: 400 * machine.KHz}); err != nil {
		return nil, err
	}
	if d := tinympu.New(bus); !d.Connected() {
		return nil, errors.New("mpu6050: no device")
	}
	// The TinyGo driver assumes ±2g when converting, so the registers are
	// programmed and decoded here with the periph driver's tables.
	addr := uint8(mpu6050.DefaultAddress)
	opts := mpu6050.DefaultOpts
	if err := bus.WriteRegister(addr, pwrMgmt1, []byte{deviceReset}); err != nil {
		return nil, err
	}
	time.Sleep(100 * time.Millisecond)
	for _, w := range mpu6050.ConfigRegisters(&opts) {
		if err := bus.WriteRegister(addr, w[0], w[1:]); err != nil {
			return nil, err
		}
	}
	return tilt.NewMPU6050Source(&burstSensor{bus: bus, addr: addr, opts: opts}), nil
}

// burstSensor reads an MPU-6050 configured with opts over a TinyGo bus.
type burstSensor struct {
	bus  *machine.I2C
	addr uint8
	opts mpu6050.Opts
	buf  [mpu6050.BurstLen]byte
}

func (b *burstSensor) Sense(s *mpu6050.Sample) error {
	if err := b.bus.ReadRegister(b.addr, mpu6050.BurstRegister, b.buf[:]); err != nil {
		return err
	}
	mpu6050.Decode(b.buf[:], &b.opts, s)
	return nil
}

func screenUp() (tilt.Screen, error) {
	bus := machine.SPI0
	if err := bus.Configure(machine.SPIConfig{SCK: spiSCK, SDO: spiSDO, SDI: spiSDI, Frequency: 40 * machine.MHz}); err != nil {
		return nil, err
	}
	d := ili9341.NewSPI(bus, tftDC, tftCS, tftRST)
	d.Configure(ili9341.Config{Rotation: ili9341.Rotation0})
	return &panel{d: d, font: gfx.Classic{}}, nil
}

func main() {
	// Let the UART settle.
	time.Sleep(200 * time.Millisecond)
	m := tilt.New(&tilt.Opts{Period: tilt.DefaultOpts.Period, Log: log.New(os.Stdout, "", 0)})
	_ = m.Start(sensorUp, screenUp)
	_ = m.Run(context.Background())
}
