// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tiltmon shows the roll, pitch and temperature of an MPU-6050 on an ILI9341
// TFT panel.
//
// The sensor is on I²C, the panel on SPI with a data/command GPIO and an
// optional reset GPIO. With -console the screen is painted in the terminal
// instead. One diagnostic line per refresh is written to stdout, or to the
// UART named by -serial.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"go.bug.st/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/tiltmon/console"
	"github.com/GermanBionicSystems/tiltmon/gfx"
	"github.com/GermanBionicSystems/tiltmon/ili9341"
	"github.com/GermanBionicSystems/tiltmon/mpu6050"
	"github.com/GermanBionicSystems/tiltmon/tilt"
)

// closers collects everything to release on exit.
type closers []io.Closer

func (c *closers) add(x io.Closer) { *c = append(*c, x) }

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		_ = c[i].Close()
	}
}

type halter struct{ h interface{ Halt() error } }

func (h halter) Close() error { return h.h.Halt() }

func mainImpl() error {
	i2cName := flag.String("i2c", "", "I²C bus to use")
	addr := flag.Int("addr", int(mpu6050.DefaultAddress), "MPU-6050 I²C address")
	spiName := flag.String("spi", "", "SPI port to use")
	dcName := flag.String("dc", "GPIO25", "ILI9341 data/command GPIO")
	rstName := flag.String("rst", "GPIO24", "ILI9341 reset GPIO, empty if not wired")
	useConsole := flag.Bool("console", false, "paint the screen in the terminal instead of the panel")
	serialName := flag.String("serial", "", "UART for the diagnostic lines; stdout when empty")
	ttf := flag.Bool("ttf", false, "draw text with the Go Mono TrueType font")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	var cl closers
	defer cl.close()

	var out io.Writer = os.Stdout
	if *serialName != "" {
		p, err := serial.Open(*serialName, &serial.Mode{BaudRate: 115200, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit})
		if err != nil {
			return fmt.Errorf("failed to open serial port %s: %w", *serialName, err)
		}
		cl.add(p)
		out = p
	}
	// A console screen owns stdout, so the diagnostics go to stderr.
	if *useConsole && *serialName == "" {
		out = os.Stderr
	}

	var font gfx.Font = gfx.Classic{}
	if *ttf {
		f, err := gfx.GoMono()
		if err != nil {
			return err
		}
		font = f
	}

	m := tilt.New(&tilt.Opts{
		Period: tilt.DefaultOpts.Period,
		Log:    log.New(out, "", 0),
	})

	sensorUp := func() (tilt.Source, error) {
		b, err := i2creg.Open(*i2cName)
		if err != nil {
			return nil, err
		}
		cl.add(b)
		return openSensor(b, uint16(*addr))
	}
	screenUp := func() (tilt.Screen, error) {
		if *useConsole {
			d, err := console.New(&console.DefaultOpts)
			if err != nil {
				return nil, err
			}
			cl.add(halter{d})
			return gfx.New(d, font), nil
		}
		p, err := spireg.Open(*spiName)
		if err != nil {
			return nil, err
		}
		cl.add(p)
		d, err := openPanel(p, *dcName, *rstName)
		if err != nil {
			return nil, err
		}
		cl.add(halter{d})
		return gfx.New(d, font), nil
	}

	if err := m.Start(sensorUp, screenUp); err != nil {
		log.Print(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openSensor(b i2c.Bus, addr uint16) (tilt.Source, error) {
	d, err := mpu6050.NewI2C(b, addr, &mpu6050.DefaultOpts)
	if err != nil {
		return nil, err
	}
	log.Printf("%s", d)
	return tilt.NewMPU6050Source(d), nil
}

func openPanel(p spi.Port, dcName, rstName string) (*ili9341.Dev, error) {
	dc := gpioreg.ByName(dcName)
	if dc == nil {
		return nil, fmt.Errorf("unknown GPIO %q", dcName)
	}
	var rst gpio.PinOut
	if rstName != "" {
		if rst = gpioreg.ByName(rstName); rst == nil {
			return nil, fmt.Errorf("unknown GPIO %q", rstName)
		}
	}
	d, err := ili9341.New(p, dc, rst, &ili9341.DefaultOpts)
	if err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	log.Printf("%s", d)
	return d, nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "tiltmon: %s.\n", err)
		os.Exit(1)
	}
}
