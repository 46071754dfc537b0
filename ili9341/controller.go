// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili9341

import (
	"image"
	"time"
)

// Commands
const (
	swReset        byte = 0x01
	sleepOut       byte = 0x11
	gammaSet       byte = 0x26
	displayOff     byte = 0x28
	displayOn      byte = 0x29
	columnAddrSet  byte = 0x2A
	pageAddrSet    byte = 0x2B
	memoryWrite    byte = 0x2C
	memoryAccess   byte = 0x36
	vScrollStart   byte = 0x37
	pixelFormat    byte = 0x3A
	frameControl1  byte = 0xB1
	displayFunc    byte = 0xB6
	powerControl1  byte = 0xC0
	powerControl2  byte = 0xC1
	vcomControl1   byte = 0xC5
	vcomControl2   byte = 0xC7
	positiveGamma  byte = 0xE0
	negativeGamma  byte = 0xE1
	enable3G       byte = 0xF2
	sleepIn        byte = 0x10
	pixelFormat16  byte = 0x55
	madctlMY       byte = 0x80
	madctlMX       byte = 0x40
	madctlMV       byte = 0x20
	madctlBGR      byte = 0x08
)

// displayOnDelay is the settle time after reset, sleep out and display on.
const displayOnDelay = 150 * time.Millisecond

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	delay(time.Duration)
}

// initSequence is the power, VCOM and gamma setup of the reference panel.
// The first entries are undocumented registers used by every vendor driver.
var initSequence = []struct {
	cmd  byte
	data []byte
}{
	{0xEF, []byte{0x03, 0x80, 0x02}},
	{0xCF, []byte{0x00, 0xC1, 0x30}},
	{0xED, []byte{0x64, 0x03, 0x12, 0x81}},
	{0xE8, []byte{0x85, 0x00, 0x78}},
	{0xCB, []byte{0x39, 0x2C, 0x00, 0x34, 0x02}},
	{0xF7, []byte{0x20}},
	{0xEA, []byte{0x00, 0x00}},
	{powerControl1, []byte{0x23}},
	{powerControl2, []byte{0x10}},
	{vcomControl1, []byte{0x3E, 0x28}},
	{vcomControl2, []byte{0x86}},
	{vScrollStart, []byte{0x00}},
	{pixelFormat, []byte{pixelFormat16}},
	{frameControl1, []byte{0x00, 0x18}},
	{displayFunc, []byte{0x08, 0x82, 0x27}},
	{enable3G, []byte{0x00}},
	{gammaSet, []byte{0x01}},
	{positiveGamma, []byte{0x0F, 0x31, 0x2B, 0x0C, 0x0E, 0x08, 0x4E, 0xF1, 0x37, 0x07, 0x10, 0x03, 0x0E, 0x09, 0x00}},
	{negativeGamma, []byte{0x00, 0x0E, 0x14, 0x03, 0x11, 0x07, 0x31, 0xC1, 0x48, 0x08, 0x0F, 0x0C, 0x31, 0x36, 0x0F}},
}

func initDisplay(ctrl controller, rot Rotation) {
	ctrl.sendCommand(swReset)
	ctrl.delay(displayOnDelay)

	for _, s := range initSequence {
		ctrl.sendCommand(s.cmd)
		ctrl.sendData(s.data)
	}

	setRotation(ctrl, rot)

	ctrl.sendCommand(sleepOut)
	ctrl.delay(displayOnDelay)
	ctrl.sendCommand(displayOn)
	ctrl.delay(displayOnDelay)
}

// setRotation programs the memory access control register. Colors are
// always sent as BGR, which is how the panel is wired.
func setRotation(ctrl controller, rot Rotation) {
	ctrl.sendCommand(memoryAccess)
	ctrl.sendData([]byte{rot.madctl()})
}

// setWindow restricts the following memory write to area and starts it.
func setWindow(ctrl controller, area image.Rectangle) {
	x0, x1 := area.Min.X, area.Max.X-1
	y0, y1 := area.Min.Y, area.Max.Y-1

	ctrl.sendCommand(columnAddrSet)
	ctrl.sendData([]byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)})

	ctrl.sendCommand(pageAddrSet)
	ctrl.sendData([]byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)})

	ctrl.sendCommand(memoryWrite)
}
