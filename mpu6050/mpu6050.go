// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mpu6050

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// AccelRange is the accelerometer full scale range.
type AccelRange byte

// GyroRange is the gyroscope full scale range.
type GyroRange byte

// Bandwidth is the digital low pass filter setting, shared by the
// accelerometer and the gyroscope.
type Bandwidth byte

const (
	Accel2G  AccelRange = 0 // ±2g
	Accel4G  AccelRange = 1 // ±4g
	Accel8G  AccelRange = 2 // ±8g
	Accel16G AccelRange = 3 // ±16g

	Gyro250DPS  GyroRange = 0 // ±250°/s
	Gyro500DPS  GyroRange = 1 // ±500°/s
	Gyro1000DPS GyroRange = 2 // ±1000°/s
	Gyro2000DPS GyroRange = 3 // ±2000°/s

	Bandwidth260Hz Bandwidth = 0
	Bandwidth184Hz Bandwidth = 1
	Bandwidth94Hz  Bandwidth = 2
	Bandwidth44Hz  Bandwidth = 3
	Bandwidth21Hz  Bandwidth = 4
	Bandwidth10Hz  Bandwidth = 5
	Bandwidth5Hz   Bandwidth = 6

	// DefaultAddress is the address with AD0 low. Use 0x69 with AD0 high.
	DefaultAddress uint16 = 0x68

	// StandardGravity converts g to m/s².
	StandardGravity = 9.80665
)

// Registers
const (
	regSampleRateDiv   byte = 0x19
	regConfig          byte = 0x1A
	regGyroConfig      byte = 0x1B
	regAccelConfig     byte = 0x1C
	regAccelXOutH      byte = 0x3B
	regSignalPathReset byte = 0x68
	regPowerMgmt1      byte = 0x6B
	regWhoAmI          byte = 0x75

	deviceReset  byte = 0x80
	sleepBit     byte = 0x40
	clockPLLXGyr byte = 0x01
	resetAllPath byte = 0x07

	// Registers 0x3B to 0x48: accel XYZ, temperature, gyro XYZ.
	burstLen = 14
)

// Burst read used by Sense.
const (
	BurstRegister = regAccelXOutH
	BurstLen      = burstLen
)

// accelLSB is the count per g for each AccelRange.
var accelLSB = [...]float64{16384, 8192, 4096, 2048}

// gyroLSB is the count per °/s for each GyroRange.
var gyroLSB = [...]float64{131, 65.5, 32.8, 16.4}

// DefaultOpts is the recommended default options for static tilt sensing.
var DefaultOpts = Opts{
	AccelRange:       Accel8G,
	GyroRange:        Gyro500DPS,
	Bandwidth:        Bandwidth21Hz,
	ExpectedDeviceID: 0x68,
}

// Opts defines the options for the device.
type Opts struct {
	AccelRange AccelRange
	GyroRange  GyroRange
	Bandwidth  Bandwidth
	// SampleRateDivider divides the 1kHz internal rate (with the filter
	// enabled). 0 samples at 1kHz.
	SampleRateDivider byte
	// ExpectedDeviceID is compared to WHO_AM_I. Some clones report another
	// value. 0 means 0x68.
	ExpectedDeviceID byte
}

// Vector is a reading on the X, Y and Z axes of the chip.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) String() string {
	return fmt.Sprintf("X:%.3f Y:%.3f Z:%.3f", v.X, v.Y, v.Z)
}

// Sample is one consistent reading of all the sensors.
type Sample struct {
	// Acceleration in m/s².
	Acceleration Vector
	// Rotation in °/s.
	Rotation Vector
	// Temperature of the die.
	Temperature physic.Temperature
}

// Dev is a handle to an initialized MPU-6050.
type Dev struct {
	d    *i2c.Dev
	opts Opts

	mu  sync.Mutex
	buf [burstLen]byte
}

// NewI2C returns a Dev using the specified bus and address.
//
// The device is reset, its identity verified and it is configured with
// opts, DefaultOpts when nil. An error is returned if no MPU-6050 answers.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.AccelRange > Accel16G {
		return nil, fmt.Errorf("mpu6050: invalid accelerometer range %d", opts.AccelRange)
	}
	if opts.GyroRange > Gyro2000DPS {
		return nil, fmt.Errorf("mpu6050: invalid gyroscope range %d", opts.GyroRange)
	}
	if opts.Bandwidth > Bandwidth5Hz {
		return nil, fmt.Errorf("mpu6050: invalid bandwidth %d", opts.Bandwidth)
	}
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, opts: *opts}
	if d.opts.ExpectedDeviceID == 0 {
		d.opts.ExpectedDeviceID = DefaultOpts.ExpectedDeviceID
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("MPU6050{%s}", d.d)
}

// Sense reads the accelerometer, the gyroscope and the temperature in a
// single burst so the values belong to the same sample.
func (d *Dev) Sense(s *Sample) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.d.Tx([]byte{regAccelXOutH}, d.buf[:]); err != nil {
		return fmt.Errorf("mpu6050: %w", err)
	}
	Decode(d.buf[:], &d.opts, s)
	return nil
}

// Halt puts the device to sleep. The next NewI2C wakes it up.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeRegister(regPowerMgmt1, sleepBit)
}

// Opts returns the options the device was configured with.
func (d *Dev) Opts() Opts {
	return d.opts
}

func (d *Dev) init() error {
	id, err := d.readRegister(regWhoAmI)
	if err != nil {
		return fmt.Errorf("mpu6050: %w", err)
	}
	if id != d.opts.ExpectedDeviceID {
		return fmt.Errorf("mpu6050: wrong device connected, WHO_AM_I is %#x, expected %#x", id, d.opts.ExpectedDeviceID)
	}

	if err := d.writeRegister(regPowerMgmt1, deviceReset); err != nil {
		return err
	}
	if err := d.waitReset(); err != nil {
		return err
	}

	for _, w := range ConfigRegisters(&d.opts) {
		if err := d.writeRegister(w[0], w[1]); err != nil {
			return err
		}
	}
	return nil
}

// waitReset polls until the reset bit self clears.
func (d *Dev) waitReset() error {
	for i := 0; i < 10; i++ {
		v, err := d.readRegister(regPowerMgmt1)
		if err != nil {
			return fmt.Errorf("mpu6050: %w", err)
		}
		if v&deviceReset == 0 {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return errors.New("mpu6050: device reset timed out")
}

func (d *Dev) readRegister(reg byte) (byte, error) {
	var r [1]byte
	err := d.d.Tx([]byte{reg}, r[:])
	return r[0], err
}

func (d *Dev) writeRegister(reg, value byte) error {
	if err := d.d.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("mpu6050: write %#x: %w", reg, err)
	}
	return nil
}

// ConfigRegisters returns the register and value pairs that configure a
// freshly reset device with opts and wake it up, in write order.
//
// NewI2C writes them itself; they are exported for buses periph doesn't
// drive.
func ConfigRegisters(opts *Opts) [][2]byte {
	return [][2]byte{
		{regSignalPathReset, resetAllPath},
		{regSampleRateDiv, opts.SampleRateDivider},
		{regConfig, byte(opts.Bandwidth)},
		{regGyroConfig, byte(opts.GyroRange) << 3},
		{regAccelConfig, byte(opts.AccelRange) << 3},
		{regPowerMgmt1, clockPLLXGyr},
	}
}

// Decode converts BurstLen bytes read starting at register BurstRegister,
// as configured by opts, into s.
func Decode(b []byte, opts *Opts, s *Sample) {
	raw := func(i int) float64 {
		return float64(int16(binary.BigEndian.Uint16(b[i:])))
	}
	a := StandardGravity / accelLSB[opts.AccelRange]
	s.Acceleration = Vector{X: raw(0) * a, Y: raw(2) * a, Z: raw(4) * a}
	g := gyroLSB[opts.GyroRange]
	s.Rotation = Vector{X: raw(8) / g, Y: raw(10) / g, Z: raw(12) / g}
	s.Temperature = countToTemperature(int16(binary.BigEndian.Uint16(b[6:])))
}

// countToTemperature applies the datasheet formula: °C = count/340 + 36.53.
func countToTemperature(count int16) physic.Temperature {
	c := float64(count)/340 + 36.53
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Kelvin))
}

var _ conn.Resource = &Dev{}
