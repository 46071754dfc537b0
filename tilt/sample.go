// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tilt

import (
	"fmt"

	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/tiltmon/mpu6050"
)

// Vector3 is an acceleration in m/s² along the sensor's axes.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// SensorSample is one reading of the inertial sensor.
type SensorSample struct {
	Acceleration Vector3
	// Temperature in °C.
	Temperature float64
}

// Source produces sensor samples.
//
// ReadSample blocks for the duration of one bus transaction. Values are
// passed through as read; there is no filtering and no retry.
type Source interface {
	ReadSample() (SensorSample, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() (SensorSample, error)

// ReadSample implements Source.
func (f SourceFunc) ReadSample() (SensorSample, error) {
	return f()
}

// Sensor is the part of *mpu6050.Dev used by MPU6050Source.
type Sensor interface {
	Sense(s *mpu6050.Sample) error
}

// MPU6050Source reads samples from an MPU-6050.
type MPU6050Source struct {
	s Sensor
}

// NewMPU6050Source returns a Source reading from an initialized device.
func NewMPU6050Source(s Sensor) *MPU6050Source {
	return &MPU6050Source{s: s}
}

// ReadSample implements Source.
func (m *MPU6050Source) ReadSample() (SensorSample, error) {
	var s mpu6050.Sample
	if err := m.s.Sense(&s); err != nil {
		return SensorSample{}, err
	}
	return SensorSample{
		Acceleration: Vector3{X: s.Acceleration.X, Y: s.Acceleration.Y, Z: s.Acceleration.Z},
		Temperature:  float64(s.Temperature-physic.ZeroCelsius) / float64(physic.Kelvin),
	}, nil
}

var _ Source = &MPU6050Source{}
var _ Sensor = &mpu6050.Dev{}
