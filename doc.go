// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tiltmon is a container for a tilt monitor built on periph.io.
//
// The mpu6050 and ili9341 packages are the device drivers, tilt is the
// application core and cmd/tiltmon the program running it on a single board
// computer.
package tiltmon
