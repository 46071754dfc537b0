// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tilt turns accelerometer samples into roll and pitch angles and
// shows them, with the sensor temperature, on a small color screen.
//
// A Monitor owns the whole pipeline: it brings the sensor and the screen up
// once, draws the static chrome, then repeatedly reads a sample, estimates
// the orientation, logs one diagnostic line and redraws the three value
// fields. Only the value boxes are repainted on each cycle.
package tilt
