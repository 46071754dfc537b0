// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tilt

import "math"

// Orientation is the tilt of the sensor in degrees.
type Orientation struct {
	// Roll is the rotation around the X axis, in [-180, 180].
	Roll float64
	// Pitch is the rotation around the Y axis, in [-90, 90].
	Pitch float64
}

// Estimate derives roll and pitch from gravity alone.
//
// The result is only meaningful when the sensor is static or moving at
// constant speed. When both Y and Z are 0 the angles are whatever math.Atan2
// returns for those inputs.
func Estimate(a Vector3) Orientation {
	return Orientation{
		Roll:  math.Atan2(a.Y, a.Z) * 180 / math.Pi,
		Pitch: math.Atan2(-a.X, math.Sqrt(a.Y*a.Y+a.Z*a.Z)) * 180 / math.Pi,
	}
}
