// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gfx draws filled rectangles and text on any display.Drawer.
//
// Text is rasterized off screen into an rgb565.Image covering only the text's
// bounding box, so a redraw transfers the minimum number of pixels over a
// slow bus.
package gfx
