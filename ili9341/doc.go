// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ili9341 controls a 240x320 ILI9341 TFT display over 4-wire SPI.
//
// Pixels are sent in the 16 bits RGB565 format. Draw only transfers the
// destination rectangle, so small regions can be refreshed without redrawing
// the whole panel.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
package ili9341
