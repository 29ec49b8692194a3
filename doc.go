// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segmentlcd is a container for the HT1621 segment LCD driver and
// its tools.
//
// ht1621 is the driver, screen7seg emulates the glass on a terminal, lcdimage
// draws it, glassweb mirrors it to web browsers and cmd/ht1621 drives it from
// the command line.
package segmentlcd
