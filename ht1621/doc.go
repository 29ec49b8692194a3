// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ht1621 drives a Holtek HT1621 segment LCD controller wired to a
// utility meter glass: a six character field with five decimal points, a
// battery and a signal gauge, volume/energy/flow units and a set of status
// icons, some of them printed in both English and Russian.
//
// The controller is write only. The driver keeps a copy of the chip's display
// RAM in a Buffer, every operation edits that copy and then sends the whole
// of it to the chip.
//
// Two transports are supported. NewGPIO bit-bangs the three wire interface
// (CS, WR and DATA) and NewSPI sends the same frames as SPI block writes.
// The transport is fixed when the device is created.
//
// # Datasheet
//
// https://www.holtek.com/webapi/116711/HT1621v321.pdf
package ht1621
