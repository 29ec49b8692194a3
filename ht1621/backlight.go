// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// Backlight switches the backlight pin given in Opts. Any intensity above 0
// turns it on. Without a backlight pin it does nothing.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if d.backlight == nil {
		return nil
	}
	on := intensity > 0
	if err := d.backlight.Out(gpio.Level(on)); err != nil {
		return err
	}
	d.lit = on
	return nil
}

// BacklightOn turns the backlight on.
func (d *Dev) BacklightOn() error {
	return d.Backlight(0xff)
}

// BacklightOff turns the backlight off.
func (d *Dev) BacklightOff() error {
	return d.Backlight(0)
}

// BacklightLit reports the last state written to the backlight pin.
func (d *Dev) BacklightLit() bool {
	return d.lit
}

var _ display.DisplayBacklight = &Dev{}
