// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts holds the optional settings of the device.
type Opts struct {
	// Backlight is the pin switching the backlight. May be nil.
	Backlight gpio.PinOut
	// Frequency is the SPI clock used by NewSPI. The chip accepts up to
	// 150kHz at 3V.
	Frequency physic.Frequency
	// Crystal selects an external 32.768kHz crystal instead of the on-chip RC
	// oscillator.
	Crystal bool
}

// DefaultOpts is used when nil is passed as Opts.
var DefaultOpts = Opts{
	Frequency: 100 * physic.KiloHertz,
}

// Dev is a handle to a HT1621 controller and its glass.
//
// Dev is not safe for concurrent use.
type Dev struct {
	t         transport
	backlight gpio.PinOut
	buf       Buffer
	on        bool
	lit       bool
}

// NewGPIO returns a device driven through three GPIO pins: chip select, the
// write clock and the serial data line.
func NewGPIO(cs, wr, data gpio.PinOut, opts *Opts) (*Dev, error) {
	if cs == nil || wr == nil || data == nil {
		return nil, errors.New("ht1621: CS, WR and DATA pins are required")
	}
	return newDev(&pinTransport{cs: cs, wr: wr, data: data}, opts)
}

// NewSPI returns a device driven through an SPI port. cs may be nil when the
// SPI controller asserts chip select itself.
func NewSPI(p spi.Port, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	if p == nil {
		return nil, errors.New("ht1621: SPI port is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	f := opts.Frequency
	if f == 0 {
		f = DefaultOpts.Frequency
	}
	// WR idles high and data is sampled on its rising edge.
	c, err := p.Connect(f, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("ht1621: %w", err)
	}
	return newDev(&spiTransport{conn: c, cs: cs}, opts)
}

func newDev(t transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{t: t, backlight: opts.Backlight}
	d.buf[0] = modeData
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init(opts *Opts) error {
	clock := CmdRC256K
	if opts.Crystal {
		clock = CmdXtal32K
	}
	for _, c := range initSequence(clock) {
		if err := d.command(c); err != nil {
			return err
		}
	}
	d.on = true
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ht1621.Dev{%s}", d.t)
}

// Halt clears the glass and turns off the display and the backlight.
func (d *Dev) Halt() error {
	err := d.Clear()
	if err2 := d.DisplayOff(); err == nil {
		err = err2
	}
	if err2 := d.BacklightOff(); err == nil {
		err = err2
	}
	return err
}

// DisplayOn turns on the LCD bias generator. The backlight is not affected.
func (d *Dev) DisplayOn() error {
	if err := d.command(CmdLCDOn); err != nil {
		return err
	}
	d.on = true
	return nil
}

// DisplayOff turns off the LCD bias generator. The display RAM is kept.
func (d *Dev) DisplayOff() error {
	if err := d.command(CmdLCDOff); err != nil {
		return err
	}
	d.on = false
	return nil
}

// On reports whether the display was last switched on.
func (d *Dev) On() bool {
	return d.on
}

// Clear darkens every segment of the glass.
func (d *Dev) Clear() error {
	d.buf.clearAll()
	return d.flush()
}

// Buffer returns a copy of the display RAM image last sent.
func (d *Dev) Buffer() Buffer {
	return d.buf
}

// Set lights or darkens one element. Lighting an element that shares its
// place with another one darkens the other.
func (d *Dev) Set(e Element, on bool) error {
	if !e.valid() {
		return fmt.Errorf("ht1621: invalid element %d", uint8(e))
	}
	return d.update(func(b *Buffer) { b.enable(e, on) })
}

// update applies fn to the buffer and sends the result.
func (d *Dev) update(fn func(b *Buffer)) error {
	fn(&d.buf)
	return d.flush()
}

func (d *Dev) flush() error {
	return d.send(dataFrame(&d.buf))
}

func (d *Dev) command(c Command) error {
	return d.send(commandFrame(c))
}

func (d *Dev) send(f []byte) error {
	if err := d.t.write(f); err != nil {
		return fmt.Errorf("ht1621: %w", err)
	}
	return nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
