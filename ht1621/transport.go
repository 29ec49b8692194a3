// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// transport sends one frame inside one chip select cycle.
type transport interface {
	write(p []byte) error
	String() string
}

// pinTransport bit-bangs the three wire interface. Data is latched by the
// chip on the rising edge of WR.
type pinTransport struct {
	cs   gpio.PinOut
	wr   gpio.PinOut
	data gpio.PinOut
}

func (t *pinTransport) write(p []byte) error {
	var eh errorHandler
	eh.out(t.cs, gpio.Low)
	for _, v := range p {
		for i := 0; i < 8; i++ {
			eh.out(t.wr, gpio.Low)
			eh.out(t.data, gpio.Level(v&(0x80>>i) != 0))
			eh.out(t.wr, gpio.High)
		}
	}
	eh.release(t.cs)
	return eh.err
}

func (t *pinTransport) String() string {
	return fmt.Sprintf("CS=%s, WR=%s, DATA=%s", t.cs, t.wr, t.data)
}

// spiTransport hands the frame to an SPI controller. cs is optional when the
// controller drives chip select itself.
type spiTransport struct {
	conn spi.Conn
	cs   gpio.PinOut
}

func (t *spiTransport) write(p []byte) error {
	var eh errorHandler
	if t.cs != nil {
		eh.out(t.cs, gpio.Low)
	}
	eh.tx(t.conn, p)
	if t.cs != nil {
		eh.release(t.cs)
	}
	return eh.err
}

func (t *spiTransport) String() string {
	if t.cs == nil {
		return t.conn.String()
	}
	return fmt.Sprintf("%s, CS=%s", t.conn, t.cs)
}
