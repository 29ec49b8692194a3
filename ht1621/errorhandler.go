// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// errorHandler keeps the first error of a sequence of bus operations and
// turns the following ones into no-ops.
type errorHandler struct {
	err error
}

func (eh *errorHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) tx(c conn.Conn, w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = c.Tx(w, nil)
}

// release deasserts chip select even after a failure, so the chip drops the
// partial frame. The first error is kept.
func (eh *errorHandler) release(cs gpio.PinOut) {
	if err := cs.Out(gpio.High); eh.err == nil {
		eh.err = err
	}
}
