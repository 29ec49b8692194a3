// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"github.com/goburrow/modbus"
)

// registerReader is the part of modbus.Client the meter uses.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
}

// runMeter shows a holding register of a Modbus TCP slave until ctx is
// canceled. updated is called after each sample.
func runMeter(ctx context.Context, dev *ht1621.Dev, m *MeterConfig, updated func()) error {
	if m.Endpoint == "" {
		return errors.New("meter: no endpoint configured")
	}
	h := modbus.NewTCPClientHandler(m.Endpoint)
	h.Timeout = m.timeout()
	h.SlaveId = m.UnitID
	if err := h.Connect(); err != nil {
		return fmt.Errorf("meter: %w", err)
	}
	defer h.Close()

	if m.Unit != "" {
		e, err := ht1621.ParseElement(m.Unit)
		if err != nil {
			return err
		}
		if err := dev.Set(e, true); err != nil {
			return err
		}
	}
	return poll(ctx, dev, modbus.NewClient(h), m, updated)
}

// poll samples the register every interval. Read failures are shown on the
// glass and polling continues, display failures stop it.
func poll(ctx context.Context, dev *ht1621.Dev, r registerReader, m *MeterConfig, updated func()) error {
	t := time.NewTicker(m.interval())
	defer t.Stop()
	for {
		if err := sample(dev, r, m); err != nil {
			return err
		}
		if updated != nil {
			updated()
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func sample(dev *ht1621.Dev, r registerReader, m *MeterConfig) error {
	b, err := r.ReadHoldingRegisters(m.Register, uint16(m.Words))
	var v int
	if err == nil {
		v, err = decodeRegister(b, m.Signed)
	}
	if err != nil {
		log.Printf("meter: %v", err)
		if err := dev.Print("Err"); err != nil {
			return err
		}
		return dev.Warning(true)
	}
	log.Printf("meter: %d/%d", v, m.Multiplier)
	if err := dev.Warning(false); err != nil {
		return err
	}
	return dev.PrintFixed(v, m.Multiplier)
}

// decodeRegister decodes one register or two consecutive ones, high word
// first.
func decodeRegister(b []byte, signed bool) (int, error) {
	switch len(b) {
	case 2:
		v := binary.BigEndian.Uint16(b)
		if signed {
			return int(int16(v)), nil
		}
		return int(v), nil
	case 4:
		v := binary.BigEndian.Uint32(b)
		if signed {
			return int(int32(v)), nil
		}
		if v > math.MaxInt32 {
			// Beyond what the glass shows anyway, and int may be 32 bits.
			return math.MaxInt32, nil
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("meter: unexpected register payload of %d bytes", len(b))
	}
}
