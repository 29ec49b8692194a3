// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"errors"
	"fmt"
)

// Command is the 8 bit operand of a command frame.
type Command byte

// Commands used by the driver. See the "Command Summary" of the datasheet.
const (
	CmdSysDis  Command = 0x00 // system oscillator and bias generator off
	CmdSysEn   Command = 0x02 // system oscillator on
	CmdLCDOff  Command = 0x04 // bias generator off
	CmdLCDOn   Command = 0x06 // bias generator on
	CmdWDTDis  Command = 0x0a // watchdog time-out flag output off
	CmdBias    Command = 0x52 // 1/3 bias, 4 commons
	CmdRC256K  Command = 0x30 // on-chip RC oscillator
	CmdXtal32K Command = 0x28 // external crystal
)

const (
	modeCmd  byte = 0x08 // 0b1000, 4 bits
	modeData byte = 0x05 // 0b101, address 0
	// addrBit is the low bit of the 6 bit address, reserved in byte 1.
	addrBit byte = 0x01
)

// initSequence is the bring-up sequence for the given clock source. The
// order matters.
func initSequence(clock Command) []Command {
	return []Command{CmdBias, clock, CmdSysDis, CmdWDTDis, CmdSysEn, CmdLCDOn}
}

// ErrFrame is returned by ParseFrame for data that is not a HT1621 frame.
var ErrFrame = errors.New("ht1621: malformed frame")

// Frame is a transmission decoded back from the wire.
type Frame struct {
	// Data is true for a display RAM write, Buffer is valid then.
	Data    bool
	Command Command
	Buffer  Buffer
}

func (c Command) String() string {
	switch c {
	case CmdSysDis:
		return "SYS DIS"
	case CmdSysEn:
		return "SYS EN"
	case CmdLCDOff:
		return "LCD OFF"
	case CmdLCDOn:
		return "LCD ON"
	case CmdWDTDis:
		return "WDT DIS1"
	case CmdBias:
		return "BIAS 1/3"
	case CmdRC256K:
		return "RC 256K"
	case CmdXtal32K:
		return "XTAL 32K"
	default:
		return fmt.Sprintf("Command(0x%02x)", byte(c))
	}
}

// reverse reverses p in place. The chip expects the last byte of the
// canonical layout first.
func reverse(p []byte) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// commandFrame returns the wire bytes of a command: the 4 bit type, the
// operand, then 4 bits of padding.
func commandFrame(c Command) []byte {
	f := []byte{byte(c) << 4, modeCmd<<4 | byte(c)>>4}
	reverse(f)
	return f
}

// dataFrame stamps the header into b and returns the wire bytes of the whole
// buffer. b itself keeps the canonical layout.
func dataFrame(b *Buffer) []byte {
	b[0] = modeData
	b[1] &^= addrBit
	f := make([]byte, BufferSize)
	copy(f, b[:])
	reverse(f)
	return f
}

// ParseFrame decodes the bytes of one chip select cycle as produced by the
// driver.
func ParseFrame(wire []byte) (Frame, error) {
	f := make([]byte, len(wire))
	copy(f, wire)
	reverse(f)
	switch len(f) {
	case 2:
		if f[1]>>4 != modeCmd || f[0]&0x0f != 0 {
			return Frame{}, ErrFrame
		}
		return Frame{Command: Command(f[1]<<4 | f[0]>>4)}, nil
	case BufferSize:
		if f[0] != modeData {
			return Frame{}, ErrFrame
		}
		fr := Frame{Data: true}
		copy(fr.Buffer[:], f)
		return fr, nil
	default:
		return Frame{}, ErrFrame
	}
}
