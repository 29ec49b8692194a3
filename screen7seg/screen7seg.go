// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen7seg implements a HT1621 glass emulator that outputs to the
// terminal (stdout) using ANSI color codes.
//
// It is an spi.Port: pass it to ht1621.NewSPI and every frame the driver
// sends is decoded and drawn. Useful while the meter board is still on its
// way.
package screen7seg

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ErrFrame is returned by Tx for data the HT1621 would not understand.
var ErrFrame = errors.New("screen7seg: not a HT1621 frame")

// Opts represents the options available for this display.
type Opts struct {
	Palette *ansi256.Palette
	// On is the color of a lit segment, Off the one of a dark segment. The
	// zero value selects the default.
	On, Off color.NRGBA
	// W defaults to stdout.
	W io.Writer

	_ struct{}
}

// Dev is a HT1621 emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on, off color.NRGBA

	ram     ht1621.Buffer
	sys     bool
	lcd     bool
	drawn   bool
	buf     bytes.Buffer
	pending []byte
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		palette: *p,
		on:      opts.On,
		off:     opts.Off,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.on == (color.NRGBA{}) {
		d.on = color.NRGBA{0x20, 0x20, 0x20, 255}
	}
	if d.off == (color.NRGBA{}) {
		d.off = color.NRGBA{0x90, 0xa0, 0x90, 255}
	}
	return d
}

func (d *Dev) String() string {
	return "Screen7Seg"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Connect implements spi.Port.
//
// The HT1621 frames are a multiple of 8 bits, only 8 bits words are accepted.
func (d *Dev) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, fmt.Errorf("screen7seg: %d bits words are not supported", bits)
	}
	return d, nil
}

// Duplex implements conn.Conn.
func (d *Dev) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements conn.Conn. w must be exactly one frame.
func (d *Dev) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("screen7seg: the HT1621 can not be read")
	}
	f, err := ht1621.ParseFrame(w)
	if err != nil {
		return ErrFrame
	}
	if f.Data {
		d.ram = f.Buffer
		return d.refresh()
	}
	switch f.Command {
	case ht1621.CmdSysDis:
		d.sys = false
	case ht1621.CmdSysEn:
		d.sys = true
	case ht1621.CmdLCDOff:
		d.lcd = false
	case ht1621.CmdLCDOn:
		d.lcd = true
	case ht1621.CmdBias, ht1621.CmdRC256K, ht1621.CmdXtal32K, ht1621.CmdWDTDis:
		return nil
	default:
		return ErrFrame
	}
	return d.refresh()
}

// TxPackets implements spi.Conn.
//
// Packets are concatenated until one has KeepCS false, which ends the frame.
func (d *Dev) TxPackets(p []spi.Packet) error {
	for _, pkt := range p {
		if len(pkt.R) != 0 {
			return errors.New("screen7seg: the HT1621 can not be read")
		}
		d.pending = append(d.pending, pkt.W...)
		if pkt.KeepCS {
			continue
		}
		w := d.pending
		d.pending = nil
		if err := d.Tx(w, nil); err != nil {
			return err
		}
	}
	return nil
}

// Buffer returns the display RAM last received.
func (d *Dev) Buffer() ht1621.Buffer {
	return d.ram
}

// On reports whether the glass is visible: oscillator and bias generator
// both running.
func (d *Dev) On() bool {
	return d.sys && d.lcd
}

// Rows of the 3x5 block each cell is drawn in.
const rows = 5

// lit reports whether the pixel x, y of a cell is part of a lit segment.
func lit(g byte, x, y int) bool {
	on := func(s ...byte) bool {
		for _, v := range s {
			if g&v != 0 {
				return true
			}
		}
		return false
	}
	switch {
	case y == 0 && x == 1:
		return on(ht1621.SegA)
	case y == 0 && x == 0:
		return on(ht1621.SegA, ht1621.SegF)
	case y == 0:
		return on(ht1621.SegA, ht1621.SegB)
	case y == 1 && x == 0:
		return on(ht1621.SegF)
	case y == 1 && x == 2:
		return on(ht1621.SegB)
	case y == 2 && x == 0:
		return on(ht1621.SegF, ht1621.SegG, ht1621.SegE)
	case y == 2 && x == 1:
		return on(ht1621.SegG)
	case y == 2:
		return on(ht1621.SegB, ht1621.SegG, ht1621.SegC)
	case y == 3 && x == 0:
		return on(ht1621.SegE)
	case y == 3 && x == 2:
		return on(ht1621.SegC)
	case y == 4 && x == 0:
		return on(ht1621.SegE, ht1621.SegD)
	case y == 4 && x == 1:
		return on(ht1621.SegD)
	case y == 4:
		return on(ht1621.SegC, ht1621.SegD)
	}
	return false
}

// icons returns the names of the lit elements that are not decimal points.
func icons(b *ht1621.Buffer) []string {
	var out []string
	for _, e := range ht1621.Elements() {
		switch e {
		case ht1621.Dot1, ht1621.Dot2, ht1621.Dot3, ht1621.Dot4, ht1621.Dot5:
			continue
		}
		if b.IsSet(e) {
			out = append(out, e.String())
		}
	}
	return out
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		// Go back to the top of the previous drawing.
		fmt.Fprintf(&d.buf, "\033[%dA", rows+1)
	}
	visible := d.On()
	dot := d.ram.Dot()
	for y := 0; y < rows; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for cell := 0; cell < ht1621.Cells; cell++ {
			var g byte
			if visible {
				g = d.ram.Glyph(cell)
			}
			for x := 0; x < 3; x++ {
				c := d.off
				if lit(g, x, y) {
					c = d.on
				}
				_, _ = io.WriteString(&d.buf, d.palette.Block(c))
			}
			// Gap between cells, holding the decimal point.
			c := d.off
			if visible && y == rows-1 && dot == cell+1 {
				c = d.on
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\033[K\n")
	}
	_, _ = d.buf.WriteString("\r\033[K")
	if visible {
		_, _ = d.buf.WriteString(strings.Join(icons(&d.ram), " "))
	} else {
		_, _ = d.buf.WriteString("(off)")
	}
	_, _ = d.buf.WriteString("\n")
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ spi.Port = &Dev{}
var _ spi.Conn = &Dev{}
var _ conn.Resource = &Dev{}
