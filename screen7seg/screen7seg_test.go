// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen7seg

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"github.com/google/go-cmp/cmp"
	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

func TestDriver(t *testing.T) {
	var out bytes.Buffer
	s := New(&Opts{W: &out})
	dev, err := ht1621.NewSPI(s, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.On() {
		t.Fatal("init should turn the glass on")
	}
	if err := dev.PrintFixed(-1234, 100); err != nil {
		t.Fatal(err)
	}
	if err := dev.Warning(true); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dev.Buffer(), s.Buffer()); diff != "" {
		t.Fatalf("RAM difference (-want +got):\n%s", diff)
	}
	if got := s.Buffer().Text(); got != " -1234" {
		t.Fatalf("Text() = %q", got)
	}
	if !strings.Contains(out.String(), "warning\n") {
		t.Fatalf("icons not listed:\n%q", out.String())
	}

	out.Reset()
	if err := dev.DisplayOff(); err != nil {
		t.Fatal(err)
	}
	if s.On() {
		t.Fatal("glass should be off")
	}
	if !strings.HasSuffix(out.String(), "(off)\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if s.Buffer() != (ht1621.Buffer{0x05}) {
		t.Fatal("Halt should clear the glass")
	}
}

func TestColors(t *testing.T) {
	red := color.NRGBA{0xff, 0, 0, 255}
	var out bytes.Buffer
	s := New(&Opts{W: &out, On: red})
	if s.on != red {
		t.Fatalf("on = %v", s.on)
	}
	if s.off != (color.NRGBA{0x90, 0xa0, 0x90, 255}) {
		t.Fatalf("off should default, got %v", s.off)
	}
	dev, err := ht1621.NewSPI(s, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := dev.Print("8"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), ansi256.Default.Block(red)) {
		t.Fatalf("lit segments not drawn in red:\n%q", out.String())
	}
}

func TestTxErrors(t *testing.T) {
	s := New(&Opts{W: &bytes.Buffer{}})
	data := []struct {
		name string
		w, r []byte
	}{
		{"read", []byte{0x80, 0x60}, make([]byte, 2)},
		{"short", []byte{0x80}, nil},
		{"unknown command", []byte{0x8f, 0xf0}, nil},
		{"bad header", make([]byte, ht1621.BufferSize), nil},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			if err := s.Tx(line.w, line.r); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	if err := s.Tx([]byte{0x80}, nil); !errors.Is(err, ErrFrame) {
		t.Fatalf("Tx() = %v; want ErrFrame", err)
	}
}

func TestConnect(t *testing.T) {
	s := New(&Opts{W: &bytes.Buffer{}})
	if _, err := s.Connect(physic.KiloHertz, spi.Mode3, 16); err == nil {
		t.Fatal("16 bits words should be refused")
	}
	c, err := s.Connect(physic.KiloHertz, spi.Mode3, 8)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "Screen7Seg" {
		t.Fatal(c.String())
	}
}

func TestTxPackets(t *testing.T) {
	s := New(&Opts{W: &bytes.Buffer{}})
	p := []spi.Packet{
		{W: []byte{0x80}, KeepCS: true},
		{W: []byte{0x20}},       // SYS EN
		{W: []byte{0x80, 0x60}}, // LCD ON
	}
	if err := s.TxPackets(p); err != nil {
		t.Fatal(err)
	}
	if !s.On() {
		t.Fatal("glass should be on")
	}
}

func TestLit(t *testing.T) {
	data := []struct {
		name string
		g    byte
		want [rows]string
	}{
		{"8", ht1621.SegA | ht1621.SegB | ht1621.SegC | ht1621.SegD | ht1621.SegE | ht1621.SegF | ht1621.SegG,
			[rows]string{"###", "# #", "###", "# #", "###"}},
		{"1", ht1621.SegB | ht1621.SegC,
			[rows]string{"  #", "  #", "  #", "  #", "  #"}},
		{"-", ht1621.SegG,
			[rows]string{"   ", "   ", "###", "   ", "   "}},
		{"blank", 0,
			[rows]string{"   ", "   ", "   ", "   ", "   "}},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			var got [rows]string
			for y := range got {
				row := []byte("   ")
				for x := range row {
					if lit(line.g, x, y) {
						row[x] = '#'
					}
				}
				got[y] = string(row)
			}
			if diff := cmp.Diff(line.want, got); diff != "" {
				t.Fatalf("difference (-want +got):\n%s", diff)
			}
		})
	}
}
