// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

var initFrames = [][]byte{
	{0x85, 0x20}, // BIAS 1/3
	{0x83, 0x00}, // RC 256K
	{0x80, 0x00}, // SYS DIS
	{0x80, 0xa0}, // WDT DIS1
	{0x80, 0x20}, // SYS EN
	{0x80, 0x60}, // LCD ON
}

func TestNewSPI(t *testing.T) {
	record := &spitest.Record{}
	dev, err := NewSPI(record, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(initFrames, writes(record.Ops)); diff != "" {
		t.Fatalf("init difference (-want +got):\n%s", diff)
	}
	if !dev.On() {
		t.Fatal("display should be on after init")
	}
	// Construction does not touch the display RAM.
	want := Buffer{modeData}
	if got := dev.Buffer(); got != want {
		t.Fatalf("Buffer() = % x", got[:])
	}
}

func TestNewSPICrystal(t *testing.T) {
	record := &spitest.Record{}
	if _, err := NewSPI(record, nil, &Opts{Crystal: true}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x82, 0x80}, record.Ops[1].W); diff != "" {
		t.Fatalf("clock source difference (-want +got):\n%s", diff)
	}
}

type connectPort struct {
	f    physic.Frequency
	mode spi.Mode
	bits int
	err  error
	spitest.Record
}

func (p *connectPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.f, p.mode, p.bits = f, mode, bits
	if p.err != nil {
		return nil, p.err
	}
	return p.Record.Connect(f, mode, bits)
}

func TestNewSPIConnect(t *testing.T) {
	p := &connectPort{}
	if _, err := NewSPI(p, nil, &Opts{}); err != nil {
		t.Fatal(err)
	}
	if p.f != 100*physic.KiloHertz || p.mode != spi.Mode3 || p.bits != 8 {
		t.Fatalf("Connect(%s, %s, %d)", p.f, p.mode, p.bits)
	}
	p = &connectPort{}
	if _, err := NewSPI(p, nil, &Opts{Frequency: 50 * physic.KiloHertz}); err != nil {
		t.Fatal(err)
	}
	if p.f != 50*physic.KiloHertz {
		t.Fatalf("Connect(%s)", p.f)
	}

	errConnect := errors.New("busy")
	if _, err := NewSPI(&connectPort{err: errConnect}, nil, nil); !errors.Is(err, errConnect) {
		t.Fatalf("NewSPI() = %v", err)
	}
	if _, err := NewSPI(nil, nil, nil); err == nil {
		t.Fatal("NewSPI(nil) should fail")
	}
}

func TestNewSPIChipSelect(t *testing.T) {
	record := &spitest.Record{}
	cs := &wirePin{Pin: gpiotest.Pin{N: "CS"}, w: &wire{}}
	dev, err := NewSPI(record, cs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(cs.w.frames); got != len(initSequence(CmdRC256K)) {
		t.Fatalf("%d chip select cycles; want 6", got)
	}
	if cs.Read() != gpio.High {
		t.Fatal("CS must be released")
	}
	if s := dev.String(); !strings.Contains(s, "CS=") {
		t.Fatalf("String() = %q", s)
	}
}

func TestNewGPIO(t *testing.T) {
	w, cs, wr, data := newWire()
	dev, err := NewGPIO(cs, wr, data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(initFrames, w.frames); diff != "" {
		t.Fatalf("init difference (-want +got):\n%s", diff)
	}

	w.frames = nil
	if err := dev.Print("12"); err != nil {
		t.Fatal(err)
	}
	if len(w.frames) != 1 {
		t.Fatalf("%d frames; want 1", len(w.frames))
	}
	f, err := ParseFrame(w.frames[0])
	if err != nil {
		t.Fatal(err)
	}
	if f.Buffer != dev.Buffer() {
		t.Fatalf("sent % x; want % x", f.Buffer[:], dev.Buffer())
	}
	if got := f.Buffer.Text(); got != "12    " {
		t.Fatalf("Text() = %q", got)
	}
	if s := dev.String(); !strings.HasPrefix(s, "ht1621.Dev{CS=CS") || !strings.Contains(s, "DATA=DATA") {
		t.Fatalf("String() = %q", s)
	}
}

func TestNewGPIOMissingPin(t *testing.T) {
	_, cs, wr, data := newWire()
	pins := []struct {
		name        string
		cs, wr, dat gpio.PinOut
	}{
		{"cs", nil, wr, data},
		{"wr", cs, nil, data},
		{"data", cs, wr, nil},
	}
	for _, line := range pins {
		t.Run(line.name, func(t *testing.T) {
			if _, err := NewGPIO(line.cs, line.wr, line.dat, nil); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestGPIOError(t *testing.T) {
	errPin := errors.New("pin failed")
	w, cs, wr, data := newWire()
	data.fail = errPin
	_, err := NewGPIO(cs, wr, data, nil)
	if !errors.Is(err, errPin) {
		t.Fatalf("NewGPIO() = %v; want %v", err, errPin)
	}
	if !strings.HasPrefix(err.Error(), "ht1621: ") {
		t.Fatalf("error not prefixed: %v", err)
	}
	if cs.Read() != gpio.High {
		t.Fatal("CS must be released after a failure")
	}
	// Nothing is clocked in once DATA fails.
	if w.edges != 0 {
		t.Fatalf("%d bits clocked after the failure", w.edges)
	}
}

func TestSPIError(t *testing.T) {
	errTx := errors.New("tx failed")
	record := &spitest.Record{}
	dev, err := NewSPI(record, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.t = &spiTransport{conn: failConn{err: errTx}}
	if err := dev.PrintInt(1); !errors.Is(err, errTx) {
		t.Fatalf("PrintInt() = %v", err)
	}
	// The buffer still reflects the request.
	if got := dev.Buffer().Text(); got != "     1" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestDisplayOnOff(t *testing.T) {
	dev, record := newSPIDev(t)
	if err := dev.DisplayOff(); err != nil {
		t.Fatal(err)
	}
	if dev.On() {
		t.Fatal("display should be off")
	}
	if err := dev.DisplayOn(); err != nil {
		t.Fatal(err)
	}
	if !dev.On() {
		t.Fatal("display should be on")
	}
	want := [][]byte{{0x80, 0x40}, {0x80, 0x60}}
	if diff := cmp.Diff(want, writes(record.Ops)); diff != "" {
		t.Fatalf("difference (-want +got):\n%s", diff)
	}
}

func TestHalt(t *testing.T) {
	bl := &gpiotest.Pin{N: "BL"}
	record := &spitest.Record{}
	dev, err := NewSPI(record, nil, &Opts{Backlight: bl})
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.BacklightOn(); err != nil {
		t.Fatal(err)
	}
	if err := dev.Print("888888"); err != nil {
		t.Fatal(err)
	}
	record.Ops = nil
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if len(record.Ops) != 2 {
		t.Fatalf("%d frames; want clear and LCD OFF", len(record.Ops))
	}
	if got := lastBuffer(t, record.Ops[:1]); got != (Buffer{modeData}) {
		t.Fatalf("not cleared: % x", got[:])
	}
	if dev.On() || dev.BacklightLit() || bl.Read() != gpio.Low {
		t.Fatal("Halt should turn everything off")
	}
}

func TestBacklight(t *testing.T) {
	dev, _ := newSPIDev(t)
	if err := dev.BacklightOn(); err != nil {
		t.Fatal(err)
	}
	if dev.BacklightLit() {
		t.Fatal("no backlight pin, nothing is lit")
	}

	bl := &gpiotest.Pin{N: "BL"}
	dev.backlight = bl
	data := []struct {
		i    int
		want gpio.Level
	}{
		{0xff, gpio.High},
		{0, gpio.Low},
		{1, gpio.High},
	}
	for _, line := range data {
		if err := dev.Backlight(display.Intensity(line.i)); err != nil {
			t.Fatal(err)
		}
		if bl.Read() != line.want || dev.BacklightLit() != bool(line.want) {
			t.Fatalf("Backlight(%d): pin %s", line.i, bl.Read())
		}
	}
}

func TestSet(t *testing.T) {
	dev, record := newSPIDev(t)
	if err := dev.Set(Frost, true); err != nil {
		t.Fatal(err)
	}
	if b := lastBuffer(t, record.Ops); !b.IsSet(Frost) {
		t.Fatal("frost not sent")
	}
	if err := dev.Set(Element(0), true); err == nil {
		t.Fatal("Set(0) should fail")
	}
	if err := dev.Set(numElements, true); err == nil {
		t.Fatal("Set(numElements) should fail")
	}
}

//

func newSPIDev(t *testing.T) (*Dev, *spitest.Record) {
	t.Helper()
	record := &spitest.Record{}
	dev, err := NewSPI(record, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	record.Ops = nil
	return dev, record
}

func writes(ops []conntest.IO) [][]byte {
	var out [][]byte
	for _, io := range ops {
		out = append(out, io.W)
	}
	return out
}

// lastBuffer decodes the last data frame sent.
func lastBuffer(t *testing.T, ops []conntest.IO) Buffer {
	t.Helper()
	for i := len(ops) - 1; i >= 0; i-- {
		f, err := ParseFrame(ops[i].W)
		if err != nil {
			t.Fatal(err)
		}
		if f.Data {
			return f.Buffer
		}
	}
	t.Fatal("no data frame sent")
	return Buffer{}
}

// wire reassembles the frames bit-banged on a CS/WR/DATA triplet.
type wire struct {
	selected bool
	data     gpio.Level
	bits     []gpio.Level
	edges    int
	frames   [][]byte
}

func newWire() (*wire, *wirePin, *wirePin, *wirePin) {
	w := &wire{}
	return w,
		&wirePin{Pin: gpiotest.Pin{N: "CS", L: gpio.High}, w: w},
		&wirePin{Pin: gpiotest.Pin{N: "WR", L: gpio.High}, w: w},
		&wirePin{Pin: gpiotest.Pin{N: "DATA"}, w: w}
}

type wirePin struct {
	gpiotest.Pin
	w    *wire
	fail error
}

func (p *wirePin) Out(l gpio.Level) error {
	if p.fail != nil {
		return p.fail
	}
	prev := p.Pin.Read()
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	w := p.w
	switch p.N {
	case "CS":
		if l == gpio.Low {
			w.selected = true
			w.bits = nil
		} else if w.selected {
			w.selected = false
			w.frames = append(w.frames, pack(w.bits))
		}
	case "WR":
		if w.selected && prev == gpio.Low && l == gpio.High {
			w.bits = append(w.bits, w.data)
			w.edges++
		}
	case "DATA":
		w.data = l
	}
	return nil
}

func pack(bits []gpio.Level) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

type failConn struct {
	spi.Conn
	err error
}

func (f failConn) Tx(w, r []byte) error { return f.err }
func (f failConn) String() string       { return "fail" }
