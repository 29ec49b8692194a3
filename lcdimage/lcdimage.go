// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdimage draws a picture of the HT1621 meter glass from a display
// RAM image.
//
// The character cells are drawn as seven segment digits and every other
// element of the glass as its name, at a fixed place like on the real glass.
package lcdimage

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Opts represents the options available to draw the glass.
type Opts struct {
	// CellWidth is the width of a character cell in pixels.
	CellWidth float64
	// Lit and Background default to a reflective LCD look.
	Lit, Background color.Color
	// Ghost draws dark segments faintly, as seen on a real glass.
	Ghost bool
}

// DefaultOpts is used when nil is passed as Opts.
var DefaultOpts = Opts{
	CellWidth:  40,
	Lit:        color.NRGBA{0x18, 0x20, 0x18, 0xff},
	Background: color.NRGBA{0xb8, 0xc4, 0xa8, 0xff},
	Ghost:      true,
}

// labelsPerRow is the number of element names drawn per line.
const labelsPerRow = 8

// layout is the geometry of the picture, derived from the cell width.
type layout struct {
	cw     float64 // cell width
	ch     float64 // cell height
	t      float64 // segment thickness
	gap    float64 // space between cells
	margin float64
	labelH float64
}

func newLayout(cw float64) layout {
	return layout{cw: cw, ch: 2 * cw, t: cw / 6, gap: cw / 3, margin: cw / 2, labelH: cw / 2}
}

// size returns the picture size for n label rows.
func (l layout) size(rows int) (int, int) {
	w := 2*l.margin + ht1621.Cells*l.cw + (ht1621.Cells-1)*l.gap
	h := 2*l.margin + l.ch + float64(rows)*l.labelH
	return int(w + 0.5), int(h + 0.5)
}

// segment returns the rectangle of one segment of a cell.
func (l layout) segment(cell int, s byte) (x, y, w, h float64) {
	x0 := l.margin + float64(cell)*(l.cw+l.gap)
	y0 := l.margin
	half := (l.ch - l.t) / 2
	vert := half - l.t
	switch s {
	case ht1621.SegA:
		return x0 + l.t, y0, l.cw - 2*l.t, l.t
	case ht1621.SegG:
		return x0 + l.t, y0 + half, l.cw - 2*l.t, l.t
	case ht1621.SegD:
		return x0 + l.t, y0 + l.ch - l.t, l.cw - 2*l.t, l.t
	case ht1621.SegF:
		return x0, y0 + l.t, l.t, vert
	case ht1621.SegB:
		return x0 + l.cw - l.t, y0 + l.t, l.t, vert
	case ht1621.SegE:
		return x0, y0 + half + l.t, l.t, vert
	case ht1621.SegC:
		return x0 + l.cw - l.t, y0 + half + l.t, l.t, vert
	}
	return 0, 0, 0, 0
}

// dot returns the center of decimal point k, between cells k-1 and k.
func (l layout) dot(k int) (x, y float64) {
	return l.margin + float64(k)*(l.cw+l.gap) - l.gap/2, l.margin + l.ch - l.t/2
}

// label returns the center of the i-th element name.
func (l layout) label(i int) (x, y float64) {
	w, _ := l.size(0)
	step := (float64(w) - 2*l.margin) / labelsPerRow
	return l.margin + step*(float64(i%labelsPerRow)+0.5), 2*l.margin + l.ch + l.labelH*(float64(i/labelsPerRow)+0.5)
}

var (
	parseOnce sync.Once
	regular   *truetype.Font
	parseErr  error
)

func loadFont() (*truetype.Font, error) {
	parseOnce.Do(func() {
		regular, parseErr = truetype.Parse(goregular.TTF)
	})
	return regular, parseErr
}

var segs = [...]byte{ht1621.SegA, ht1621.SegB, ht1621.SegC, ht1621.SegD, ht1621.SegE, ht1621.SegF, ht1621.SegG}

// labels returns the elements drawn as names: everything but the decimal
// points.
func labels() []ht1621.Element {
	var out []ht1621.Element
	for _, e := range ht1621.Elements() {
		switch e {
		case ht1621.Dot1, ht1621.Dot2, ht1621.Dot3, ht1621.Dot4, ht1621.Dot5:
			continue
		}
		out = append(out, e)
	}
	return out
}

func draw(b *ht1621.Buffer, opts *Opts) (*gg.Context, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultOpts.CellWidth
	}
	if o.Lit == nil {
		o.Lit = DefaultOpts.Lit
	}
	if o.Background == nil {
		o.Background = DefaultOpts.Background
	}
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("lcdimage: %w", err)
	}

	l := newLayout(o.CellWidth)
	names := labels()
	w, h := l.size((len(names) + labelsPerRow - 1) / labelsPerRow)
	dc := gg.NewContext(w, h)
	dc.SetColor(o.Background)
	dc.Clear()

	ghost := blend(o.Lit, o.Background)
	// paint picks the color of a segment, false when nothing is drawn.
	paint := func(on bool) bool {
		switch {
		case on:
			dc.SetColor(o.Lit)
		case o.Ghost:
			dc.SetColor(ghost)
		default:
			return false
		}
		return true
	}

	for cell := 0; cell < ht1621.Cells; cell++ {
		g := b.Glyph(cell)
		for _, s := range segs {
			if paint(g&s != 0) {
				dc.DrawRectangle(l.segment(cell, s))
				dc.Fill()
			}
		}
	}
	lit := b.Dot()
	for k := 1; k < ht1621.Cells; k++ {
		if paint(k == lit) {
			x, y := l.dot(k)
			dc.DrawCircle(x, y, l.t/2)
			dc.Fill()
		}
	}

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: l.labelH * 0.6}))
	for i, e := range names {
		if paint(b.IsSet(e)) {
			x, y := l.label(i)
			dc.DrawStringAnchored(e.String(), x, y, 0.5, 0.5)
		}
	}
	return dc, nil
}

// blend returns the color a quarter of the way from bg to fg.
func blend(fg, bg color.Color) color.Color {
	fr, fgg, fb, _ := fg.RGBA()
	br, bgg, bb, _ := bg.RGBA()
	mix := func(f, b uint32) uint8 {
		return uint8((f + 3*b) / 4 >> 8)
	}
	return color.NRGBA{mix(fr, br), mix(fgg, bgg), mix(fb, bb), 0xff}
}

// Render returns a picture of the glass as b lights it.
func Render(b ht1621.Buffer, opts *Opts) (image.Image, error) {
	dc, err := draw(&b, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG writes the picture of the glass to w in PNG format.
func EncodePNG(w io.Writer, b ht1621.Buffer, opts *Opts) error {
	dc, err := draw(&b, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}
