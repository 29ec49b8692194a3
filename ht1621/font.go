// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

// Segments of a character cell, as returned by Buffer.Glyph.
//
//	 A
//	F B
//	 G
//	E C
//	 D
const (
	SegF byte = 1 << 0
	SegG byte = 1 << 1
	SegE byte = 1 << 2
	SegD byte = 1 << 3
	SegA byte = 1 << 4
	SegB byte = 1 << 5
	SegC byte = 1 << 6
)

// Bits of a cell inside the Buffer. The first byte of a cell holds F, G and E
// in its top bits, the second one holds A, B and C above the reserved bit 0,
// then D. This differs from the reference board wiring, which puts A, B and C
// in bits 0-2 and D in bit 3: bit 0 is shared with the decimal points and
// the MIN/MAX legends, so keep this layout.
const (
	cellFGE byte = 0xe0
	cellABC byte = 0x0e
	cellD   byte = 0x10
)

// Cells is the number of character positions on the glass.
const Cells = 6

// cells maps each character position, left to right, to the three bit groups
// wiring it: F/G/E, A/B/C and D.
var cells = [Cells][3]Locator{
	{{2, cellFGE}, {3, cellABC}, {3, cellD}},
	{{3, cellFGE}, {4, cellABC}, {4, cellD}},
	{{4, cellFGE}, {5, cellABC}, {5, cellD}},
	{{5, cellFGE}, {6, cellABC}, {6, cellD}},
	{{6, cellFGE}, {7, cellABC}, {7, cellD}},
	{{7, cellFGE}, {8, cellABC}, {8, cellD}},
}

// glyphs is indexed by c - ' '. Lower case letters reuse the upper case
// shapes, anything without an entry is blank.
var glyphs = [0x80 - ' ']byte{
	'-' - ' ': SegG,
	'0' - ' ': SegA | SegB | SegC | SegD | SegE | SegF,
	'1' - ' ': SegB | SegC,
	'2' - ' ': SegA | SegB | SegG | SegE | SegD,
	'3' - ' ': SegA | SegB | SegG | SegC | SegD,
	'4' - ' ': SegF | SegG | SegB | SegC,
	'5' - ' ': SegA | SegF | SegG | SegC | SegD,
	'6' - ' ': SegA | SegF | SegG | SegE | SegD | SegC,
	'7' - ' ': SegA | SegB | SegC,
	'8' - ' ': SegA | SegB | SegC | SegD | SegE | SegF | SegG,
	'9' - ' ': SegA | SegB | SegC | SegD | SegF | SegG,
	'A' - ' ': SegA | SegB | SegC | SegE | SegF | SegG,
	'B' - ' ': SegF | SegG | SegE | SegD | SegC,
	'C' - ' ': SegA | SegF | SegE | SegD,
	'D' - ' ': SegB | SegC | SegD | SegE | SegG,
	'E' - ' ': SegA | SegF | SegG | SegE | SegD,
	'F' - ' ': SegA | SegF | SegG | SegE,
	'G' - ' ': SegA | SegF | SegE | SegD | SegC,
	'H' - ' ': SegF | SegG | SegE | SegC,
	'I' - ' ': SegF | SegE,
	'J' - ' ': SegB | SegC | SegD,
	'K' - ' ': SegF | SegG | SegE | SegB,
	'L' - ' ': SegF | SegE | SegD,
	'M' - ' ': SegA | SegE | SegC,
	'N' - ' ': SegA | SegB | SegC | SegE | SegF,
	'O' - ' ': SegG | SegE | SegD | SegC,
	'P' - ' ': SegA | SegB | SegG | SegF | SegE,
	'Q' - ' ': SegA | SegB | SegC | SegF | SegG,
	'R' - ' ': SegG | SegE,
	'S' - ' ': SegA | SegF | SegC | SegD,
	'T' - ' ': SegF | SegG | SegE | SegD,
	'U' - ' ': SegF | SegE | SegD | SegB | SegC,
	'V' - ' ': SegF | SegG | SegB,
	'W' - ' ': SegF | SegD | SegB,
	'X' - ' ': SegF | SegG | SegE | SegB | SegC,
	'Y' - ' ': SegF | SegG | SegD | SegB | SegC,
	'Z' - ' ': SegA | SegB | SegE | SegD,
	'_' - ' ': SegD,
}

// glyphFor returns the segments lighting r. Unsupported characters are
// blank.
func glyphFor(r rune) byte {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < ' ' || r-' ' >= rune(len(glyphs)) {
		return 0
	}
	return glyphs[r-' ']
}

// splitGlyph spreads a glyph over the three bit groups of a cell.
func splitGlyph(g byte) (fge, abc, d byte) {
	fge = (g << 5) & cellFGE
	abc = (g >> 3) & cellABC
	d = (g << 1) & cellD
	return fge, abc, d
}

// joinGlyph is the inverse of splitGlyph.
func joinGlyph(fge, abc, d byte) byte {
	return (fge&cellFGE)>>5 | (abc&cellABC)<<3 | (d&cellD)>>1
}

// decodeGlyph returns the character drawn by g: a digit, an upper case
// letter, space, '-' or '_'. Shapes that no character produces decode as '?'.
func decodeGlyph(g byte) rune {
	if g == 0 {
		return ' '
	}
	for i, v := range glyphs {
		if v == g {
			return rune(i) + ' '
		}
	}
	return '?'
}
