// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

const (
	// sysSize bytes carry the frame header and the reserved address bit.
	sysSize = 2
	// dataSize bytes mirror the 32 nibbles of the display RAM.
	dataSize = 16
	// BufferSize is the size of a data frame.
	BufferSize = sysSize + dataSize
)

// Buffer is the image of the controller's display RAM, in the layout the
// data frame is built from.
type Buffer [BufferSize]byte

func (b *Buffer) set(l Locator) {
	b[l.Offset] |= l.Mask
}

func (b *Buffer) clear(l Locator) {
	b[l.Offset] &^= l.Mask
}

func (b *Buffer) setTo(l Locator, on bool) {
	if on {
		b.set(l)
	} else {
		b.clear(l)
	}
}

// enable lights or darkens e. Lighting it darkens the element it excludes.
func (b *Buffer) enable(e Element, on bool) {
	b.setTo(e.Locator(), on)
	if x := e.Excludes(); on && x != 0 {
		b.clear(x.Locator())
	}
}

// toggle lights a and darkens other when first is true, the opposite
// otherwise.
func (b *Buffer) toggle(a, other Element, first bool) {
	if !first {
		a, other = other, a
	}
	b.set(a.Locator())
	b.clear(other.Locator())
}

// IsSet reports whether every segment of e is lit.
func (b Buffer) IsSet(e Element) bool {
	l := e.Locator()
	return l.Mask != 0 && b[l.Offset]&l.Mask == l.Mask
}

// Glyph returns the segments lit in a character cell.
func (b Buffer) Glyph(cell int) byte {
	if cell < 0 || cell >= Cells {
		return 0
	}
	c := &cells[cell]
	return joinGlyph(b[c[0].Offset], b[c[1].Offset], b[c[2].Offset])
}

func (b *Buffer) setGlyph(cell int, g byte) {
	c := &cells[cell]
	fge, abc, d := splitGlyph(g)
	for _, l := range c {
		b.clear(l)
	}
	b[c[0].Offset] |= fge
	b[c[1].Offset] |= abc
	b[c[2].Offset] |= d
}

// Text decodes the character cells. Segment patterns that are not a
// character show as '?'.
func (b Buffer) Text() string {
	out := make([]rune, Cells)
	for i := range out {
		out[i] = decodeGlyph(b.Glyph(i))
	}
	return string(out)
}

// Dot returns the position, 1 to 5, of the leftmost lit decimal point or 0.
func (b Buffer) Dot() int {
	for i, e := range dots {
		if b.IsSet(e) {
			return i + 1
		}
	}
	return 0
}

// writeText fills the cells from the left, truncating after Cells
// characters. Cells beyond the end of s are left untouched.
func (b *Buffer) writeText(s string) {
	i := 0
	for _, r := range s {
		if i == Cells {
			break
		}
		b.setGlyph(i, glyphFor(r))
		i++
	}
}

func (b *Buffer) clearCells() {
	for i := range cells {
		for _, l := range cells[i] {
			b.clear(l)
		}
	}
}

func (b *Buffer) clearDots() {
	for _, e := range dots {
		b.clear(e.Locator())
	}
}

// setDecimal lights the decimal point precision digits from the right.
// Positions the glass does not have are ignored.
func (b *Buffer) setDecimal(precision int) {
	b.clearDots()
	pos := len(dots) - precision + 1
	if pos < 1 || pos > len(dots) {
		return
	}
	b.set(dots[pos-1].Locator())
}

// clearAll darkens every segment, including the ones of byte 1 that only
// icons use.
func (b *Buffer) clearAll() {
	b.clear(allClear)
	for i := sysSize; i < BufferSize; i++ {
		b[i] = 0
	}
}
