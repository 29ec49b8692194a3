// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"fmt"
	"math"
)

const (
	// MaxNumber and MinNumber bound what PrintInt shows. Larger values are
	// shown as the bound.
	MaxNumber = 999999
	MinNumber = -99999

	// MaxPrecision is the number of decimals shown for positive numbers.
	MaxPrecision = 5
	// MaxPrecisionNeg is one less since the minus sign takes a cell.
	MaxPrecisionNeg = 4

	// Scaled values are clamped to nine digits before they are narrowed to
	// the display range.
	maxScaled = 999999999
	minScaled = -999999999
)

// multipliers maps the scale of PrintFixed to the number of decimals.
var multipliers = map[int]int{
	10:     1,
	100:    2,
	1000:   3,
	10000:  4,
	100000: 5,
}

// Print shows up to six characters. Digits, letters, space, '-' and '_' are
// supported, any other character shows as a blank cell. Decimal points are
// cleared.
func (d *Dev) Print(s string) error {
	return d.update(func(b *Buffer) {
		b.clearDots()
		b.clearCells()
		b.writeText(s)
	})
}

// PrintInt shows n right aligned. Values outside [MinNumber, MaxNumber] are
// shown as the nearest bound.
func (d *Dev) PrintInt(n int) error {
	return d.printNumber(n, 0)
}

// PrintFloat shows f with the given number of decimals. precision is capped
// at MaxPrecision, or MaxPrecisionNeg for negative values.
//
// PrintFixed avoids floating point and should be preferred on small targets.
func (d *Dev) PrintFloat(f float64, precision int) error {
	limit := MaxPrecision
	if f < 0 {
		limit = MaxPrecisionNeg
	}
	precision = clamp(precision, 0, limit)
	if math.IsNaN(f) {
		f = 0
	}
	scaled := math.Round(math.Abs(f) * math.Pow10(precision))
	if scaled > maxScaled {
		scaled = maxScaled
	}
	n := int(scaled)
	if f < 0 {
		n = -n
	}
	return d.printNumber(n, precision)
}

// PrintFixed shows value/multiplier. multiplier is one of 1, 10, 100, 1000,
// 10000 or 100000, any other value shows value as an integer.
func (d *Dev) PrintFixed(value, multiplier int) error {
	return d.printNumber(clamp(value, minScaled, maxScaled), multipliers[multiplier])
}

// printNumber renders n with at least precision+1 digits so a leading zero
// precedes the decimal point, then lights the decimal point.
func (d *Dev) printNumber(n, precision int) error {
	n = clamp(n, MinNumber, MaxNumber)
	digits := precision + 1
	if n < 0 && digits > Cells-1 {
		digits = Cells - 1
	}
	s := fmt.Sprintf("%*.*d", Cells, digits, n)
	return d.update(func(b *Buffer) {
		b.clearCells()
		b.writeText(s)
		b.setDecimal(precision)
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
