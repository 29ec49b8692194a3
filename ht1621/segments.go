// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

import (
	"fmt"
	"strings"
)

// Locator identifies a group of segments in the Buffer: the byte offset and
// the bits of that byte that drive them.
type Locator struct {
	Offset int
	Mask   byte
}

// Element is a named segment of the glass that is not part of a character
// cell: icons, units, gauge bars and decimal points.
type Element uint8

// Lang selects which printing of a bilingual icon is lit.
type Lang uint8

const (
	English Lang = iota
	Russian
)

// The glass elements. The zero value is not an element.
const (
	_ Element = iota

	BatteryFrame
	BatteryLow
	BatteryMid
	BatteryHigh

	Signal1
	Signal2
	Signal3

	Dot1
	Dot2
	Dot3
	Dot4
	Dot5

	Minus

	MinRU
	MaxRU
	MinEN
	MaxEN
	BurstRU
	BurstEN
	LeakRU
	LeakEN
	ReverseRU
	ReverseEN
	VersionRU
	VersionEN
	SerialRU
	SerialEN

	Frost
	Query
	Warning
	Magnet
	Left
	Right
	NoWater
	CRC
	Delta
	T
	T1
	T2
	NBFi
	NBIoT
	DegreePoint

	GCal
	GCalPerHour
	GJ
	GJPerHour
	KW
	MW
	W
	WPerHour
	Gal
	GalPerMin
	M3
	M3PerHourRU
	M3PerHourEN
	FT3
	FT3PerMin
	MMBTU
	Gallons
	US

	numElements
)

type segment struct {
	name string
	loc  Locator
	// excludes is cleared whenever this element is lit.
	excludes Element
}

// segments is the wiring of the glass. Byte 0 holds the data frame header and
// bit 0 of byte 1 is the reserved address bit, neither carries a segment.
//
// Gal and GCal, GalPerMin and GCalPerHour are the same electrodes: the "GAL"
// and "Gcal" legends share their letters on this glass.
var segments = [numElements]segment{
	BatteryFrame: {"battery", Locator{13, 1 << 6}, 0},
	BatteryLow:   {"battery1", Locator{14, 1 << 2}, 0},
	BatteryMid:   {"battery2", Locator{14, 1 << 1}, 0},
	BatteryHigh:  {"battery3", Locator{13, 1 << 5}, 0},

	Signal1: {"signal1", Locator{14, 1 << 7}, 0},
	Signal2: {"signal2", Locator{14, 1 << 3}, 0},
	Signal3: {"signal3", Locator{13, 1 << 7}, 0},

	Dot1: {"dot1", Locator{7, 1 << 0}, 0},
	Dot2: {"dot2", Locator{8, 1 << 0}, 0},
	Dot3: {"dot3", Locator{9, 1 << 0}, 0},
	Dot4: {"dot4", Locator{10, 1 << 0}, 0},
	Dot5: {"dot5", Locator{11, 1 << 0}, 0},

	Minus: {"minus", Locator{4, 1 << 0}, 0},

	MinRU:     {"min-ru", Locator{5, 1 << 0}, MaxRU},
	MaxRU:     {"max-ru", Locator{2, 1 << 4}, MinRU},
	MinEN:     {"min", Locator{6, 1 << 0}, MaxEN},
	MaxEN:     {"max", Locator{3, 1 << 0}, MinEN},
	BurstRU:   {"burst-ru", Locator{1, 1 << 4}, BurstEN},
	BurstEN:   {"burst", Locator{1, 1 << 7}, BurstRU},
	LeakRU:    {"leak-ru", Locator{1, 1 << 6}, LeakEN},
	LeakEN:    {"leak", Locator{1, 1 << 3}, LeakRU},
	ReverseRU: {"rev-ru", Locator{1, 1 << 2}, ReverseEN},
	ReverseEN: {"rev", Locator{1, 1 << 1}, ReverseRU},
	VersionRU: {"ver-ru", Locator{2, 1 << 1}, VersionEN},
	VersionEN: {"ver", Locator{2, 1 << 2}, VersionRU},
	SerialRU:  {"sn-ru", Locator{1, 1 << 5}, SerialEN},
	SerialEN:  {"sn", Locator{16, 1 << 7}, SerialRU},

	Frost:       {"frost", Locator{2, 1 << 0}, 0},
	Query:       {"query", Locator{2, 1 << 3}, 0},
	Warning:     {"warning", Locator{17, 1 << 0}, 0},
	Magnet:      {"magnet", Locator{16, 1 << 4}, 0},
	Left:        {"left", Locator{16, 1 << 0}, 0},
	Right:       {"right", Locator{15, 1 << 0}, 0},
	NoWater:     {"nowater", Locator{15, 1 << 4}, 0},
	CRC:         {"crc", Locator{16, 1 << 6}, 0},
	Delta:       {"delta", Locator{16, 1 << 5}, 0},
	T:           {"t", Locator{16, 1 << 2}, 0},
	T1:          {"t1", Locator{16, 1 << 3}, 0},
	T2:          {"t2", Locator{15, 1 << 7}, 0},
	NBFi:        {"nbfi", Locator{14, 1 << 4}, 0},
	NBIoT:       {"nbiot", Locator{14, 1 << 0}, 0},
	DegreePoint: {"degree", Locator{15, 1 << 6}, 0},

	GCal:        {"gcal", Locator{13, 1 << 2}, GJ},
	GCalPerHour: {"gcal/h", Locator{12, 1 << 6}, GJPerHour},
	GJ:          {"gj", Locator{15, 1 << 5}, GCal},
	GJPerHour:   {"gj/h", Locator{13, 1 << 1}, GCalPerHour},
	KW:          {"kw", Locator{11, 1 << 5}, MW},
	MW:          {"mw", Locator{11, 1 << 6}, KW},
	W:           {"w", Locator{12, 1 << 5}, 0},
	WPerHour:    {"wh", Locator{12, 1 << 1}, 0},
	Gal:         {"gal", Locator{13, 1 << 2}, 0},
	GalPerMin:   {"gal/min", Locator{12, 1 << 6}, 0},
	M3:          {"m3", Locator{12, 1 << 0}, 0},
	M3PerHourRU: {"m3/h-ru", Locator{12, 1 << 3}, M3PerHourEN},
	M3PerHourEN: {"m3/h", Locator{12, 1 << 4}, M3PerHourRU},
	FT3:         {"ft3", Locator{15, 1 << 2}, 0},
	FT3PerMin:   {"ft3/min", Locator{15, 1 << 1}, 0},
	MMBTU:       {"mmbtu", Locator{15, 1 << 3}, 0},
	Gallons:     {"gallons", Locator{14, 1 << 5}, 0},
	US:          {"us", Locator{14, 1 << 6}, 0},
}

// dots lists the decimal points from left to right. Dot k sits between
// character cells k-1 and k.
var dots = [...]Element{Dot1, Dot2, Dot3, Dot4, Dot5}

// allClear covers every segment bit of byte 1.
var allClear = Locator{1, 0xfe}

// Locator returns where the element is wired.
func (e Element) Locator() Locator {
	if !e.valid() {
		return Locator{}
	}
	return segments[e].loc
}

// Excludes returns the element that can not be lit together with e, or 0.
func (e Element) Excludes() Element {
	if !e.valid() {
		return 0
	}
	return segments[e].excludes
}

func (e Element) String() string {
	if !e.valid() {
		return fmt.Sprintf("Element(%d)", uint8(e))
	}
	return segments[e].name
}

func (e Element) valid() bool {
	return e > 0 && e < numElements
}

// Elements returns every element of the glass in declaration order.
func Elements() []Element {
	out := make([]Element, 0, numElements-1)
	for e := Element(1); e < numElements; e++ {
		out = append(out, e)
	}
	return out
}

// ParseElement looks up an element by the name returned by String. The
// comparison ignores case.
func ParseElement(name string) (Element, error) {
	for e := Element(1); e < numElements; e++ {
		if strings.EqualFold(segments[e].name, name) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("ht1621: unknown element %q", name)
}

func (l Lang) String() string {
	if l == Russian {
		return "ru"
	}
	return "en"
}

// pick returns the element printed in the requested language.
func (l Lang) pick(ru, en Element) Element {
	if l == Russian {
		return ru
	}
	return en
}
