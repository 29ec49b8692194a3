// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1621

// BatteryLevel shows the battery gauge. The outline is always lit, one bar is
// added above 25, 50 and 75 percent.
func (d *Dev) BatteryLevel(percent int) error {
	return d.update(func(b *Buffer) {
		b.setTo(BatteryFrame.Locator(), true)
		b.setTo(BatteryLow.Locator(), percent > 25)
		b.setTo(BatteryMid.Locator(), percent > 50)
		b.setTo(BatteryHigh.Locator(), percent > 75)
	})
}

// SignalLevel shows the radio signal gauge: no bar at 0, then one, two or
// three bars above 0, 30 and 60 percent.
func (d *Dev) SignalLevel(percent int) error {
	return d.update(func(b *Buffer) {
		b.setTo(Signal1.Locator(), percent > 0)
		b.setTo(Signal2.Locator(), percent > 30)
		b.setTo(Signal3.Locator(), percent > 60)
	})
}

// bilingual lights the variant of an icon for lang, or darkens both.
func (d *Dev) bilingual(enable bool, lang Lang, ru, en Element) error {
	return d.update(func(b *Buffer) {
		if !enable {
			b.clear(ru.Locator())
			b.clear(en.Locator())
			return
		}
		b.toggle(ru, en, lang == Russian)
	})
}

// MinMax shows "MIN" when showMin is true or "MAX" otherwise, printed in lang.
func (d *Dev) MinMax(enable bool, lang Lang, showMin bool) error {
	return d.update(func(b *Buffer) {
		for _, e := range []Element{MinRU, MaxRU, MinEN, MaxEN} {
			b.clear(e.Locator())
		}
		if !enable {
			return
		}
		b.toggle(lang.pick(MinRU, MinEN), lang.pick(MaxRU, MaxEN), showMin)
	})
}

// Burst shows the pipe burst icon.
func (d *Dev) Burst(enable bool, lang Lang) error {
	return d.bilingual(enable, lang, BurstRU, BurstEN)
}

// Leak shows the leak icon.
func (d *Dev) Leak(enable bool, lang Lang) error {
	return d.bilingual(enable, lang, LeakRU, LeakEN)
}

// Reverse shows the reverse flow icon.
func (d *Dev) Reverse(enable bool, lang Lang) error {
	return d.bilingual(enable, lang, ReverseRU, ReverseEN)
}

// Version shows the firmware version legend.
func (d *Dev) Version(enable bool, lang Lang) error {
	return d.bilingual(enable, lang, VersionRU, VersionEN)
}

// SerialNumber shows the serial number legend.
func (d *Dev) SerialNumber(enable bool, lang Lang) error {
	return d.bilingual(enable, lang, SerialRU, SerialEN)
}

// Frost shows the snowflake.
func (d *Dev) Frost(enable bool) error { return d.Set(Frost, enable) }

// Query shows the "Q" legend.
func (d *Dev) Query(enable bool) error { return d.Set(Query, enable) }

// Warning shows the warning triangle.
func (d *Dev) Warning(enable bool) error { return d.Set(Warning, enable) }

// Magnet shows the magnetic tamper icon.
func (d *Dev) Magnet(enable bool) error { return d.Set(Magnet, enable) }

// Left shows the left arrow.
func (d *Dev) Left(enable bool) error { return d.Set(Left, enable) }

// Right shows the right arrow.
func (d *Dev) Right(enable bool) error { return d.Set(Right, enable) }

// NoWater shows the empty pipe icon.
func (d *Dev) NoWater(enable bool) error { return d.Set(NoWater, enable) }

// CRC shows the "CRC" legend.
func (d *Dev) CRC(enable bool) error { return d.Set(CRC, enable) }

// Delta shows the delta sign.
func (d *Dev) Delta(enable bool) error { return d.Set(Delta, enable) }

// T shows the "T" legend.
func (d *Dev) T(enable bool) error { return d.Set(T, enable) }

// T1 shows the "T1" legend.
func (d *Dev) T1(enable bool) error { return d.Set(T1, enable) }

// T2 shows the "T2" legend.
func (d *Dev) T2(enable bool) error { return d.Set(T2, enable) }

// NBFi shows the NB-Fi radio icon.
func (d *Dev) NBFi(enable bool) error { return d.Set(NBFi, enable) }

// NBIoT shows the NB-IoT radio icon.
func (d *Dev) NBIoT(enable bool) error { return d.Set(NBIoT, enable) }

// DegreePoint shows the degree sign after the last cell.
func (d *Dev) DegreePoint(enable bool) error { return d.Set(DegreePoint, enable) }

// Minus shows the sign segment left of the first cell.
func (d *Dev) Minus(enable bool) error { return d.Set(Minus, enable) }

// MMBTU shows the heat unit legend.
func (d *Dev) MMBTU(enable bool) error { return d.Set(MMBTU, enable) }

// EnergyJ shows the heat energy unit, Gcal when gcal is true and GJ
// otherwise, with the per hour suffix when perHour is true.
func (d *Dev) EnergyJ(enable, gcal, perHour bool) error {
	return d.update(func(b *Buffer) {
		for _, e := range []Element{GJ, GJPerHour, GCal, GCalPerHour} {
			b.clear(e.Locator())
		}
		if !enable {
			return
		}
		unit, rate := GJ, GJPerHour
		if gcal {
			unit, rate = GCal, GCalPerHour
		}
		b.set(unit.Locator())
		b.setTo(rate.Locator(), perHour)
	})
}

// EnergyW shows the electrical energy unit: MW when mega is true and kW
// otherwise, followed by "h" when perHour is true.
func (d *Dev) EnergyW(enable, mega, perHour bool) error {
	return d.update(func(b *Buffer) {
		if !enable {
			for _, e := range []Element{W, KW, MW, WPerHour} {
				b.clear(e.Locator())
			}
			return
		}
		b.set(W.Locator())
		b.toggle(MW, KW, mega)
		b.setTo(WPerHour.Locator(), perHour)
	})
}

// FlowM3 shows the cubic meter unit, with the per hour suffix printed in
// lang when perHour is true.
func (d *Dev) FlowM3(enable bool, lang Lang, perHour bool) error {
	return d.update(func(b *Buffer) {
		b.clear(M3PerHourRU.Locator())
		b.clear(M3PerHourEN.Locator())
		b.setTo(M3.Locator(), enable)
		if enable && perHour {
			b.set(lang.pick(M3PerHourRU, M3PerHourEN).Locator())
		}
	})
}

// FlowGal shows the gallon unit, per minute when perMin is true.
func (d *Dev) FlowGal(enable, perMin bool) error {
	return d.update(func(b *Buffer) {
		b.setTo(Gal.Locator(), enable)
		b.setTo(GalPerMin.Locator(), enable && perMin)
	})
}

// FlowFT3 shows the cubic feet unit, per minute when perMin is true.
func (d *Dev) FlowFT3(enable, perMin bool) error {
	return d.update(func(b *Buffer) {
		b.setTo(FT3.Locator(), enable)
		b.setTo(FT3PerMin.Locator(), enable && perMin)
	})
}

// Gallons shows the "GALLONS" legend, prefixed with "U.S." when us is true.
func (d *Dev) Gallons(enable, us bool) error {
	return d.update(func(b *Buffer) {
		b.setTo(Gallons.Locator(), enable)
		b.setTo(US.Locator(), enable && us)
	})
}
