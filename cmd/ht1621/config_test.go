// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ht1621.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
display:
  cs: GPIO8
  wr: GPIO11
  data: GPIO10
  backlight: GPIO25
  lang: ru
meter:
  endpoint: 192.168.1.20:502
  register: 40
  words: 2
  multiplier: 100
  unit: m3
  interval_ms: 5000
`)
	cfg, err := loadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Display: DisplayConfig{
			CS:           "GPIO8",
			WR:           "GPIO11",
			Data:         "GPIO10",
			Backlight:    "GPIO25",
			FrequencyKHz: 100,
			Lang:         "ru",
		},
		Meter: MeterConfig{
			Endpoint:   "192.168.1.20:502",
			UnitID:     1,
			Register:   40,
			Words:      2,
			Multiplier: 100,
			Unit:       "m3",
			IntervalMs: 5000,
			TimeoutMs:  2000,
		},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config difference (-want +got):\n%s", diff)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if !cfg.Display.bitBang() {
		t.Fatal("pins are configured")
	}
	if cfg.Display.frequency() != 100*physic.KiloHertz {
		t.Fatal(cfg.Display.frequency())
	}
	if cfg.Meter.interval() != 5*time.Second || cfg.Meter.timeout() != 2*time.Second {
		t.Fatal(cfg.Meter.interval(), cfg.Meter.timeout())
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(defaultConfig(), *cfg); diff != "" {
		t.Fatalf("config difference (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file")
	}
	if _, err := loadConfig(writeConfig(t, "display:\n  pins: 3\n")); err == nil {
		t.Fatal("unknown key should be refused")
	}
	if _, err := loadConfig(writeConfig(t, "display: [")); err == nil {
		t.Fatal("invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	data := []struct {
		name string
		edit func(c *Config)
	}{
		{"wr without data", func(c *Config) { c.Display.WR = "GPIO11"; c.Display.CS = "GPIO8" }},
		{"data without cs", func(c *Config) { c.Display.WR = "GPIO11"; c.Display.Data = "GPIO10" }},
		{"spi and pins", func(c *Config) {
			c.Display.SPI, c.Display.CS, c.Display.WR, c.Display.Data = "SPI0.0", "GPIO8", "GPIO11", "GPIO10"
		}},
		{"frequency", func(c *Config) { c.Display.FrequencyKHz = 400 }},
		{"lang", func(c *Config) { c.Display.Lang = "de" }},
		{"words", func(c *Config) { c.Meter.Words = 3 }},
		{"interval", func(c *Config) { c.Meter.IntervalMs = 0 }},
		{"unit", func(c *Config) { c.Meter.Unit = "parsec" }},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			cfg := defaultConfig()
			line.edit(&cfg)
			if err := cfg.validate(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	cfg := defaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults: %v", err)
	}
}

func TestParseLang(t *testing.T) {
	for s, want := range map[string]bool{"": false, "en": false, "ru": true} {
		l, err := parseLang(s)
		if err != nil {
			t.Fatal(err)
		}
		if (l.String() == "ru") != want {
			t.Fatalf("parseLang(%q) = %s", s, l)
		}
	}
}
