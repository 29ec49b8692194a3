// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Config is the content of the YAML file given with -config.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Meter   MeterConfig   `yaml:"meter"`
}

// DisplayConfig names how the glass is wired. Either WR and DATA are set and
// the pins are bit-banged, or SPI names the port to use.
type DisplayConfig struct {
	SPI          string `yaml:"spi"`
	CS           string `yaml:"cs"`
	WR           string `yaml:"wr"`
	Data         string `yaml:"data"`
	Backlight    string `yaml:"backlight"`
	FrequencyKHz int    `yaml:"frequency_khz"`
	Crystal      bool   `yaml:"crystal"`
	Lang         string `yaml:"lang"`
}

// MeterConfig is the Modbus TCP holding register shown by the meter command.
type MeterConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	Register   uint16 `yaml:"register"`
	Words      int    `yaml:"words"`
	Signed     bool   `yaml:"signed"`
	Multiplier int    `yaml:"multiplier"`
	Unit       string `yaml:"unit"`
	IntervalMs int    `yaml:"interval_ms"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

func defaultConfig() Config {
	return Config{
		Display: DisplayConfig{FrequencyKHz: 100, Lang: "en"},
		Meter:   MeterConfig{UnitID: 1, Words: 1, Multiplier: 1, IntervalMs: 1000, TimeoutMs: 2000},
	}
}

// loadConfig reads path on top of the defaults. Unknown keys are an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	// An empty file keeps the defaults.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	d := &c.Display
	if d.WR != "" || d.Data != "" {
		if d.CS == "" || d.WR == "" || d.Data == "" {
			return errors.New("display: cs, wr and data are needed to bit-bang")
		}
		if d.SPI != "" {
			return errors.New("display: spi and wr/data are exclusive")
		}
	}
	if d.FrequencyKHz <= 0 || d.FrequencyKHz > 150 {
		return fmt.Errorf("display: frequency_khz %d out of (0, 150]", d.FrequencyKHz)
	}
	if _, err := parseLang(d.Lang); err != nil {
		return err
	}
	m := &c.Meter
	if m.Words != 1 && m.Words != 2 {
		return fmt.Errorf("meter: words must be 1 or 2, got %d", m.Words)
	}
	if m.IntervalMs <= 0 || m.TimeoutMs <= 0 {
		return errors.New("meter: interval_ms and timeout_ms must be positive")
	}
	if m.Unit != "" {
		if _, err := ht1621.ParseElement(m.Unit); err != nil {
			return fmt.Errorf("meter: %w", err)
		}
	}
	return nil
}

// bitBang reports whether the glass is driven through GPIO pins.
func (d *DisplayConfig) bitBang() bool {
	return d.WR != ""
}

func (d *DisplayConfig) frequency() physic.Frequency {
	return physic.Frequency(d.FrequencyKHz) * physic.KiloHertz
}

func (m *MeterConfig) interval() time.Duration {
	return time.Duration(m.IntervalMs) * time.Millisecond
}

func (m *MeterConfig) timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

func parseLang(s string) (ht1621.Lang, error) {
	switch s {
	case "", "en":
		return ht1621.English, nil
	case "ru":
		return ht1621.Russian, nil
	default:
		return 0, fmt.Errorf("unknown language %q, use en or ru", s)
	}
}
