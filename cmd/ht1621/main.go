// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ht1621 writes to a HT1621 meter glass from the command line.
//
// The glass is wired either to three GPIO pins (-cs, -wr and -data) or to an
// SPI port (-spi, with an optional -cs). -emulate draws the glass on the
// terminal instead, -png saves a picture of it after the command ran and
// -serve mirrors it to web browsers.
//
// Examples:
//
//	ht1621 -wr GPIO11 -data GPIO10 -cs GPIO8 print hello
//	ht1621 -spi SPI0.0 fixed -1234 100
//	ht1621 -emulate icon leak on
//	ht1621 -config meter.yaml meter
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/segmentlcd/glassweb"
	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"github.com/GermanBionicSystems/segmentlcd/lcdimage"
	"github.com/GermanBionicSystems/segmentlcd/screen7seg"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const usage = `usage: ht1621 [flags] <command> [args]

commands:
  print <text>                up to 6 characters
  int <n>                     integer, right aligned
  float <f> [precision]       precision defaults to 2
  fixed <mantissa> <scale>    scale is 1, 10, ... 100000
  icon <name> [on|off]        see "icons" for the names
  icons                       list the icon names
  min | max | nominmax        MIN/MAX legend in the -lang language
  burst|leak|reverse|version|serial [on|off]
                              bilingual icons in the -lang language
  battery <percent>
  signal <percent>
  light on|off                backlight
  clear
  on
  off
  meter                       show a Modbus TCP register, see -config

With -serve, the glass stays mirrored at http://<addr>/ until interrupted.

flags:
`

// app runs one command against a device.
type app struct {
	dev    *ht1621.Dev
	lang   ht1621.Lang
	cfg    *Config
	out    io.Writer
	mirror *glassweb.Mirror
}

func (a *app) run(ctx context.Context, args []string) error {
	if err := a.exec(ctx, args); err != nil {
		return err
	}
	a.show()
	return nil
}

// show pushes the glass to the web mirror, if any.
func (a *app) show() {
	if a.mirror == nil {
		return
	}
	if err := a.mirror.Update(a.dev.Buffer()); err != nil {
		log.Printf("mirror: %v", err)
	}
}

func (a *app) exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("no command given, try -help")
	}
	cmd, args := args[0], args[1:]
	log.Printf("%s %s", cmd, strings.Join(args, " "))
	switch cmd {
	case "print":
		return a.dev.Print(strings.Join(args, " "))
	case "int":
		n, err := intArgs(args, 1, 1)
		if err != nil {
			return err
		}
		return a.dev.PrintInt(n[0])
	case "float":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("float takes a value and an optional precision")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		precision := 2
		if len(args) == 2 {
			if precision, err = strconv.Atoi(args[1]); err != nil {
				return err
			}
		}
		return a.dev.PrintFloat(f, precision)
	case "fixed":
		n, err := intArgs(args, 2, 2)
		if err != nil {
			return err
		}
		return a.dev.PrintFixed(n[0], n[1])
	case "icon":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("icon takes a name and on or off")
		}
		e, err := ht1621.ParseElement(args[0])
		if err != nil {
			return err
		}
		on := true
		if len(args) == 2 {
			if on, err = parseOnOff(args[1]); err != nil {
				return err
			}
		}
		return a.dev.Set(e, on)
	case "icons":
		for _, e := range ht1621.Elements() {
			if _, err := fmt.Fprintln(a.out, e); err != nil {
				return err
			}
		}
		return nil
	case "min", "max", "nominmax":
		if len(args) != 0 {
			return fmt.Errorf("%s takes no argument", cmd)
		}
		return a.dev.MinMax(cmd != "nominmax", a.lang, cmd == "min")
	case "burst", "leak", "reverse", "version", "serial":
		on := true
		if len(args) == 1 {
			var err error
			if on, err = parseOnOff(args[0]); err != nil {
				return err
			}
		} else if len(args) > 1 {
			return fmt.Errorf("%s takes on or off", cmd)
		}
		return bilingual[cmd](a.dev, on, a.lang)
	case "battery":
		n, err := intArgs(args, 1, 1)
		if err != nil {
			return err
		}
		return a.dev.BatteryLevel(n[0])
	case "signal":
		n, err := intArgs(args, 1, 1)
		if err != nil {
			return err
		}
		return a.dev.SignalLevel(n[0])
	case "light":
		if len(args) != 1 {
			return errors.New("light takes on or off")
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		if on {
			return a.dev.BacklightOn()
		}
		return a.dev.BacklightOff()
	case "clear":
		return a.dev.Clear()
	case "on":
		return a.dev.DisplayOn()
	case "off":
		return a.dev.DisplayOff()
	case "meter":
		return runMeter(ctx, a.dev, &a.cfg.Meter, a.show)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// bilingual are the icons printed in both languages, -lang picks one.
var bilingual = map[string]func(d *ht1621.Dev, on bool, l ht1621.Lang) error{
	"burst":   (*ht1621.Dev).Burst,
	"leak":    (*ht1621.Dev).Leak,
	"reverse": (*ht1621.Dev).Reverse,
	"version": (*ht1621.Dev).Version,
	"serial":  (*ht1621.Dev).SerialNumber,
}

// intArgs parses between lo and hi integer arguments.
func intArgs(args []string, lo, hi int) ([]int, error) {
	if len(args) < lo || len(args) > hi {
		return nil, fmt.Errorf("expected %d to %d integers, got %d arguments", lo, hi, len(args))
	}
	out := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

// pin looks up an optional pin by name.
func pin(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown pin %q", name)
	}
	return p, nil
}

// open returns the device described by d and a function releasing what it
// holds. The glass itself is left as is.
func open(d *DisplayConfig, emulate bool) (*ht1621.Dev, func() error, error) {
	opts := &ht1621.Opts{Frequency: d.frequency(), Crystal: d.Crystal}
	if emulate {
		s := screen7seg.New(nil)
		dev, err := ht1621.NewSPI(s, nil, opts)
		if err != nil {
			return nil, nil, err
		}
		return dev, s.Halt, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	bl, err := pin(d.Backlight)
	if err != nil {
		return nil, nil, err
	}
	opts.Backlight = bl
	cs, err := pin(d.CS)
	if err != nil {
		return nil, nil, err
	}

	if d.bitBang() {
		wr, err := pin(d.WR)
		if err != nil {
			return nil, nil, err
		}
		data, err := pin(d.Data)
		if err != nil {
			return nil, nil, err
		}
		dev, err := ht1621.NewGPIO(cs, wr, data, opts)
		if err != nil {
			return nil, nil, err
		}
		return dev, func() error { return nil }, nil
	}

	p, err := spireg.Open(d.SPI)
	if err != nil {
		return nil, nil, err
	}
	dev, err := ht1621.NewSPI(p, cs, opts)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return dev, p.Close, nil
}

func writePNG(path string, b ht1621.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lcdimage.EncodePNG(f, b, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func mainImpl() error {
	configPath := flag.String("config", "", "YAML configuration file")
	spiName := flag.String("spi", "", "SPI port to use, empty for the default one")
	csName := flag.String("cs", "", "chip select pin, optional with -spi")
	wrName := flag.String("wr", "", "WR pin, bit-bangs the interface when set")
	dataName := flag.String("data", "", "DATA pin")
	blName := flag.String("backlight", "", "backlight pin")
	lang := flag.String("lang", "", "language of the bilingual icons: en or ru")
	emulate := flag.Bool("emulate", false, "draw on the terminal instead of a real glass")
	pngPath := flag.String("png", "", "save a picture of the glass to this file")
	serve := flag.String("serve", "", "mirror the glass over HTTP on this address until interrupted")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	cfg := defaultConfig()
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = *c
	}
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{*spiName, &cfg.Display.SPI},
		{*csName, &cfg.Display.CS},
		{*wrName, &cfg.Display.WR},
		{*dataName, &cfg.Display.Data},
		{*blName, &cfg.Display.Backlight},
		{*lang, &cfg.Display.Lang},
	} {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	l, err := parseLang(cfg.Display.Lang)
	if err != nil {
		return err
	}

	dev, release, err := open(&cfg.Display, *emulate)
	if err != nil {
		return err
	}
	log.Printf("using %s", dev)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a := &app{dev: dev, lang: l, cfg: &cfg, out: os.Stdout}
	if *serve != "" {
		if a.mirror, err = glassweb.New(nil); err != nil {
			return err
		}
		srv := &http.Server{Addr: *serve, Handler: a.mirror}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("serve: %v", err)
				stop()
			}
		}()
		defer srv.Close()
		defer a.mirror.Halt()
	}
	err = a.run(ctx, flag.Args())
	if err == nil && a.mirror != nil {
		<-ctx.Done()
	}
	if err2 := release(); err == nil {
		err = err2
	}
	if err == nil && *pngPath != "" {
		err = writePNG(*pngPath, dev.Buffer())
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "ht1621: %s.\n", err)
		os.Exit(1)
	}
}
