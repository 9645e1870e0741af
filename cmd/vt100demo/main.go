// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command vt100demo drives a term.Terminal from stdin and renders it to
// a display backend selected on the command line: a software console,
// an attached SSD1306 OLED, or an MJPEG HTTP stream.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/periph-devices/vt100term/display"
	"github.com/periph-devices/vt100term/serial"
	"github.com/periph-devices/vt100term/term"
)

func main() {
	backend := flag.String("backend", "console", "display backend: console, ssd1306, mjpeg")
	cols := flag.Int("cols", 80, "terminal columns")
	rows := flag.Int("rows", 24, "terminal rows")
	addr := flag.String("http", ":8080", "address to serve the mjpeg backend on")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	adapter, halt, err := openAdapter(*backend, *cols, *rows, *addr)
	if err != nil {
		log.Fatalf("vt100demo: %v", err)
	}
	defer func() {
		if err := halt(); err != nil {
			log.Printf("vt100demo: halt: %v", err)
		}
	}()

	respond := func(s string) {
		if _, err := os.Stdout.WriteString(s); err != nil {
			log.Printf("vt100demo: response write: %v", err)
		}
	}
	t, err := term.NewTerminal(adapter, respond)
	if err != nil {
		log.Fatalf("vt100demo: %v", err)
	}
	log.Printf("vt100demo: %dx%d terminal on %s backend", t.Width(), t.Height(), *backend)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	src := serial.NewReaderSource(ctx, os.Stdin)
	defer src.Close()

	for {
		b, ok := src.Next(ctx)
		if !ok {
			if err := src.Err(); err != nil {
				log.Printf("vt100demo: %v", err)
			}
			return
		}
		if err := t.Feed(b); err != nil {
			log.Printf("vt100demo: feed: %v", err)
		}
	}
}

// openAdapter constructs the requested term.Adapter and returns a halt
// function that releases whatever hardware/network resource it opened.
func openAdapter(backend string, cols, rows int, addr string) (term.Adapter, func() error, error) {
	switch backend {
	case "console":
		a := display.NewANSIConsole(cols, rows)
		return a, a.Halt, nil
	case "ssd1306":
		b, err := i2creg.Open("")
		if err != nil {
			return nil, nil, err
		}
		opts := ssd1306.DefaultOpts
		opts.W = cols * term.CharW
		opts.H = rows * term.CharH
		dev, err := ssd1306.NewI2C(b, &opts)
		if err != nil {
			_ = b.Close()
			return nil, nil, err
		}
		a := display.NewSSD1306(dev)
		return a, func() error {
			err := a.Halt()
			if cerr := b.Close(); err == nil {
				err = cerr
			}
			return err
		}, nil
	case "mjpeg":
		a := display.NewMJPEG(cols, rows)
		srv := &httpServer{addr: addr, handler: a}
		srv.start()
		return a, func() error {
			srv.stop()
			return a.Halt()
		}, nil
	default:
		return nil, nil, errBackend(backend)
	}
}
