// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package display

import (
	"fmt"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/periph-devices/vt100term/term"
)

// ANSIConsole renders the terminal grid onto a real console using ANSI
// cursor-positioning and 256-color SGR escapes, so the emulator can be
// driven and watched without any attached display hardware.
type ANSIConsole struct {
	w       io.Writer
	cols    int
	rows    int
	palette ansi256.Palette
}

// NewANSIConsole returns a console-backed Adapter sized cols x rows,
// writing to a Windows-safe wrapper around stdout.
func NewANSIConsole(cols, rows int) *ANSIConsole {
	return newANSIConsole(colorable.NewColorableStdout(), cols, rows)
}

func newANSIConsole(w io.Writer, cols, rows int) *ANSIConsole {
	c := &ANSIConsole{
		w:       w,
		cols:    cols,
		rows:    rows,
		palette: *ansi256.Default,
	}
	fmt.Fprint(c.w, "\033[2J")
	return c
}

func (c *ANSIConsole) ScreenWidth() int  { return c.cols * term.CharW }
func (c *ANSIConsole) ScreenHeight() int { return c.rows * term.CharH }

func (c *ANSIConsole) cellOf(x, y int) (row, col int) {
	return y / term.CharH, x / term.CharW
}

// DrawChar positions the real console cursor at (row+1, col+1) — ANSI
// is 1-indexed — and writes one rune without disturbing anything else
// on screen.
func (c *ANSIConsole) DrawChar(x, y int, ch byte) error {
	row, col := c.cellOf(x, y)
	_, err := fmt.Fprintf(c.w, "\033[%d;%dH%c", row+1, col+1, rune(ch))
	return err
}

// FillRect paints w x h pixels, rounded to whole character cells, with
// the background color expressed as a space on a colored field.
func (c *ANSIConsole) FillRect(x, y, w, h int, color uint16) error {
	row0, col0 := c.cellOf(x, y)
	row1, col1 := c.cellOf(x+w, y+h)
	block := c.palette.Block(rgb565ToNRGBA(color))
	for row := row0; row < row1; row++ {
		if _, err := fmt.Fprintf(c.w, "\033[%d;%dH", row+1, col0+1); err != nil {
			return err
		}
		for col := col0; col < col1; col++ {
			if _, err := io.WriteString(c.w, block); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(c.w, "\033[0m")
	return err
}

func (c *ANSIConsole) SetFG(uint16) error { return nil }
func (c *ANSIConsole) SetBG(uint16) error { return nil }

func (c *ANSIConsole) SetScrollMargins(int, int) error { return nil }

// SetScrollStart has no effect, since there is no hardware scroll
// register to program on a console: rows stay at the physical
// positions DrawChar/FillRect wrote them to, without the rotation.
func (c *ANSIConsole) SetScrollStart(int) error { return nil }

func (c *ANSIConsole) String() string { return "ANSIConsole" }

// Halt implements conn.Resource: it starts a new line and resets SGR
// state so the terminal is not left in a colored state. The console is
// not cleared.
func (c *ANSIConsole) Halt() error {
	_, err := io.WriteString(c.w, "\n\033[0m")
	return err
}

var _ term.Adapter = (*ANSIConsole)(nil)
