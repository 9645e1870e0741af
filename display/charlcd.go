// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package display

import (
	"fmt"

	perphdisplay "periph.io/x/conn/v3/display"

	"github.com/periph-devices/vt100term/term"
)

// CharLCD adapts any periph.io/x/conn/v3/display.TextDisplay —
// hd44780, matrixorbital, serlcd, aip31068 — to term.Adapter. These
// panels address character cells, not pixels, so CharLCD recovers
// (row, col) from the pixel coordinates the term package hands it by
// dividing by the fixed glyph cell size, the inverse of the
// col*CharW, row*CharH multiplication the term package uses to
// address cells.
//
// Colors and the scroll-region/margin registers have no hardware
// analogue on a character LCD; SetFG/SetBG/SetScrollMargins/
// SetScrollStart are accepted and ignored, i.e. whatever the panel
// already displays stays put except for the rows the terminal core
// asked to be cleared.
type CharLCD struct {
	dev  perphdisplay.TextDisplay
	cols int
	rows int
}

// NewCharLCD wraps dev.
func NewCharLCD(dev perphdisplay.TextDisplay) *CharLCD {
	return &CharLCD{dev: dev, cols: dev.Cols(), rows: dev.Rows()}
}

func (c *CharLCD) ScreenWidth() int  { return c.cols * term.CharW }
func (c *CharLCD) ScreenHeight() int { return c.rows * term.CharH }

func (c *CharLCD) cellOf(x, y int) (row, col int) {
	return y / term.CharH, x / term.CharW
}

func (c *CharLCD) DrawChar(x, y int, ch byte) error {
	row, col := c.cellOf(x, y)
	if err := c.dev.MoveTo(row, col); err != nil {
		return fmt.Errorf("display: charlcd moveto: %w", err)
	}
	_, err := c.dev.WriteString(string(rune(ch)))
	return err
}

// FillRect blanks the character cells the rectangle covers with
// spaces. Pixel coordinates are truncated to whole cells, so a cell is
// only blanked when the rectangle reaches its far edge.
func (c *CharLCD) FillRect(x, y, w, h int, _ uint16) error {
	row0, col0 := c.cellOf(x, y)
	row1, col1 := c.cellOf(x+w, y+h)
	blank := make([]byte, col1-col0)
	for i := range blank {
		blank[i] = ' '
	}
	for row := row0; row < row1; row++ {
		if err := c.dev.MoveTo(row, col0); err != nil {
			return fmt.Errorf("display: charlcd moveto: %w", err)
		}
		if _, err := c.dev.Write(blank); err != nil {
			return err
		}
	}
	return nil
}

func (c *CharLCD) SetFG(uint16) error { return nil }
func (c *CharLCD) SetBG(uint16) error { return nil }

func (c *CharLCD) SetScrollMargins(int, int) error { return nil }

// SetScrollStart has no hardware register to write on a character
// display; the terminal core has already cleared the rows it needed
// to via FillRect before calling this, so there is nothing left to do.
func (c *CharLCD) SetScrollStart(int) error { return nil }

func (c *CharLCD) String() string { return fmt.Sprintf("CharLCDAdapter{%s}", c.dev) }

func (c *CharLCD) Halt() error { return c.dev.Halt() }

var _ term.Adapter = (*CharLCD)(nil)
