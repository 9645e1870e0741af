// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

// sgrPalette is the 8-color RGB565 SGR palette.
var sgrPalette = [8]uint16{
	0x0000, // black
	0xF800, // red
	0x0780, // green
	0xFE00, // yellow
	0x001F, // blue
	0xF81F, // magenta
	0x07FF, // cyan
	0xFFFF, // white
}

// count returns args[0] with the default-to-1 rule: the default
// applies only when no argument was supplied at all. An explicit 0
// argument is passed through unchanged (e.g. "\x1b[0A" is a
// zero-length move, not a move of 1).
func (t *Terminal) count() int {
	if t.narg == 0 {
		return 1
	}
	return t.args[0]
}

// execCSI dispatches a completed CSI sequence's final byte.
func (t *Terminal) execCSI(final byte) error {
	switch final {
	case 'A':
		t.row = clamp(t.row-t.count(), 0, t.height)
		return nil
	case 'B':
		t.row = clamp(t.row+t.count(), 0, t.height)
		return nil
	case 'C':
		t.col = clamp(t.col+t.count(), 0, t.width)
		return nil
	case 'D':
		t.col = clamp(t.col-t.count(), 0, t.width)
		return nil
	case 'H', 'f':
		row, col := 0, 0
		if t.narg >= 1 {
			row = t.args[0] - 1
		}
		if t.narg >= 2 {
			col = t.args[1] - 1
		}
		if t.originMode {
			row += t.scrollStartRow
			if row >= t.scrollEndRow {
				row = t.scrollEndRow - 1
			}
		}
		t.row = clamp(row, 0, t.height)
		t.col = clamp(col, 0, t.width)
		return nil
	case 'J':
		return t.eraseDisplay()
	case 'K':
		return t.eraseLine()
	case 'L', 'M':
		// Line insert/delete: recognised, not implemented.
		return nil
	case 'P':
		n := t.count()
		if err := t.move(-n, 0); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := t.putc(' '); err != nil {
				return err
			}
		}
		return nil
	case 'c':
		t.sendResponse("\x1b[?1;0c")
		return nil
	case 's':
		t.savedRow, t.savedCol = t.row, t.col
		return nil
	case 'u':
		t.row, t.col = t.savedRow, t.savedCol
		return nil
	case 'm':
		return t.selectGraphicRendition()
	case 'r':
		return t.setScrollRegion()
	case 'h', 'l', 'g', 'x', '@', 'i', 'y', '=':
		return nil
	default:
		return nil
	}
}

// execCSIQuestion dispatches a completed DEC private-mode ("ESC[?")
// sequence. Only 'h' (set) and 'l' (reset) are meaningful finals;
// everything else is consumed without effect.
func (t *Terminal) execCSIQuestion(final byte) error {
	if final != 'h' && final != 'l' {
		return nil
	}
	set := final == 'h'
	mode := 0
	if t.narg >= 1 {
		mode = t.args[0]
	}
	switch mode {
	case 6:
		t.originMode = set
	case 7:
		t.cursorWrap = set
	}
	// Modes 1, 2, 3, 4, 5, 8, 9: recognised, no effect.
	return nil
}

func (t *Terminal) eraseDisplay() error {
	switch {
	case t.narg == 0 || (t.narg == 1 && t.args[0] == 0):
		return t.clearRows(t.row, t.height)
	case t.narg == 1 && t.args[0] == 1:
		return t.clearRows(0, t.row+1)
	case t.narg == 1 && t.args[0] == 2:
		if err := t.clearRows(0, t.height); err != nil {
			return err
		}
		return t.resetScroll()
	}
	return nil
}

// clearRows blanks logical rows [from, to) through the current scroll
// mapping.
func (t *Terminal) clearRows(from, to int) error {
	for r := from; r < to; r++ {
		if err := t.clearLogicalRow(r); err != nil {
			return err
		}
	}
	return nil
}

func (t *Terminal) resetScroll() error {
	t.scrollStartRow = 0
	t.scrollEndRow = t.height
	t.scrollValue = 0
	if err := t.adapter.SetScrollMargins(0, 0); err != nil {
		return err
	}
	return t.adapter.SetScrollStart(0)
}

func (t *Terminal) eraseLine() error {
	y := t.physRow(t.row) * CharH
	x := t.col * CharW
	screenW := t.width * CharW
	switch {
	case t.narg == 0 || (t.narg == 1 && t.args[0] == 0):
		return t.adapter.FillRect(x, y, screenW-x, CharH, t.bg)
	case t.narg == 1 && t.args[0] == 1:
		return t.adapter.FillRect(0, y, x+CharW, CharH, t.bg)
	case t.narg == 1 && t.args[0] == 2:
		return t.adapter.FillRect(0, y, screenW, CharH, t.bg)
	}
	return nil
}

func (t *Terminal) selectGraphicRendition() error {
	if t.narg == 0 {
		t.fg = defaultFG
		t.bg = defaultBG
		if err := t.adapter.SetFG(t.fg); err != nil {
			return err
		}
		return t.adapter.SetBG(t.bg)
	}
	// Walk args from last to first so that, on conflicting same-category
	// codes in one sequence, the first-specified arg is applied last and
	// wins (e.g. "\x1b[31;32m" ends up red, not green).
	for i := t.narg - 1; i >= 0; i-- {
		n := t.args[i]
		switch {
		case n == 0:
			t.fg = defaultFG
			t.bg = defaultBG
			if err := t.adapter.SetFG(t.fg); err != nil {
				return err
			}
			if err := t.adapter.SetBG(t.bg); err != nil {
				return err
			}
		case n >= 30 && n < 38:
			t.fg = sgrPalette[n-30]
			if err := t.adapter.SetFG(t.fg); err != nil {
				return err
			}
		case n >= 40 && n < 48:
			t.bg = sgrPalette[n-40]
			if err := t.adapter.SetBG(t.bg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Terminal) setScrollRegion() error {
	if t.narg == 2 && t.args[0] < t.args[1] {
		t.scrollStartRow = t.args[0] - 1
		t.scrollEndRow = t.args[1] - 1
		topMargin := t.scrollStartRow * CharH
		bottomMargin := t.height*CharH - t.scrollEndRow*CharH
		// scrollValue is intentionally left untouched, even though it can
		// leave the rotation misaligned with the new region.
		return t.adapter.SetScrollMargins(topMargin, bottomMargin)
	}
	return t.resetScroll()
}
