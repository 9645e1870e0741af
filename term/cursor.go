// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

// move implements the cursor-motion primitive: horizontal motion
// first, with wrap or clamp at the column margins, then vertical
// motion, which triggers a scroll instead of clamping when it would
// cross a scroll-region boundary.
//
// move is used by putc, LF, CR+LF-equivalents, Index and Reverse Index —
// anywhere crossing the margin must scroll rather than clamp. The
// command-level clamp required for CUU/CUD/CUF/CUB (A/B/C/D) is applied
// by the executor, not here.
func (t *Terminal) move(dx, dy int) error {
	newX := t.col + dx
	switch {
	case newX > t.width:
		if t.cursorWrap {
			dy += newX / t.width
			t.col = newX%t.width - 1
		} else {
			t.col = t.width
		}
	case newX < 0:
		dy += newX/t.width - 1
		t.col = t.width - absInt(newX)%t.width + 1
	default:
		t.col = newX
	}

	newY := t.row + dy
	switch {
	case newY >= t.scrollEndRow:
		if err := t.scroll(newY - t.scrollEndRow + 1); err != nil {
			return err
		}
		t.row = t.scrollEndRow - 1
	case newY < t.scrollStartRow:
		if err := t.scroll(-(t.scrollStartRow - newY)); err != nil {
			return err
		}
		t.row = t.scrollStartRow
	default:
		t.row = newY
	}
	return nil
}

// drawAt renders ch at the current cursor position without moving the
// cursor. A glyph is only drawn when the cursor is within the writable
// grid — col == width or row == height are legal "past the end" landing
// spots that participate in further motion but never draw.
func (t *Terminal) drawAt(ch byte) error {
	if t.col < t.width && t.row < t.height {
		x := t.col * CharW
		y := t.physRow(t.row) * CharH
		return t.adapter.DrawChar(x, y, ch)
	}
	return nil
}

// putc draws a single byte at the cursor and advances it one column to
// the right, scrolling/wrapping as needed. Used for printable bytes, the
// hex debug rendering of other control bytes, and tab expansion.
func (t *Terminal) putc(ch byte) error {
	if err := t.drawAt(ch); err != nil {
		return err
	}
	return t.move(1, 0)
}
