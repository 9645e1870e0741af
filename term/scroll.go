// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

// physRow maps a logical row to the physical row actually displayed.
// Rows outside the scroll region are the identity map; rows inside
// rotate by scrollValue.
func (t *Terminal) physRow(logicalRow int) int {
	if logicalRow < t.scrollStartRow || logicalRow >= t.scrollEndRow {
		return logicalRow
	}
	h := t.scrollEndRow - t.scrollStartRow
	r := logicalRow + t.scrollValue
	if r >= t.scrollEndRow {
		r -= h
	}
	return r
}

// clearLogicalRow blanks one full-width row at the physical position the
// given logical row currently maps to, using the adapter's current
// background color as the fill.
func (t *Terminal) clearLogicalRow(logicalRow int) error {
	py := t.physRow(logicalRow) * CharH
	return t.adapter.FillRect(0, py, t.width*CharW, CharH, t.bg)
}

// scroll implements the scroll engine: lines > 0 scrolls content up
// (new blank rows appear at the bottom of the region), lines < 0
// scrolls down (new blank rows appear at the top). The whole operation
// is one hardware scroll-origin register write plus clearing the newly
// exposed rows — no pixel block is ever copied.
func (t *Terminal) scroll(lines int) error {
	h := t.scrollEndRow - t.scrollStartRow
	if h <= 0 {
		return nil
	}

	switch {
	case lines > 0:
		end := t.scrollStartRow + lines
		if end > t.scrollEndRow {
			end = t.scrollEndRow
		}
		for r := t.scrollStartRow; r < end; r++ {
			if err := t.clearLogicalRow(r); err != nil {
				return err
			}
		}
		t.scrollValue = properMod(t.scrollValue+lines, h)
	case lines < 0:
		start := t.scrollEndRow + lines
		if start < t.scrollStartRow {
			start = t.scrollStartRow
		}
		for r := start; r < t.scrollEndRow; r++ {
			if err := t.clearLogicalRow(r); err != nil {
				return err
			}
		}
		t.scrollValue = properMod(t.scrollValue+lines, h)
	}

	return t.adapter.SetScrollStart((t.scrollStartRow + t.scrollValue) * CharH)
}
