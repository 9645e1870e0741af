// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

// fakeAdapter is a minimal in-memory Adapter double used by the term
// package's own tests. It records enough state to assert on cell
// contents and colors without any pixel rendering.
type fakeAdapter struct {
	screenW, screenH int

	// cells[row][col] holds the last byte drawn there, or 0 if never
	// written / cleared. Indexed by physical row.
	cells [][]byte

	fg, bg uint16

	scrollStart          int
	marginTop, marginBot int
}

func newFakeAdapter(cols, rows int) *fakeAdapter {
	a := &fakeAdapter{
		screenW: cols * CharW,
		screenH: rows * CharH,
		cells:   make([][]byte, rows),
	}
	for i := range a.cells {
		a.cells[i] = make([]byte, cols)
	}
	return a
}

func (a *fakeAdapter) ScreenWidth() int  { return a.screenW }
func (a *fakeAdapter) ScreenHeight() int { return a.screenH }

func (a *fakeAdapter) DrawChar(x, y int, ch byte) error {
	row, col := y/CharH, x/CharW
	a.cells[row][col] = ch
	return nil
}

func (a *fakeAdapter) FillRect(x, y, w, h int, color uint16) error {
	row0, row1 := y/CharH, (y+h)/CharH
	col0, col1 := x/CharW, (x+w)/CharW
	for r := row0; r < row1 && r < len(a.cells); r++ {
		for c := col0; c < col1 && c < len(a.cells[r]); c++ {
			a.cells[r][c] = 0
		}
	}
	return nil
}

func (a *fakeAdapter) SetFG(color uint16) error { a.fg = color; return nil }
func (a *fakeAdapter) SetBG(color uint16) error { a.bg = color; return nil }

func (a *fakeAdapter) SetScrollMargins(top, bottom int) error {
	a.marginTop, a.marginBot = top, bottom
	return nil
}

func (a *fakeAdapter) SetScrollStart(y int) error {
	a.scrollStart = y
	return nil
}

func (a *fakeAdapter) cellAt(physRow, col int) byte {
	return a.cells[physRow][col]
}
