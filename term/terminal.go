// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

import "fmt"

// Grid cell size in pixels. The display adapters convert between pixel
// coordinates and character cells with these values.
const (
	CharW = 6
	CharH = 8
)

// MaxArgs bounds the number of numeric CSI arguments accumulated per
// sequence. Arguments past this are folded into the last slot instead of
// overflowing the array.
const MaxArgs = 4

const tabStop = 4

// Default colors, RGB565.
const (
	defaultFG uint16 = 0xFFFF // white
	defaultBG uint16 = 0x0000 // black
)

type parserState int

const (
	stateIdle parserState = iota
	stateEscape
	stateCSI
	stateCSIQuestion
	stateLeftParen
	stateRightParen
	stateHash
	stateArgAcc
)

// Terminal is a single VT100/ANSI terminal instance: parser state,
// cursor, margins, and graphic rendition, bound to one Adapter.
//
// Terminal is not safe for concurrent use. Feed must be called
// sequentially by a single draining loop — never from two goroutines,
// and never re-entrantly from within ResponseFunc.
type Terminal struct {
	adapter  Adapter
	response ResponseFunc

	width  int // columns
	height int // rows

	row, col           int
	savedRow, savedCol int

	fg, bg uint16

	scrollStartRow, scrollEndRow int
	scrollValue                  int

	cursorWrap bool
	originMode bool

	args [MaxArgs]int
	narg int

	state    parserState
	retState parserState
}

// NewTerminal creates a Terminal bound to adapter, derives the character
// grid from the adapter's pixel geometry, and performs the equivalent of
// ESC c (full reset).
func NewTerminal(adapter Adapter, response ResponseFunc) (*Terminal, error) {
	if adapter == nil {
		return nil, fmt.Errorf("term: adapter must not be nil")
	}
	t := &Terminal{
		adapter:  adapter,
		response: response,
		width:    adapter.ScreenWidth() / CharW,
		height:   adapter.ScreenHeight() / CharH,
	}
	if err := t.Reset(); err != nil {
		return nil, err
	}
	return t, nil
}

// Width and Height report the character grid size.
func (t *Terminal) Width() int  { return t.width }
func (t *Terminal) Height() int { return t.height }

// Cursor reports the current logical cursor position.
func (t *Terminal) Cursor() (row, col int) { return t.row, t.col }

// Reset implements ESC c: full terminal reset.
func (t *Terminal) Reset() error {
	t.fg = defaultFG
	t.bg = defaultBG
	t.row, t.col = 0, 0
	t.savedRow, t.savedCol = 0, 0
	t.narg = 0
	for i := range t.args {
		t.args[i] = 0
	}
	t.scrollStartRow = 0
	t.scrollEndRow = t.height
	t.scrollValue = 0
	t.cursorWrap = false
	t.originMode = false
	t.state = stateIdle
	t.retState = stateIdle

	if err := t.adapter.SetFG(t.fg); err != nil {
		return fmt.Errorf("term: reset: %w", err)
	}
	if err := t.adapter.SetBG(t.bg); err != nil {
		return fmt.Errorf("term: reset: %w", err)
	}
	if err := t.adapter.SetScrollMargins(0, 0); err != nil {
		return fmt.Errorf("term: reset: %w", err)
	}
	if err := t.adapter.SetScrollStart(0); err != nil {
		return fmt.Errorf("term: reset: %w", err)
	}
	return nil
}

func (t *Terminal) sendResponse(s string) {
	if t.response != nil {
		t.response(s)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func properMod(a, b int) int {
	if b == 0 {
		return 0
	}
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
