// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

import "fmt"

// Feed consumes a single byte from the host stream, advancing the parser
// state machine and, when a sequence completes, mutating terminal state
// and invoking Adapter primitives. Feed runs to completion and never
// blocks; it must be called sequentially from one goroutine only — never
// concurrently, and never re-entrantly from ResponseFunc.
func (t *Terminal) Feed(b byte) error {
	var err error
	switch t.state {
	case stateIdle:
		err = t.feedIdle(b)
	case stateEscape:
		err = t.feedEscape(b)
	case stateCSI:
		err = t.feedCSI(b, false)
	case stateCSIQuestion:
		err = t.feedCSI(b, true)
	case stateLeftParen, stateRightParen, stateHash:
		// Character-set selection / alignment test: consume one byte,
		// no effect.
		t.state = stateIdle
	case stateArgAcc:
		err = t.feedArgAcc(b)
	default:
		t.state = stateIdle
	}
	if err != nil {
		return fmt.Errorf("term: feed 0x%02x: %w", b, err)
	}
	return nil
}

const (
	ascENQ = 0x05
	ascBEL = 0x07
	ascBS  = 0x08
	ascHT  = 0x09
	ascLF  = 0x0A
	ascCR  = 0x0D
	ascESC = 0x1B
	ascDEL = 0x7F
)

func (t *Terminal) feedIdle(b byte) error {
	switch {
	case b == ascENQ:
		t.sendResponse("X")
		return nil
	case b == ascBEL:
		return nil
	case b == ascBS:
		return t.move(-1, 0)
	case b == ascHT:
		return t.tab()
	case b == ascLF:
		if err := t.move(0, 1); err != nil {
			return err
		}
		t.col = 0
		return nil
	case b == ascCR:
		t.col = 0
		return nil
	case b == ascESC:
		t.state = stateEscape
		return nil
	case b == ascDEL:
		if err := t.drawAt(' '); err != nil {
			return err
		}
		return t.move(-1, 0)
	case b >= 0x20 && b <= 0x7E:
		return t.putc(b)
	default:
		return t.hexDebug(b)
	}
}

// tab pads with spaces up to the next multiple of the tab stop.
func (t *Terminal) tab() error {
	const tabStopWidth = tabStop
	target := (t.col/tabStopWidth + 1) * tabStopWidth
	for t.col < target {
		before := t.col
		if err := t.putc(' '); err != nil {
			return err
		}
		if t.col <= before {
			// Clamped at the right margin or wrapped to the next row.
			break
		}
	}
	return nil
}

// hexDebug renders a non-printable byte outside the IDLE control table
// as "0xNN" — a debug aid, not a VT100 sequence.
func (t *Terminal) hexDebug(ch byte) error {
	const digits = "0123456789abcdef"
	for _, c := range []byte{'0', 'x', digits[(ch&0xf0)>>4], digits[ch&0x0f]} {
		if err := t.putc(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Terminal) feedEscape(b byte) error {
	switch b {
	case '[':
		t.state = stateCSI
		t.narg = 0
		for i := range t.args {
			t.args[i] = 0
		}
		return nil
	case '(':
		t.state = stateLeftParen
		return nil
	case ')':
		t.state = stateRightParen
		return nil
	case '#':
		t.state = stateHash
		return nil
	case ascESC:
		// Stay in ESCAPE: a second ESC restarts the sequence.
		t.state = stateEscape
		return nil
	}

	t.state = stateIdle
	switch b {
	case 'D':
		return t.move(0, 1)
	case 'M':
		return t.move(0, -1)
	case 'E':
		if err := t.move(0, 1); err != nil {
			return err
		}
		t.col = 0
		return nil
	case '7', 's':
		t.savedRow, t.savedCol = t.row, t.col
		return nil
	case '8', 'u':
		t.row, t.col = t.savedRow, t.savedCol
		return nil
	case 'c':
		return t.Reset()
	case 'Z':
		t.sendResponse("\x1b[?1;0c")
		return nil
	case 'P', '=', '>', 'H', 'N', 'O', '<':
		return nil
	default:
		return nil
	}
}

func (t *Terminal) feedCSI(b byte, question bool) error {
	if !question && b == '?' {
		t.state = stateCSIQuestion
		return nil
	}
	switch {
	case b >= '0' && b <= '9':
		t.retState = t.state
		t.accumulateDigit(b)
		t.state = stateArgAcc
		return nil
	case b == ';':
		// Ignored: args are already zero-initialised and narg only
		// advances from within ARG_ACC.
		return nil
	default:
		t.state = stateIdle
		if question {
			return t.execCSIQuestion(b)
		}
		return t.execCSI(b)
	}
}

func (t *Terminal) feedArgAcc(b byte) error {
	switch {
	case b >= '0' && b <= '9':
		t.accumulateDigit(b)
		return nil
	case b == ';':
		t.incrementNarg()
		return nil
	default:
		t.incrementNarg()
		t.state = t.retState
		return t.Feed(b)
	}
}

// argIndex caps the write index at MaxArgs-1 so a malformed sequence
// with more than MaxArgs arguments folds extras into the last slot
// instead of writing out of bounds.
func (t *Terminal) argIndex() int {
	if t.narg >= MaxArgs {
		return MaxArgs - 1
	}
	return t.narg
}

func (t *Terminal) accumulateDigit(b byte) {
	idx := t.argIndex()
	t.args[idx] = t.args[idx]*10 + int(b-'0')
}

func (t *Terminal) incrementNarg() {
	t.narg++
	if t.narg > MaxArgs-1 {
		t.narg = MaxArgs - 1
	}
}
