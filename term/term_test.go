// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

import (
	"testing"
)

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, *fakeAdapter, *[]string) {
	t.Helper()
	a := newFakeAdapter(cols, rows)
	var responses []string
	term, err := NewTerminal(a, func(s string) { responses = append(responses, s) })
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	return term, a, &responses
}

func feedString(t *testing.T, term *Terminal, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if err := term.Feed(s[i]); err != nil {
			t.Fatalf("Feed(%q): %v", s[i], err)
		}
	}
}

func TestClearScreenThenHomeResetsCursorAndScroll(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[2J\x1b[1;1H")
	row, col := term.Cursor()
	if row != 0 || col != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", row, col)
	}
	if term.scrollValue != 0 {
		t.Fatalf("scrollValue = %d, want 0", term.scrollValue)
	}
}

// A trailing extra arg on 'J'/'K' makes the original gate strictly on
// narg == 1, so it falls through and does nothing.
func TestMultiArgEraseDisplayAndEraseLineAreNoOps(t *testing.T) {
	term, a, _ := newTestTerminal(t, 40, 40)
	for c := 0; c < term.width; c++ {
		a.cells[0][c] = 'X'
	}
	feedString(t, term, "\x1b[1;5J")
	for c := 0; c < term.width; c++ {
		if a.cellAt(0, c) != 'X' {
			t.Fatalf("eraseDisplay with extra arg modified cell (0,%d)", c)
		}
	}
	feedString(t, term, "\x1b[1;5K")
	for c := 0; c < term.width; c++ {
		if a.cellAt(0, c) != 'X' {
			t.Fatalf("eraseLine with extra arg modified cell (0,%d)", c)
		}
	}
}

func TestCursorPositionIsOneIndexed(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[12;8H")
	row, col := term.Cursor()
	if row != 11 || col != 7 {
		t.Fatalf("cursor = (%d,%d), want (11,7)", row, col)
	}
}

func TestOriginModeOffsetsHomeToScrollRegion(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[5;20r\x1b[?6h\x1b[1;1H")
	row, col := term.Cursor()
	if row != 4 || col != 0 {
		t.Fatalf("cursor = (%d,%d), want (4,0)", row, col)
	}
}

// Crossing the bottom margin scrolls up by one and blanks the
// newly-exposed logical row.
func TestCrossingBottomMarginScrollsAndBlanksExposedRow(t *testing.T) {
	term, a, _ := newTestTerminal(t, 40, 40)
	// Mark the physical row that will be exposed by the scroll so the
	// clear can be observed, rather than relying on an always-zero cell.
	markedPhys := term.physRow(term.scrollStartRow)
	for c := 0; c < term.width; c++ {
		a.cells[markedPhys][c] = 'X'
	}
	term.row, term.col = term.scrollEndRow-1, 0
	if err := term.Feed(0x1b); err != nil {
		t.Fatal(err)
	}
	if err := term.Feed('D'); err != nil {
		t.Fatal(err)
	}
	row, _ := term.Cursor()
	if row != term.scrollEndRow-1 {
		t.Fatalf("row = %d, want %d", row, term.scrollEndRow-1)
	}
	if term.scrollValue != 1 {
		t.Fatalf("scrollValue = %d, want 1", term.scrollValue)
	}
	for c := 0; c < term.width; c++ {
		if a.cellAt(markedPhys, c) != 0 {
			t.Fatalf("logical row %d not blank at col %d", term.scrollStartRow, c)
		}
	}
}

func TestSGRSetsForegroundAndBackground(t *testing.T) {
	term, a, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[41;37m")
	if a.bg != 0xF800 {
		t.Fatalf("bg = %#04x, want 0xF800", a.bg)
	}
	if a.fg != 0xFFFF {
		t.Fatalf("fg = %#04x, want 0xFFFF", a.fg)
	}
}

// On a conflicting same-category SGR sequence, the first-specified arg
// wins: args are applied last-to-first.
func TestSGRFirstArgWinsOnConflict(t *testing.T) {
	term, a, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[31;32m")
	if a.fg != sgrPalette[1] {
		t.Fatalf("fg = %#04x, want %#04x (red, first-specified)", a.fg, sgrPalette[1])
	}
}

func TestDeviceAttributeQueryRespondsOnce(t *testing.T) {
	term, _, responses := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[c")
	if len(*responses) != 1 || (*responses)[0] != "\x1b[?1;0c" {
		t.Fatalf("responses = %v, want one \\x1b[?1;0c", *responses)
	}
}

func TestSaveRestoreCursorAcrossIntervalPositioning(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	term.row, term.col = 2, 4
	feedString(t, term, "\x1b7\x1b[35;10H\x1b8")
	row, col := term.Cursor()
	if row != 2 || col != 4 {
		t.Fatalf("cursor = (%d,%d), want (2,4)", row, col)
	}
}

// Cursor stays in range after an arbitrary mix of bytes.
func TestCursorStaysInRangeUnderArbitraryInput(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	input := "Hello\x1b[2J\x1b[10;10H\x1b[999Bworld\x1b[5Ctest\x1b[?7l" +
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA\x1b7\x1b8\x0c\x1b[5;3r"
	for i := 0; i < len(input); i++ {
		if err := term.Feed(input[i]); err != nil {
			t.Fatal(err)
		}
		row, col := term.Cursor()
		if row < 0 || row > term.height {
			t.Fatalf("row %d out of [0,%d]", row, term.height)
		}
		if col < 0 || col > term.width {
			t.Fatalf("col %d out of [0,%d]", col, term.width)
		}
	}
}

// scrollValue stays within [0, region height) across repeated scrolls.
func TestScrollValueStaysInRange(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[5;20r")
	for i := 0; i < 50; i++ {
		if err := term.Feed(0x1b); err != nil {
			t.Fatal(err)
		}
		if err := term.Feed('D'); err != nil {
			t.Fatal(err)
		}
		h := term.scrollEndRow - term.scrollStartRow
		if term.scrollValue < 0 || term.scrollValue >= h {
			t.Fatalf("scrollValue %d out of [0,%d)", term.scrollValue, h)
		}
	}
}

func TestPhysRowIdentityOutsideScrollRegion(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[5;20r")
	term.scrollValue = 3
	for _, r := range []int{0, 1, 2, 3, 19, 25, 39} {
		if got := term.physRow(r); got != r {
			t.Fatalf("physRow(%d) = %d, want %d", r, got, r)
		}
	}
}

// physRow must be a bijection on the scroll region: no two logical
// rows can map to the same physical row, and none can escape it.
func TestPhysRowIsBijectionOnScrollRegion(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[5;20r")
	term.scrollValue = 7
	seen := map[int]bool{}
	for r := term.scrollStartRow; r < term.scrollEndRow; r++ {
		p := term.physRow(r)
		if p < term.scrollStartRow || p >= term.scrollEndRow {
			t.Fatalf("physRow(%d) = %d escapes region [%d,%d)", r, p, term.scrollStartRow, term.scrollEndRow)
		}
		if seen[p] {
			t.Fatalf("physRow(%d) = %d collides with an earlier row", r, p)
		}
		seen[p] = true
	}
}

func TestSaveRestoreCursorRoundTrip(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	term.row, term.col = 9, 13
	if err := term.Feed(0x1b); err != nil {
		t.Fatal(err)
	}
	if err := term.Feed('7'); err != nil {
		t.Fatal(err)
	}
	feedString(t, term, "hello\x1b[2J\x1b[1;1H")
	if err := term.Feed(0x1b); err != nil {
		t.Fatal(err)
	}
	if err := term.Feed('8'); err != nil {
		t.Fatal(err)
	}
	row, col := term.Cursor()
	if row != 9 || col != 13 {
		t.Fatalf("cursor = (%d,%d), want (9,13)", row, col)
	}
}

// resetSnapshot captures the comparable fields of Terminal state — the
// Adapter and ResponseFunc fields are excluded since func values are not
// comparable.
type resetSnapshot struct {
	row, col, savedRow, savedCol int
	fg, bg                       uint16
	scrollStartRow, scrollEndRow int
	scrollValue                  int
	cursorWrap, originMode       bool
	narg                         int
	args                         [MaxArgs]int
	state, retState              parserState
}

func snapshot(t *Terminal) resetSnapshot {
	return resetSnapshot{
		row: t.row, col: t.col, savedRow: t.savedRow, savedCol: t.savedCol,
		fg: t.fg, bg: t.bg,
		scrollStartRow: t.scrollStartRow, scrollEndRow: t.scrollEndRow, scrollValue: t.scrollValue,
		cursorWrap: t.cursorWrap, originMode: t.originMode,
		narg: t.narg, args: t.args,
		state: t.state, retState: t.retState,
	}
}

// ESC c restores the exact default state, and doing it twice in a row
// leaves the same state as doing it once.
func TestResetIsIdempotent(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "hello\x1b[31;44m\x1b[5;20r\x1b[?6h\x1b[?7h")
	feedString(t, term, "\x1bc")
	first := snapshot(term)
	feedString(t, term, "\x1bc")
	second := snapshot(term)
	if first != second {
		t.Fatalf("reset is not idempotent:\n%+v\n%+v", first, second)
	}
	if term.fg != defaultFG || term.bg != defaultBG {
		t.Fatalf("colors not default after reset")
	}
	if term.row != 0 || term.col != 0 {
		t.Fatalf("cursor not home after reset")
	}
	if term.scrollStartRow != 0 || term.scrollEndRow != term.height {
		t.Fatalf("scroll region not full screen after reset")
	}
	if term.cursorWrap || term.originMode {
		t.Fatalf("mode flags not cleared after reset")
	}
}

func TestPrintWithWrapOffClampsAtWidth(t *testing.T) {
	term, _, _ := newTestTerminal(t, 10, 10)
	for i := 0; i < 15; i++ {
		if err := term.Feed('x'); err != nil {
			t.Fatal(err)
		}
	}
	row, col := term.Cursor()
	if row != 0 {
		t.Fatalf("row = %d, want 0", row)
	}
	if col != term.width {
		t.Fatalf("col = %d, want %d", col, term.width)
	}
}

func TestPrintWithWrapOnAdvancesRow(t *testing.T) {
	term, _, _ := newTestTerminal(t, 10, 10)
	feedString(t, term, "\x1b[?7h")
	for i := 0; i < term.width+1; i++ {
		if err := term.Feed('x'); err != nil {
			t.Fatal(err)
		}
	}
	row, _ := term.Cursor()
	if row != 1 {
		t.Fatalf("row = %d, want 1", row)
	}
}

func TestMoveRoundTripNoScroll(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	term.row, term.col = 20, 20
	if err := term.move(3, 2); err != nil {
		t.Fatal(err)
	}
	if err := term.move(-3, -2); err != nil {
		t.Fatal(err)
	}
	if term.row != 20 || term.col != 20 {
		t.Fatalf("cursor = (%d,%d), want (20,20)", term.row, term.col)
	}
}

func TestWriteThenBackspaceRestoresColumn(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	startCol := term.col
	const n = 5
	for i := 0; i < n; i++ {
		if err := term.Feed('a'); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < n; i++ {
		if err := term.Feed(ascBS); err != nil {
			t.Fatal(err)
		}
	}
	if term.col != startCol {
		t.Fatalf("col = %d, want %d", term.col, startCol)
	}
}

func TestInsertDeleteLineNoOpConsumesArgs(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	row, col := term.Cursor()
	feedString(t, term, "\x1b[3L\x1b[2MX")
	newRow, newCol := term.Cursor()
	if newRow != row || newCol != col+1 {
		t.Fatalf("L/M leaked into motion: (%d,%d) -> (%d,%d)", row, col, newRow, newCol)
	}
}

// P moves back n columns and overwrites n cells with spaces; it does not
// shift trailing characters.
func TestDeleteCharsBlanksAtCursor(t *testing.T) {
	term, a, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "ABCDE\x1b[2P")
	if a.cellAt(0, 0) != 'A' || a.cellAt(0, 1) != 'B' || a.cellAt(0, 2) != 'C' {
		t.Fatalf("cols 0-2 = %q %q %q, want A B C", a.cellAt(0, 0), a.cellAt(0, 1), a.cellAt(0, 2))
	}
	if a.cellAt(0, 3) != ' ' || a.cellAt(0, 4) != ' ' {
		t.Fatalf("cols 3-4 = %q %q, want blanks", a.cellAt(0, 3), a.cellAt(0, 4))
	}
	row, col := term.Cursor()
	if row != 0 || col != 5 {
		t.Fatalf("cursor = (%d,%d), want (0,5)", row, col)
	}
}

func TestTabStopsAtMultipleOfFour(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	if err := term.Feed(ascHT); err != nil {
		t.Fatal(err)
	}
	if term.col != 4 {
		t.Fatalf("col = %d, want 4", term.col)
	}
}

func TestArgOverflowCapsAtMaxArgsMinusOne(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[1;2;3;4;5;6H")
	if term.narg != MaxArgs-1 {
		t.Fatalf("narg = %d, want %d", term.narg, MaxArgs-1)
	}
}

func TestUnknownCSIFinalFallsBackToIdle(t *testing.T) {
	term, _, _ := newTestTerminal(t, 40, 40)
	feedString(t, term, "\x1b[9zX")
	row, col := term.Cursor()
	if row != 0 || col != 1 {
		t.Fatalf("cursor = (%d,%d), want (0,1)", row, col)
	}
}

func TestHexDebugRendersNonPrintable(t *testing.T) {
	term, a, _ := newTestTerminal(t, 40, 40)
	if err := term.Feed(0x01); err != nil {
		t.Fatal(err)
	}
	want := []byte{'0', 'x', '0', '1'}
	for i, c := range want {
		if a.cellAt(0, i) != c {
			t.Fatalf("cell %d = %q, want %q", i, a.cellAt(0, i), c)
		}
	}
}
