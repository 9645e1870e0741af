// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package term

// Adapter is the display hardware contract the terminal core drives. It
// mirrors the handful of primitives a character-cell terminal needs from
// a framebuffer device: glyph drawing, rectangle fills, persistent
// colors, and the scroll-origin/margin registers that make hardware
// assisted scrolling possible.
//
// Implementations are expected to behave like periph.io/x/conn/v3
// devices: synchronous, returning an error instead of panicking, and
// safe to call repeatedly with the same arguments.
type Adapter interface {
	// ScreenWidth and ScreenHeight report the panel size in pixels.
	ScreenWidth() int
	ScreenHeight() int

	// DrawChar renders ch at pixel position (x, y) using the adapter's
	// current foreground/background colors.
	DrawChar(x, y int, ch byte) error

	// FillRect paints an opaque w x h rectangle at (x, y).
	FillRect(x, y, w, h int, color uint16) error

	// SetFG and SetBG set the persistent colors used by DrawChar.
	SetFG(color uint16) error
	SetBG(color uint16) error

	// SetScrollMargins defines the non-scrolling regions above and
	// below the active scroll region, in pixels.
	SetScrollMargins(topPx, bottomPx int) error

	// SetScrollStart sets the hardware scroll origin: the physical y
	// coordinate that is displayed as the top of the scroll region.
	SetScrollStart(yPx int) error
}

// ResponseFunc is invoked synchronously from Feed to emit a device
// report (ENQ, DA, DECID, ...) back to the host. Implementations must
// not call back into Feed from this callback.
type ResponseFunc func(response string)
