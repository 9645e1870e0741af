// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package display

import (
	"fmt"
	"image"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/periph-devices/vt100term/term"
)

// SSD1306 adapts a real periph.io/x/devices/v3/ssd1306.Dev to
// term.Adapter. Glyphs are rendered into a monochrome Framebuffer and
// pushed to the panel with one Draw call per mutation; SetDisplayStartLine
// drives the panel's actual hardware scroll-origin register, so a
// scroll never touches pixels the controller itself didn't already
// have in RAM.
type SSD1306 struct {
	dev *ssd1306.Dev
	fb  *Framebuffer
}

// NewSSD1306 wraps dev. The character grid is dev's pixel bounds
// divided by the package's glyph cell size.
func NewSSD1306(dev *ssd1306.Dev) *SSD1306 {
	b := dev.Bounds()
	cols := b.Dx() / term.CharW
	rows := b.Dy() / term.CharH
	return &SSD1306{dev: dev, fb: NewFramebuffer(cols, rows)}
}

func (s *SSD1306) ScreenWidth() int  { return s.fb.ScreenWidth() }
func (s *SSD1306) ScreenHeight() int { return s.fb.ScreenHeight() }

func (s *SSD1306) DrawChar(x, y int, ch byte) error {
	if err := s.fb.DrawChar(x, y, ch); err != nil {
		return err
	}
	return s.push()
}

func (s *SSD1306) FillRect(x, y, w, h int, color uint16) error {
	if err := s.fb.FillRect(x, y, w, h, color); err != nil {
		return err
	}
	return s.push()
}

func (s *SSD1306) SetFG(color uint16) error { return s.fb.SetFG(color) }
func (s *SSD1306) SetBG(color uint16) error { return s.fb.SetBG(color) }

func (s *SSD1306) SetScrollMargins(topPx, bottomPx int) error {
	return s.fb.SetScrollMargins(topPx, bottomPx)
}

// SetScrollStart writes the panel's display-start-line register
// directly instead of shifting any pixel in RAM.
func (s *SSD1306) SetScrollStart(yPx int) error {
	if err := s.fb.SetScrollStart(yPx); err != nil {
		return err
	}
	line := yPx % s.ScreenHeight()
	if line < 0 {
		line += s.ScreenHeight()
	}
	return s.dev.SetDisplayStartLine(byte(line))
}

// push converts the framebuffer's RGBA contents to the 1-bit image the
// SSD1306 expects (any non-black pixel is "on") and draws the full
// frame. The panel's own display-start-line register, not this push,
// is what makes scrolling hardware-assisted: push always writes RAM at
// its true (unrotated) addresses.
func (s *SSD1306) push() error {
	mono := image1bit.NewVerticalLSB(s.fb.img.Bounds())
	draw.Draw(mono, mono.Bounds(), s.fb.img, image.Point{}, draw.Src)
	return s.dev.Draw(s.dev.Bounds(), mono, image.Point{})
}

func (s *SSD1306) String() string { return fmt.Sprintf("SSD1306Adapter{%s}", s.dev) }

func (s *SSD1306) Halt() error { return s.dev.Halt() }

var _ term.Adapter = (*SSD1306)(nil)
