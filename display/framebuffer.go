// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3"
	perphdisplay "periph.io/x/conn/v3/display"

	"github.com/periph-devices/vt100term/term"
)

// Framebuffer is a software term.Adapter backed by an in-memory RGBA
// image. It also implements periph.io/x/conn/v3/display.Drawer and
// conn.Resource so it can be composed with any periph sink that only
// knows how to Draw an image.Image — a videosink.Display, a real
// ssd1306.Dev, or a screen recorder.
//
// The hardware scroll-origin register is emulated: rows drawn or
// filled land at y in the backing image unchanged, Bounds/Draw/Image
// always expose that unrotated image, and RenderRotated shows panel
// row y from backing row (y+scrollOriginPx) mod height. This keeps
// Framebuffer faithful to the "one register write, not a pixel blit"
// contract real scrolling OLED controllers provide.
type Framebuffer struct {
	cols, rows int
	img        *image.RGBA
	face       font.Face

	fg, bg        uint16
	scrollOrigin  int
	marginTop, marginBottom int
}

// NewFramebuffer allocates a Framebuffer sized for cols x rows
// character cells using the package's fixed glyph metrics.
func NewFramebuffer(cols, rows int) *Framebuffer {
	w, h := cols*term.CharW, rows*term.CharH
	f := &Framebuffer{
		cols: cols,
		rows: rows,
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
		fg:   0xFFFF,
		bg:   0x0000,
	}
	draw.Draw(f.img, f.img.Bounds(), image.Black, image.Point{}, draw.Src)
	return f
}

func rgb565ToNRGBA(c uint16) color.NRGBA {
	r := uint8((c>>11)&0x1f) << 3
	g := uint8((c>>5)&0x3f) << 2
	b := uint8(c&0x1f) << 3
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func (f *Framebuffer) ScreenWidth() int  { return f.cols * term.CharW }
func (f *Framebuffer) ScreenHeight() int { return f.rows * term.CharH }

// rotatedRow maps an output (panel) row to the RAM row that holds its
// content, given the current scroll-origin register. This is the only
// place the rotation is applied: DrawChar/FillRect address RAM
// directly, exactly like a real controller's GDDRAM.
func (f *Framebuffer) rotatedRow(panelY int) int {
	h := f.ScreenHeight()
	y := (panelY + f.scrollOrigin) % h
	if y < 0 {
		y += h
	}
	return y
}

// DrawChar implements term.Adapter. x, y address RAM directly; the term
// package has already resolved any logical-to-physical scroll rotation
// before calling this, so no further rotation happens here.
func (f *Framebuffer) DrawChar(x, y int, ch byte) error {
	bgCol := rgb565ToNRGBA(f.bg)
	draw.Draw(f.img, image.Rect(x, y, x+term.CharW, y+term.CharH), &image.Uniform{C: bgCol}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(rgb565ToNRGBA(f.fg)),
		Face: f.face,
		Dot:  fixed.P(x, y+term.CharH-2),
	}
	d.DrawString(string(rune(ch)))
	return nil
}

// FillRect implements term.Adapter.
func (f *Framebuffer) FillRect(x, y, w, h int, colr uint16) error {
	c := rgb565ToNRGBA(colr)
	draw.Draw(f.img, image.Rect(x, y, x+w, y+h), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return nil
}

func (f *Framebuffer) SetFG(colr uint16) error { f.fg = colr; return nil }
func (f *Framebuffer) SetBG(colr uint16) error { f.bg = colr; return nil }

func (f *Framebuffer) SetScrollMargins(topPx, bottomPx int) error {
	f.marginTop, f.marginBottom = topPx, bottomPx
	return nil
}

func (f *Framebuffer) SetScrollStart(yPx int) error {
	f.scrollOrigin = yPx
	return nil
}

// ColorModel implements display.Drawer.
func (f *Framebuffer) ColorModel() color.Model { return f.img.ColorModel() }

// Bounds implements display.Drawer.
func (f *Framebuffer) Bounds() image.Rectangle { return f.img.Bounds() }

// Draw implements display.Drawer, letting external code (a test, a
// screenshot tool) paint directly onto the framebuffer.
func (f *Framebuffer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(f.img, r, src, sp, draw.Src)
	return nil
}

// Image returns the current unrotated contents as seen by Draw/Bounds.
// RenderRotated returns a copy with the hardware scroll offset applied,
// i.e. what the physical panel would actually show.
func (f *Framebuffer) Image() image.Image { return f.img }

func (f *Framebuffer) RenderRotated() *image.RGBA {
	out := image.NewRGBA(f.img.Bounds())
	h := f.ScreenHeight()
	for y := 0; y < h; y++ {
		src := f.rotatedRow(y)
		draw.Draw(out, image.Rect(0, y, f.ScreenWidth(), y+1), f.img, image.Pt(0, src), draw.Src)
	}
	return out
}

func (f *Framebuffer) String() string { return "Framebuffer" }

// Halt implements conn.Resource.
func (f *Framebuffer) Halt() error { return nil }

// FillRectGG demonstrates compositing with github.com/fogleman/gg for
// consumers that want anti-aliased overlays (e.g. a cursor caret) on
// top of the crisp character cells drawn by DrawChar.
func (f *Framebuffer) FillRectGG(x, y, w, h int, colr uint16) {
	c := rgb565ToNRGBA(colr)
	dc := gg.NewContextForRGBA(f.img)
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.Fill()
}

var (
	_ term.Adapter          = (*Framebuffer)(nil)
	_ perphdisplay.Drawer   = (*Framebuffer)(nil)
	_ conn.Resource         = (*Framebuffer)(nil)
)
