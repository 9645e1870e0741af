// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package display

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"time"

	"github.com/periph-devices/vt100term/term"
)

const (
	mjpegBoundary          = "vt100termframe"
	mjpegJPEGQuality       = 90
	mjpegMinFrameInterval  = time.Second / 15
	mjpegKeepAliveInterval = time.Minute
)

// MJPEG streams the terminal grid to any number of HTTP clients as
// Motion JPEG, so the emulator can be watched from a browser instead
// of attached hardware. It wraps a Framebuffer for the actual pixel
// storage and broadcasts a refresh signal to connected clients on
// every DrawChar, FillRect and SetScrollStart call.
type MJPEG struct {
	fb *Framebuffer

	mu      sync.Mutex
	clients map[*mjpegClient]struct{}
}

// mjpegClient mirrors the refresh/terminate channel pair used by one
// connected streaming request.
type mjpegClient struct {
	refresh   chan struct{}
	terminate chan struct{}
}

// NewMJPEG allocates an MJPEG sink sized cols x rows.
func NewMJPEG(cols, rows int) *MJPEG {
	return &MJPEG{
		fb:      NewFramebuffer(cols, rows),
		clients: map[*mjpegClient]struct{}{},
	}
}

func (m *MJPEG) ScreenWidth() int  { return m.fb.ScreenWidth() }
func (m *MJPEG) ScreenHeight() int { return m.fb.ScreenHeight() }

func (m *MJPEG) DrawChar(x, y int, ch byte) error {
	if err := m.fb.DrawChar(x, y, ch); err != nil {
		return err
	}
	m.broadcast()
	return nil
}

func (m *MJPEG) FillRect(x, y, w, h int, color uint16) error {
	if err := m.fb.FillRect(x, y, w, h, color); err != nil {
		return err
	}
	m.broadcast()
	return nil
}

func (m *MJPEG) SetFG(color uint16) error { return m.fb.SetFG(color) }
func (m *MJPEG) SetBG(color uint16) error { return m.fb.SetBG(color) }

func (m *MJPEG) SetScrollMargins(topPx, bottomPx int) error {
	return m.fb.SetScrollMargins(topPx, bottomPx)
}

func (m *MJPEG) SetScrollStart(yPx int) error {
	if err := m.fb.SetScrollStart(yPx); err != nil {
		return err
	}
	m.broadcast()
	return nil
}

func (m *MJPEG) broadcast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

func (m *MJPEG) encodeFrame() ([]byte, error) {
	m.mu.Lock()
	img := m.fb.RenderRotated()
	m.mu.Unlock()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: mjpegJPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ServeHTTP streams a multipart/x-mixed-replace sequence of JPEG
// frames: one immediately on connect, then one per refresh, rate
// limited to mjpegMinFrameInterval and kept alive at least every
// mjpegKeepAliveInterval even if nothing changed.
func (m *MJPEG) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", mime.FormatMediaType(
		"multipart/x-mixed-replace", map[string]string{"boundary": mjpegBoundary}))

	mw := multipart.NewWriter(w)
	_ = mw.SetBoundary(mjpegBoundary)

	c := &mjpegClient{refresh: make(chan struct{}, 1), terminate: make(chan struct{}, 1)}
	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.clients, c)
		m.mu.Unlock()
	}()

	flusher, _ := w.(http.Flusher)
	ticker := time.NewTicker(mjpegKeepAliveInterval)
	defer ticker.Stop()

	last := time.Time{}
	for {
		frame, err := m.encodeFrame()
		if err != nil {
			return
		}
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"image/jpeg"},
		})
		if err != nil {
			return
		}
		if _, err := part.Write(frame); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		last = time.Now()

		select {
		case <-c.refresh:
			if wait := mjpegMinFrameInterval - time.Since(last); wait > 0 {
				time.Sleep(wait)
			}
		case <-ticker.C:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (m *MJPEG) String() string { return fmt.Sprintf("MJPEG{%dx%d}", m.ScreenWidth(), m.ScreenHeight()) }

// Halt implements conn.Resource: it disconnects every streaming client.
func (m *MJPEG) Halt() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

var (
	_ term.Adapter  = (*MJPEG)(nil)
	_ http.Handler  = (*MJPEG)(nil)
)
