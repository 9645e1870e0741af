// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package serial

import (
	"context"
	"fmt"
	"io"
)

// ReaderSource adapts an io.Reader (a real serial port, a pipe, os.Stdin)
// into a blocking, byte-at-a-time Next source, by running a
// background goroutine that reads and forwards bytes to a channel.
type ReaderSource struct {
	ch     chan byte
	errc   chan error
	cancel context.CancelFunc
}

// NewReaderSource starts a goroutine reading from r one buffer at a
// time, forwarding every byte on an internal channel until r returns
// an error or ctx is canceled.
func NewReaderSource(ctx context.Context, r io.Reader) *ReaderSource {
	ctx, cancel := context.WithCancel(ctx)
	s := &ReaderSource{
		ch:     make(chan byte, 256),
		errc:   make(chan error, 1),
		cancel: cancel,
	}
	go s.pump(ctx, r)
	return s
}

func (s *ReaderSource) pump(ctx context.Context, r io.Reader) {
	defer close(s.ch)
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case s.ch <- buf[i]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				s.errc <- fmt.Errorf("serial: reader source: %w", err)
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Next blocks until a byte is available, the reader hit EOF/an error,
// or ctx is canceled. ok is false once the source is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (b byte, ok bool) {
	select {
	case b, ok = <-s.ch:
		return b, ok
	case <-ctx.Done():
		return 0, false
	}
}

// Err returns the error that stopped the underlying reader, if any.
func (s *ReaderSource) Err() error {
	select {
	case err := <-s.errc:
		return err
	default:
		return nil
	}
}

// Close cancels the background goroutine's context; the goroutine
// exits once a pending Read on the underlying reader returns.
func (s *ReaderSource) Close() error {
	s.cancel()
	return nil
}
