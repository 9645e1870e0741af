// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

type errBackend string

func (e errBackend) Error() string {
	return fmt.Sprintf("unknown backend %q", string(e))
}

// httpServer runs an http.Handler in the background for the lifetime
// of the process and shuts it down cleanly on stop.
type httpServer struct {
	addr    string
	handler http.Handler

	srv *http.Server
}

func (s *httpServer) start() {
	s.srv = &http.Server{Addr: s.addr, Handler: s.handler}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("vt100demo: mjpeg server: %v", err)
		}
	}()
	log.Printf("vt100demo: mjpeg stream on http://%s", s.addr)
}

func (s *httpServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Printf("vt100demo: mjpeg server shutdown: %v", err)
	}
}
