// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package serial supplies byte streams to a term.Terminal: a
// goroutine-safe ring buffer fed by an interrupt handler or another
// goroutine, and a thin wrapper that turns any io.Reader into a
// blocking, byte-at-a-time source.
package serial
