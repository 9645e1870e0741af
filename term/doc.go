// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package term implements the core of a VT100/ANSI X3.64 terminal
// emulator: a byte-stream escape-sequence parser, a character-grid
// terminal state model, and a hardware-assisted scroll-region engine.
//
// The package owns no I/O. It drives an Adapter supplied by the caller,
// which is expected to be backed by a real display device (see the
// sibling display package for implementations) or a test double.
package term
