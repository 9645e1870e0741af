// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package display provides term.Adapter implementations: a software
// framebuffer, hardware backends built on periph.io/x/devices/v3
// drivers, and console/network sinks useful for running the emulator
// without any attached hardware.
package display
