// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device defines the graphics device contract that views and swap
// chains are built on.
//
// A backend implements [Device] (textures, views, clears, swap chains) and
// [SwapChain] (the native presentation handle). Backends register
// themselves with [Register] from an init function and are opened by name
// or by priority:
//
//	import _ "github.com/gogpu/present/backend/software"
//
//	dev, err := device.Open("software")
//	// or the best available backend:
//	dev, err := device.OpenBest()
//
// Native results are reported as the sentinel errors in this package so
// callers can tell transient presentation conditions ([IsTransient]) from
// fatal driver failures ([ErrUnrecoverable]).
package device
