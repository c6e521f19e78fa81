// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import "errors"

// Validation and state errors.
var (
	// ErrNilDevice is returned when New is called without a device.
	ErrNilDevice = errors.New("swapchain: nil device")

	// ErrNilWindow is returned when New is called without a window.
	ErrNilWindow = errors.New("swapchain: nil window")

	// ErrInvalidDimensions is returned when width or height is less than 1.
	ErrInvalidDimensions = errors.New("swapchain: invalid dimensions")

	// ErrFormatNotDisplayable is returned when the back buffer format cannot
	// be presented.
	ErrFormatNotDisplayable = errors.New("swapchain: format not displayable")

	// ErrNotTopLevel is returned when fullscreen is requested for a child
	// window.
	ErrNotTopLevel = errors.New("swapchain: fullscreen requires a top-level window")

	// ErrDisposed is returned by operations on a disposed surface.
	ErrDisposed = errors.New("swapchain: surface disposed")
)
