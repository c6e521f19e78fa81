// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wsi

// Window is the window-system surface a swap chain presents into.
type Window interface {
	// Handle returns the native window handle (HWND, NSView*, X11 Window,
	// wl_surface*). Zero for headless surfaces.
	Handle() uintptr

	// ClientSize returns the client area in physical pixels.
	ClientSize() (width, height int)

	// IsTopLevel reports whether the surface is a top-level window.
	// Child surfaces cannot own a fullscreen swap chain.
	IsTopLevel() bool

	// IsMinimized reports whether the window is minimized (iconic).
	IsMinimized() bool

	// Visible reports whether the window is shown.
	Visible() bool

	// Show makes the window visible.
	Show()
}

// Resizer is implemented by windows whose client area can be resized
// programmatically. Swap chains use it to restore the windowed size after
// leaving fullscreen.
type Resizer interface {
	SetClientSize(width, height int) error
}

// Fullscreener is implemented by windows that switch to fullscreen through
// the window system itself (borderless fullscreen) rather than through an
// exclusive display mode.
type Fullscreener interface {
	SetFullscreen(fullscreen bool)
	IsFullscreen() bool
}

// NativeHandles is implemented by windows that can provide the platform
// handle pair needed to create a GPU surface.
type NativeHandles interface {
	// NativeHandles returns the display connection (HINSTANCE, Display*,
	// wl_display*) and the window handle.
	NativeHandles() (display, window uintptr)
}

// OutputLocator is implemented by windows that know which display output
// they currently occupy.
type OutputLocator interface {
	ContainingOutput() (Output, error)
}
