// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/wsi"
)

// ClearFlags selects the aspects a depth-stencil clear writes.
type ClearFlags uint8

const (
	// ClearDepth writes the depth value.
	ClearDepth ClearFlags = 1 << iota

	// ClearStencil writes the stencil value.
	ClearStencil
)

// PresentFlags modify a single Present call.
type PresentFlags uint32

const (
	// PresentTest checks whether a frame could be presented without
	// presenting it. Used to poll occlusion.
	PresentTest PresentFlags = 1 << iota

	// PresentDoNotWait returns instead of blocking when the queue is full.
	PresentDoNotWait
)

// SwapChainDescriptor describes a native swap chain.
type SwapChainDescriptor struct {
	Label       string
	Width       int
	Height      int
	Format      gputypes.TextureFormat
	BufferCount int

	// FlipModel selects flip presentation (buffers rotate) instead of a
	// blit from a single buffer.
	FlipModel bool

	// Stretch scales the back buffer to the window client area when their
	// sizes differ.
	Stretch bool
}

// Device is the graphics device contract.
//
// The device owns the native device/context. Implementations are expected
// to be externally synchronized: callers do not use one Device from several
// goroutines at once unless the backend documents otherwise.
type Device interface {
	// Name returns the backend name the device was opened with.
	Name() string

	// CreateTexture allocates a texture.
	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// CreateView creates a native view over tex. desc is fully resolved and
	// validated by the caller.
	CreateView(tex Texture, desc *ViewDescriptor) (NativeView, error)

	// ClearRenderTarget fills the view with c. An empty rects slice clears
	// the whole view.
	ClearRenderTarget(v NativeView, c gputypes.Color, rects []image.Rectangle) error

	// ClearDepthStencil writes the aspects selected by flags. An empty rects
	// slice clears the whole view.
	ClearDepthStencil(v NativeView, flags ClearFlags, depth float32, stencil uint8, rects []image.Rectangle) error

	// IsDisplayFormat reports whether f can back a swap chain on this device.
	IsDisplayFormat(f gputypes.TextureFormat) bool

	// CreateSwapChain creates a native swap chain bound to win.
	CreateSwapChain(win wsi.Window, desc *SwapChainDescriptor) (SwapChain, error)

	// Tracker returns the registry of live views created on this device.
	Tracker() *Tracker
}

// SwapChain is a native presentation handle.
//
// Methods report native results as the sentinel errors of this package.
type SwapChain interface {
	// BufferCount returns the number of native back buffers.
	BufferCount() int

	// BackBuffer returns back buffer index. The texture is owned by the
	// swap chain; releasing it releases only the caller's reference.
	BackBuffer(index int) (Texture, error)

	// ResizeBuffers reallocates the back buffers. All references obtained
	// from BackBuffer must be released first.
	ResizeBuffers(count, width, height int, format gputypes.TextureFormat) error

	// ResizeTarget resizes the output target: the window client area when
	// windowed, the display mode when fullscreen.
	ResizeTarget(mode wsi.DisplayMode) error

	// SetFullscreen switches between fullscreen on output and windowed.
	// output is ignored when leaving fullscreen and may be nil to use the
	// containing output.
	SetFullscreen(fullscreen bool, output wsi.Output) error

	// SetAutoModeSwitch enables or disables the window system's own
	// fullscreen toggling (Alt+Enter and friends).
	SetAutoModeSwitch(enabled bool) error

	// ContainingOutput returns the output that contains most of the window.
	ContainingOutput() (wsi.Output, error)

	// Present shows the current back buffer after interval vertical blanks.
	Present(interval int, flags PresentFlags) error

	// Release destroys the native swap chain. It must not be fullscreen.
	Release()
}
