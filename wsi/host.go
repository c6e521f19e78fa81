// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wsi

import (
	"math"
	"sync"

	"github.com/gogpu/gpucontext"
)

// HostConfig describes the native side of a window owned by a gpucontext
// host. All fields are optional.
type HostConfig struct {
	// Display is the platform display connection passed to GPU surface
	// creation.
	Display uintptr

	// Handle is the native window handle.
	Handle uintptr

	// Child marks the window as a child surface embedded in another window.
	Child bool

	// Output is the display the window lives on. When nil, ContainingOutput
	// fails.
	Output Output
}

// HostWindow adapts a window owned by a gpucontext host (gogpu.App, a UI
// toolkit) to [Window] and [Signals].
//
// Sizes reported by the host are logical points; HostWindow converts them to
// physical pixels with the host's scale factor. A zero size is treated as a
// minimized window. Focus changes map to activation signals, and host resize
// notifications are delivered as [ResizeMaximize], [ResizeRestore] or
// [ResizeProgrammatic] depending on the chrome's maximized state.
//
// gpucontext hosts do not bracket interactive resizes, so HostWindow never
// emits resize-begin or resize-end on its own; hosts that do know about drag
// loops can call EmitResizeBegin/EmitResizeEnd directly.
type HostWindow struct {
	Dispatcher

	provider gpucontext.WindowProvider
	chrome   gpucontext.WindowChrome
	cfg      HostConfig

	mu        sync.Mutex
	maximized bool
}

// Ensure HostWindow implements the window contracts.
var (
	_ Window        = (*HostWindow)(nil)
	_ Signals       = (*HostWindow)(nil)
	_ Fullscreener  = (*HostWindow)(nil)
	_ NativeHandles = (*HostWindow)(nil)
	_ OutputLocator = (*HostWindow)(nil)
)

// NewHostWindow wraps provider. events and chrome may be nil; without
// events no signals are emitted, without chrome fullscreen requests are
// ignored.
func NewHostWindow(provider gpucontext.WindowProvider, events gpucontext.EventSource, chrome gpucontext.WindowChrome, cfg HostConfig) *HostWindow {
	if chrome == nil {
		chrome = gpucontext.NullWindowChrome{}
	}
	w := &HostWindow{
		provider:  provider,
		chrome:    chrome,
		cfg:       cfg,
		maximized: chrome.IsMaximized(),
	}
	if events != nil {
		events.OnResize(w.hostResized)
		events.OnFocus(w.hostFocused)
	}
	return w
}

func (w *HostWindow) hostResized(width, height int) {
	maximized := w.chrome.IsMaximized()

	w.mu.Lock()
	was := w.maximized
	w.maximized = maximized
	w.mu.Unlock()

	reason := ResizeProgrammatic
	switch {
	case maximized && !was:
		reason = ResizeMaximize
	case !maximized && was:
		reason = ResizeRestore
	}
	pw, ph := w.toPixels(width, height)
	w.EmitResize(reason, pw, ph)
}

func (w *HostWindow) hostFocused(focused bool) {
	if focused {
		w.EmitActivated()
		return
	}
	w.EmitDeactivated()
}

func (w *HostWindow) toPixels(width, height int) (int, int) {
	scale := w.provider.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}

// Handle returns the configured native window handle.
func (w *HostWindow) Handle() uintptr { return w.cfg.Handle }

// NativeHandles returns the configured display and window handles.
func (w *HostWindow) NativeHandles() (display, window uintptr) {
	return w.cfg.Display, w.cfg.Handle
}

// ClientSize returns the host's window size in physical pixels.
func (w *HostWindow) ClientSize() (width, height int) {
	return w.toPixels(w.provider.Size())
}

// IsTopLevel reports whether the window was not configured as a child.
func (w *HostWindow) IsTopLevel() bool { return !w.cfg.Child }

// IsMinimized reports a zero-sized client area.
func (w *HostWindow) IsMinimized() bool {
	width, height := w.provider.Size()
	return width <= 0 || height <= 0
}

// Visible always reports true; gpucontext hosts own visibility.
func (w *HostWindow) Visible() bool { return true }

// Show asks the host to redraw, which makes a freshly created window appear.
func (w *HostWindow) Show() { w.provider.RequestRedraw() }

// SetFullscreen forwards to the host's window chrome.
func (w *HostWindow) SetFullscreen(fullscreen bool) { w.chrome.SetFullscreen(fullscreen) }

// IsFullscreen reports the host's fullscreen state.
func (w *HostWindow) IsFullscreen() bool { return w.chrome.IsFullscreen() }

// ContainingOutput returns the configured output.
func (w *HostWindow) ContainingOutput() (Output, error) {
	if w.cfg.Output == nil {
		return nil, ErrNoOutput
	}
	return w.cfg.Output, nil
}
