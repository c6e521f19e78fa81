// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/present/wsi"
)

// WindowOptions configure a headless window.
type WindowOptions struct {
	Width  int
	Height int

	// Hidden creates the window invisible.
	Hidden bool

	// Child makes the window a child surface.
	Child bool

	// Output is the display the window reports as containing it.
	Output wsi.Output
}

var windowHandles atomic.Uintptr

// Window is a headless window. It receives presented frames in an
// image.RGBA and lets callers simulate window-system events.
type Window struct {
	wsi.Dispatcher

	handle uintptr
	child  bool
	output wsi.Output

	mu         sync.Mutex
	width      int
	height     int
	visible    bool
	minimized  bool
	occluded   bool
	fullscreen bool
	frame      *image.RGBA
}

// Ensure Window implements the window contracts.
var (
	_ wsi.Window        = (*Window)(nil)
	_ wsi.Signals       = (*Window)(nil)
	_ wsi.Resizer       = (*Window)(nil)
	_ wsi.Fullscreener  = (*Window)(nil)
	_ wsi.OutputLocator = (*Window)(nil)
	_ FrameSink         = (*Window)(nil)
)

// NewWindow creates a headless window.
func NewWindow(opts WindowOptions) *Window {
	return &Window{
		handle:  windowHandles.Add(1),
		child:   opts.Child,
		output:  opts.Output,
		width:   max(opts.Width, 0),
		height:  max(opts.Height, 0),
		visible: !opts.Hidden,
	}
}

// Handle returns a unique fake handle.
func (w *Window) Handle() uintptr { return w.handle }

// ClientSize returns the client area size.
func (w *Window) ClientSize() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// IsTopLevel reports whether the window is not a child surface.
func (w *Window) IsTopLevel() bool { return !w.child }

// IsMinimized reports whether the window is minimized.
func (w *Window) IsMinimized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minimized
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Show makes the window visible.
func (w *Window) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
}

// SetClientSize resizes the client area without emitting signals, the way a
// native resize request completes before the window system reports it.
func (w *Window) SetClientSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("software: invalid client size %dx%d", width, height)
	}
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	return nil
}

// SetFullscreen records the borderless fullscreen state.
func (w *Window) SetFullscreen(fullscreen bool) {
	w.mu.Lock()
	w.fullscreen = fullscreen
	w.mu.Unlock()
}

// IsFullscreen reports the borderless fullscreen state.
func (w *Window) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// ContainingOutput returns the configured output.
func (w *Window) ContainingOutput() (wsi.Output, error) {
	if w.output == nil {
		return nil, errors.New("software: window has no output")
	}
	return w.output, nil
}

// SetOccluded marks the window as covered. Presents fail with
// device.ErrOccluded while it is.
func (w *Window) SetOccluded(occluded bool) {
	w.mu.Lock()
	w.occluded = occluded
	w.mu.Unlock()
}

// Occluded reports whether the window is covered.
func (w *Window) Occluded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occluded
}

// Frame returns the presentation target, reallocated when the client size
// changed since the last call.
func (w *Window) Frame() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.width < 1 || w.height < 1 {
		return nil
	}
	if w.frame == nil || w.frame.Bounds().Dx() != w.width || w.frame.Bounds().Dy() != w.height {
		w.frame = image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	}
	return w.frame
}

// Snapshot returns a copy of the last presented frame, or nil.
func (w *Window) Snapshot() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame == nil {
		return nil
	}
	c := image.NewRGBA(w.frame.Rect)
	copy(c.Pix, w.frame.Pix)
	return c
}

// Resize sets the client size and emits a resize signal with reason.
func (w *Window) Resize(reason wsi.ResizeReason, width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.minimized = false
	w.mu.Unlock()
	w.EmitResize(reason, width, height)
}

// Drag simulates an interactive border drag through the given sizes: a
// resize-begin, one resize per step, then a resize-end.
func (w *Window) Drag(steps [][2]int) {
	w.EmitResizeBegin()
	for _, s := range steps {
		w.mu.Lock()
		w.width, w.height = s[0], s[1]
		w.mu.Unlock()
		w.EmitResize(wsi.ResizeDrag, s[0], s[1])
	}
	w.EmitResizeEnd()
}

// Minimize marks the window minimized and emits a zero-size resize.
func (w *Window) Minimize() {
	w.mu.Lock()
	w.minimized = true
	w.mu.Unlock()
	w.EmitResize(wsi.ResizeProgrammatic, 0, 0)
}

// Restore clears the minimized state and emits a restore resize.
func (w *Window) Restore() {
	w.mu.Lock()
	w.minimized = false
	width, height := w.width, w.height
	w.mu.Unlock()
	w.EmitResize(wsi.ResizeRestore, width, height)
}

// Focus emits an activation or deactivation signal.
func (w *Window) Focus(focused bool) {
	if focused {
		w.EmitActivated()
		return
	}
	w.EmitDeactivated()
}
