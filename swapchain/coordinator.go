// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"github.com/gogpu/present/wsi"
)

// Coordinator turns window signals into surface operations.
//
// Drag-resizes are coalesced: between resize-begin and resize-end only the
// final client size is applied. Maximize, restore and programmatic resizes
// apply immediately. With the focus-loss policy enabled, a fullscreen
// surface leaves fullscreen on deactivation and re-enters the same output
// and mode on the next activation.
//
// Handlers run on the window's goroutine and log operation errors, since
// signals have no way to return them.
type Coordinator struct {
	s               *Surface
	exitOnFocusLoss bool

	pending bool // drag in progress, resize deferred to resize-end

	remembered       bool
	rememberedOutput wsi.Output
	rememberedMode   wsi.DisplayMode

	unsubscribe []func()
}

// NewCoordinator returns a coordinator for s. It is not attached to any
// window; call Attach or drive the Handle methods directly.
func NewCoordinator(s *Surface, exitOnFocusLoss bool) *Coordinator {
	return &Coordinator{s: s, exitOnFocusLoss: exitOnFocusLoss}
}

// Attach subscribes to sig. Attaching again first detaches.
func (c *Coordinator) Attach(sig wsi.Signals) {
	c.Detach()
	c.unsubscribe = []func(){
		sig.OnResizeBegin(c.HandleResizeBegin),
		sig.OnResizeEnd(c.HandleResizeEnd),
		sig.OnResize(c.HandleResize),
		sig.OnActivated(c.HandleActivated),
		sig.OnDeactivated(c.HandleDeactivated),
	}
}

// Detach removes every subscription.
func (c *Coordinator) Detach() {
	for _, fn := range c.unsubscribe {
		fn()
	}
	c.unsubscribe = nil
}

// Attached reports whether the coordinator is subscribed to a window.
func (c *Coordinator) Attached() bool { return len(c.unsubscribe) > 0 }

// Pending reports whether a drag-resize is being coalesced.
func (c *Coordinator) Pending() bool { return c.pending }

// Remembered returns the fullscreen session saved on focus loss.
func (c *Coordinator) Remembered() (output wsi.Output, mode wsi.DisplayMode, ok bool) {
	return c.rememberedOutput, c.rememberedMode, c.remembered
}

// HandleResizeBegin starts coalescing drag-resizes.
func (c *Coordinator) HandleResizeBegin() {
	c.pending = true
}

// HandleResizeEnd applies the final client size of a drag.
func (c *Coordinator) HandleResizeEnd() {
	if !c.pending {
		return
	}
	c.pending = false
	w, h := c.s.win.ClientSize()
	c.resize(w, h)
}

// HandleResize applies a resize unless it is part of a drag in progress.
func (c *Coordinator) HandleResize(reason wsi.ResizeReason, width, height int) {
	if reason == wsi.ResizeDrag && c.pending {
		return
	}
	c.resize(width, height)
}

func (c *Coordinator) resize(width, height int) {
	s := c.s
	switch {
	case s.IsDisposed(), s.modeTransitioning, s.manualResize:
		return
	case s.win.IsMinimized(), width < 1, height < 1:
		return
	case width == s.width && height == s.height:
		return
	}
	if err := s.ResizeBackBuffers(width, height); err != nil {
		s.logger().Error("swapchain: resize on window signal failed",
			"name", s.params.Name, "width", width, "height", height, "err", err)
	}
}

// HandleDeactivated leaves fullscreen when the focus-loss policy is on.
func (c *Coordinator) HandleDeactivated() {
	s := c.s
	if !c.exitOnFocusLoss || s.IsDisposed() || s.mode != FullScreen {
		return
	}
	c.remembered = true
	c.rememberedOutput = s.fsOutput
	c.rememberedMode = s.fsRequest
	if err := s.ExitFullScreen(); err != nil {
		s.logger().Error("swapchain: leaving fullscreen on focus loss failed", "name", s.params.Name, "err", err)
	}
}

// HandleActivated re-enters the fullscreen session left on focus loss.
func (c *Coordinator) HandleActivated() {
	s := c.s
	if !c.exitOnFocusLoss || !c.remembered {
		return
	}
	output, mode := c.rememberedOutput, c.rememberedMode
	c.remembered = false
	c.rememberedOutput = nil
	c.rememberedMode = wsi.DisplayMode{}
	if s.IsDisposed() {
		return
	}
	if err := s.EnterFullScreen(mode, output); err != nil {
		s.logger().Error("swapchain: re-entering fullscreen on focus gain failed", "name", s.params.Name, "err", err)
	}
}
