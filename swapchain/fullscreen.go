// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
	"github.com/gogpu/present/wsi"
)

// EnterFullScreen switches the surface to exclusive fullscreen on output
// using the display mode closest to mode. A nil output means the output
// containing the window.
//
// Asking for the session already in effect does nothing. If another mode
// change races this one, the request is dropped: the surface stays as it
// was and nil is returned.
func (s *Surface) EnterFullScreen(mode wsi.DisplayMode, output wsi.Output) error {
	if s.IsDisposed() {
		return ErrDisposed
	}
	if !s.win.IsTopLevel() {
		return fmt.Errorf("%w: %q", ErrNotTopLevel, s.params.Name)
	}
	if output == nil {
		out, err := s.native.ContainingOutput()
		if err != nil {
			return device.Unrecoverable(s.params.Name, "ContainingOutput", err)
		}
		output = out
	}
	if mode.Format == gputypes.TextureFormatUndefined {
		mode.Format = s.format
	}
	if s.mode == FullScreen && sameOutput(s.fsOutput, output) && (mode == s.fsRequest || mode == s.fsMode) {
		return nil
	}

	s.modeTransitioning = true
	defer func() { s.modeTransitioning = false }()

	closest, err := output.ClosestMode(mode)
	if err != nil {
		return fmt.Errorf("swapchain %q: %s on %s: %w", s.params.Name, mode, output.Name(), err)
	}

	prevWidth, prevHeight, prevFormat := s.width, s.height, s.format
	prevTarget := wsi.DisplayMode{Width: prevWidth, Height: prevHeight, Format: prevFormat}
	if s.mode == FullScreen {
		prevTarget = s.fsMode
	}
	rollback := func() {
		s.width, s.height, s.format = prevWidth, prevHeight, prevFormat
	}
	if s.mode == Windowed {
		s.windowedWidth, s.windowedHeight = s.width, s.height
	}
	s.width, s.height, s.format = closest.Width, closest.Height, closest.Format
	if s.format == gputypes.TextureFormatUndefined {
		s.format = prevFormat
	}

	if err := s.native.ResizeTarget(closest); err != nil && device.Classify(err) != device.ClassBenign {
		rollback()
		return s.dropOrFail("ResizeTarget", err)
	}
	if err := s.native.SetFullscreen(true, output); err != nil && device.Classify(err) != device.ClassBenign {
		rollback()
		// The target already moved to closest.
		if rerr := s.native.ResizeTarget(prevTarget); rerr != nil {
			s.logger().Warn("swapchain: target restore failed", "name", s.params.Name, "err", rerr)
		}
		return s.dropOrFail("SetFullscreen", err)
	}

	// Recorded before the refresh reset so Dispose leaves fullscreen.
	s.mode = FullScreen
	s.fsOutput = output
	s.fsMode = closest
	s.fsRequest = mode
	s.logger().Info("swapchain: entered fullscreen",
		"name", s.params.Name, "output", output.Name(), "mode", closest.String())

	// A zero refresh rate after the switch avoids a second mode change
	// when the driver picked a slightly different rate.
	if err := s.native.ResizeTarget(closest.WithoutRefreshRate()); err != nil {
		if !device.IsModeRace(err) && device.Classify(err) != device.ClassBenign {
			return device.Unrecoverable(s.params.Name, "ResizeTarget", err)
		}
		s.logger().Debug("swapchain: refresh rate reset skipped", "name", s.params.Name, "err", err)
	}

	return s.ResizeBackBuffers(s.width, s.height)
}

// ExitFullScreen returns to windowed mode and restores the window size the
// surface had before entering fullscreen. It does nothing when windowed.
func (s *Surface) ExitFullScreen() error {
	if s.IsDisposed() {
		return ErrDisposed
	}
	if s.mode == Windowed {
		return nil
	}

	s.modeTransitioning = true
	defer func() { s.modeTransitioning = false }()

	if err := s.native.SetFullscreen(false, nil); err != nil && device.Classify(err) != device.ClassBenign {
		if device.IsModeRace(err) {
			s.logger().Warn("swapchain: windowed request dropped", "name", s.params.Name, "err", err)
			return nil
		}
		return device.Unrecoverable(s.params.Name, "SetFullscreen", err)
	}

	s.mode = Windowed
	s.clearFullScreenState()
	s.logger().Info("swapchain: left fullscreen",
		"name", s.params.Name, "width", s.windowedWidth, "height", s.windowedHeight,
		"format", format.Name(s.format))

	target := wsi.DisplayMode{Width: s.windowedWidth, Height: s.windowedHeight, Format: s.format}
	if err := s.native.ResizeTarget(target); err != nil && device.Classify(err) != device.ClassBenign {
		if !device.IsModeRace(err) {
			return device.Unrecoverable(s.params.Name, "ResizeTarget", err)
		}
		s.logger().Warn("swapchain: window restore dropped", "name", s.params.Name, "err", err)
	}

	return s.ResizeBackBuffers(s.windowedWidth, s.windowedHeight)
}

// dropOrFail turns a failed fullscreen step into the caller's result: a
// mode race drops the request, anything else is unrecoverable.
func (s *Surface) dropOrFail(op string, err error) error {
	if device.IsModeRace(err) {
		s.logger().Warn("swapchain: fullscreen request dropped", "name", s.params.Name, "op", op, "err", err)
		return nil
	}
	return device.Unrecoverable(s.params.Name, op, err)
}

// sameOutput reports whether a and b name the same display. Window
// systems may hand out a new Output value on every lookup.
func sameOutput(a, b wsi.Output) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || a.Name() == b.Name()
}
