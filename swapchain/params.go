// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Mode is the presentation mode of a surface.
type Mode int

const (
	// Windowed presents into the window client area.
	Windowed Mode = iota

	// FullScreen owns a display output.
	FullScreen
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case Windowed:
		return "Windowed"
	case FullScreen:
		return "FullScreen"
	default:
		return "Unknown"
	}
}

// Parameters are the swap chain creation parameters.
type Parameters struct {
	// Width and Height are the back buffer size in pixels. Both must be at
	// least 1.
	Width  int
	Height int

	// Format is the back buffer format. It must be display-capable.
	Format gputypes.TextureFormat

	// Stretch scales the back buffer to the client area when they differ.
	Stretch bool

	// FlipModel selects flip presentation with three rotating buffers
	// instead of a single blit buffer.
	FlipModel bool

	// FullScreen enters fullscreen on the window's output right after
	// creation.
	FullScreen bool

	// PresentInterval is the sync interval PresentDefault uses.
	PresentInterval int

	// Name labels the surface in errors and logs.
	Name string
}

// DefaultParameters returns windowed flip-model parameters with stretching
// and vsync enabled.
func DefaultParameters(width, height int, format gputypes.TextureFormat) Parameters {
	return Parameters{
		Width:           width,
		Height:          height,
		Format:          format,
		Stretch:         true,
		FlipModel:       true,
		PresentInterval: 1,
		Name:            "swap chain",
	}
}

// Option configures a Surface.
type Option func(*options)

type options struct {
	exitOnFocusLoss bool
	attach          bool
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{attach: true}
}

// WithExitFullScreenOnFocusLoss leaves fullscreen when the window loses
// focus and re-enters it with the same output and mode on focus gain.
func WithExitFullScreenOnFocusLoss(enabled bool) Option {
	return func(o *options) {
		o.exitOnFocusLoss = enabled
	}
}

// WithoutSignals prevents New from attaching a Coordinator to the window.
// The caller drives the surface itself or attaches a Coordinator later.
func WithoutSignals() Option {
	return func(o *options) {
		o.attach = false
	}
}

// WithLogger sets a logger for this surface instead of present.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
