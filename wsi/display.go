// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wsi

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Errors returned by outputs.
var (
	// ErrNoDisplayModes is returned when an output reports no modes at all.
	ErrNoDisplayModes = errors.New("wsi: output has no display modes")

	// ErrModeNotFound is returned when no mode matches the requested format.
	ErrModeNotFound = errors.New("wsi: no matching display mode")

	// ErrNoOutput is returned when a window cannot name its display output.
	ErrNoOutput = errors.New("wsi: window has no containing output")
)

// Rational is a refresh rate expressed as a fraction in hertz.
// A zero denominator means the rate is unspecified.
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

// Hz returns the rate as a floating point value, or 0 when unspecified.
func (r Rational) Hz() float64 {
	if r.Denominator == 0 {
		return 0
	}
	return float64(r.Numerator) / float64(r.Denominator)
}

// IsZero reports whether the rate is unspecified.
func (r Rational) IsZero() bool {
	return r.Numerator == 0 || r.Denominator == 0
}

// DisplayMode describes one resolution/format/refresh combination of a
// display output. The zero value means "no preference" when used as a
// request.
type DisplayMode struct {
	Width       int
	Height      int
	Format      gputypes.TextureFormat
	RefreshRate Rational
}

// WithoutRefreshRate returns m with the refresh rate cleared.
func (m DisplayMode) WithoutRefreshRate() DisplayMode {
	m.RefreshRate = Rational{}
	return m
}

// String returns a compact description such as "1920x1080@60Hz BGRA8Unorm".
func (m DisplayMode) String() string {
	return fmt.Sprintf("%dx%d@%gHz %s", m.Width, m.Height, m.RefreshRate.Hz(), m.Format)
}

// Output is a display output (monitor) a fullscreen swap chain can occupy.
type Output interface {
	// Name returns the display name. Outputs with equal names are the
	// same display.
	Name() string

	// ClosestMode returns the supported mode nearest to want.
	ClosestMode(want DisplayMode) (DisplayMode, error)
}

// StaticOutput is an Output with a fixed mode list.
// Backends without a mode enumeration API use it, and so do tests.
type StaticOutput struct {
	name  string
	modes []DisplayMode
}

// NewStaticOutput creates an output that supports exactly modes.
func NewStaticOutput(name string, modes ...DisplayMode) *StaticOutput {
	return &StaticOutput{name: name, modes: append([]DisplayMode(nil), modes...)}
}

// Ensure StaticOutput implements Output.
var _ Output = (*StaticOutput)(nil)

// Name returns the display name.
func (o *StaticOutput) Name() string { return o.name }

// Modes returns a copy of the supported modes.
func (o *StaticOutput) Modes() []DisplayMode {
	return append([]DisplayMode(nil), o.modes...)
}

// ClosestMode picks the supported mode nearest to want.
//
// Zero fields in want match anything. Among modes with the requested format
// the one with the smallest resolution distance wins; ties are broken by the
// refresh rate nearest to the requested one, then by the highest rate.
func (o *StaticOutput) ClosestMode(want DisplayMode) (DisplayMode, error) {
	if len(o.modes) == 0 {
		return DisplayMode{}, fmt.Errorf("%w: %s", ErrNoDisplayModes, o.name)
	}

	best := -1
	var bestDist int
	var bestRate float64
	for i, m := range o.modes {
		if want.Format != gputypes.TextureFormatUndefined && m.Format != want.Format {
			continue
		}
		dist := 0
		if want.Width > 0 {
			dist += abs(m.Width - want.Width)
		}
		if want.Height > 0 {
			dist += abs(m.Height - want.Height)
		}
		rate := m.RefreshRate.Hz()
		if best < 0 || dist < bestDist || (dist == bestDist && betterRate(rate, bestRate, want.RefreshRate)) {
			best, bestDist, bestRate = i, dist, rate
		}
	}
	if best < 0 {
		return DisplayMode{}, fmt.Errorf("%w: %s on %s", ErrModeNotFound, want, o.name)
	}
	return o.modes[best], nil
}

func betterRate(candidate, current float64, want Rational) bool {
	if want.IsZero() {
		return candidate > current
	}
	target := want.Hz()
	dc, dcur := absf(candidate-target), absf(current-target)
	if dc != dcur {
		return dc < dcur
	}
	return candidate > current
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
