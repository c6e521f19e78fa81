// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/backend/software"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/wsi"
)

var hd = wsi.DisplayMode{Width: 1920, Height: 1080, Format: gputypes.TextureFormatBGRA8Unorm}

func TestEnterFullScreen(t *testing.T) {
	f := windowed(t)
	s := f.surf

	if err := s.EnterFullScreen(hd, nil); err != nil {
		t.Fatalf("EnterFullScreen() error = %v", err)
	}
	if s.Mode() != FullScreen {
		t.Fatalf("Mode() = %v, want FullScreen", s.Mode())
	}
	if s.IsModeTransitioning() {
		t.Error("IsModeTransitioning() = true after EnterFullScreen")
	}
	if s.Width() != 1920 || s.Height() != 1080 {
		t.Errorf("size = %dx%d, want 1920x1080", s.Width(), s.Height())
	}
	if s.BufferCount() != fullScreenBufferCount {
		t.Errorf("BufferCount() = %d, want %d", s.BufferCount(), fullScreenBufferCount)
	}
	if !f.native.IsFullscreen() || !f.win.IsFullscreen() {
		t.Error("native or window not fullscreen")
	}

	out, mode, ok := s.FullScreenState()
	if !ok || out != f.out {
		t.Errorf("FullScreenState() = %v, %v", out, ok)
	}
	want := hd
	want.RefreshRate = wsi.Rational{Numerator: 60, Denominator: 1}
	if mode != want {
		t.Errorf("fullscreen mode = %s, want %s", mode, want)
	}

	targets := f.native.Targets()
	if len(targets) != 2 {
		t.Fatalf("ResizeTarget calls = %v, want 2", targets)
	}
	if targets[0] != want {
		t.Errorf("first target = %s, want %s", targets[0], want)
	}
	if !targets[1].RefreshRate.IsZero() || targets[1].Width != 1920 {
		t.Errorf("second target = %s, want 1920x1080 without refresh rate", targets[1])
	}
	if w, h := s.WindowedSize(); w != 800 || h != 600 {
		t.Errorf("WindowedSize() = %dx%d, want 800x600", w, h)
	}
}

func TestEnterFullScreenClosestMode(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(wsi.DisplayMode{Width: 1900, Height: 1000}, f.out); err != nil {
		t.Fatal(err)
	}
	if f.surf.Width() != 1920 || f.surf.Height() != 1080 {
		t.Errorf("size = %dx%d, want closest 1920x1080", f.surf.Width(), f.surf.Height())
	}
	if f.surf.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want the surface format", f.surf.Format())
	}
}

func TestEnterFullScreenIdempotent(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}
	calls := f.native.TotalCalls()
	bb := f.surf.BackBuffer()

	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatalf("second EnterFullScreen() error = %v", err)
	}
	if err := f.surf.EnterFullScreen(hd, f.out); err != nil {
		t.Fatalf("EnterFullScreen() with explicit output error = %v", err)
	}
	_, mode, _ := f.surf.FullScreenState()
	if err := f.surf.EnterFullScreen(mode, f.out); err != nil {
		t.Fatalf("EnterFullScreen() with resolved mode error = %v", err)
	}

	if got := f.native.TotalCalls(); got != calls {
		t.Errorf("native calls = %d, want %d", got, calls)
	}
	if f.surf.BackBuffer() != bb {
		t.Error("back buffer rebuilt by a repeated request")
	}
}

// lookupWindow hands out a new Output value on every lookup, the way
// window-system adapters such as sdlwin do.
type lookupWindow struct {
	*software.Window
	lookups int
}

func (w *lookupWindow) ContainingOutput() (wsi.Output, error) {
	w.lookups++
	return software.DefaultOutput(), nil
}

func TestEnterFullScreenIdempotentFreshOutputs(t *testing.T) {
	win := &lookupWindow{Window: software.NewWindow(software.WindowOptions{Width: 800, Height: 600})}
	s, err := New(software.New(software.Options{}), win, DefaultParameters(800, 600, gputypes.TextureFormatBGRA8Unorm))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Dispose)
	native := s.Native().(*software.SwapChain)

	if err := s.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}
	calls := native.TotalCalls()
	bb := s.BackBuffer()

	if err := s.EnterFullScreen(hd, nil); err != nil {
		t.Fatalf("second EnterFullScreen() error = %v", err)
	}
	if err := s.EnterFullScreen(hd, software.DefaultOutput()); err != nil {
		t.Fatalf("EnterFullScreen() with an equal output error = %v", err)
	}
	if win.lookups < 2 {
		t.Fatalf("output lookups = %d, want a new output per call", win.lookups)
	}
	if got := native.TotalCalls(); got != calls {
		t.Errorf("native calls = %d, want %d", got, calls)
	}
	if s.BackBuffer() != bb {
		t.Error("back buffer rebuilt by a repeated request")
	}

	other := wsi.NewStaticOutput("SOFTWARE-2", hd)
	if err := s.EnterFullScreen(hd, other); err != nil {
		t.Fatal(err)
	}
	if out, _, _ := s.FullScreenState(); out.Name() != "SOFTWARE-2" {
		t.Errorf("output = %s after moving, want SOFTWARE-2", out.Name())
	}
}

func TestEnterFullScreenModeChange(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.surf.EnterFullScreen(wsi.DisplayMode{Width: 1280, Height: 720}, nil); err != nil {
		t.Fatal(err)
	}
	if f.surf.Width() != 1280 {
		t.Errorf("Width() = %d, want 1280", f.surf.Width())
	}
	if w, h := f.surf.WindowedSize(); w != 800 || h != 600 {
		t.Errorf("WindowedSize() = %dx%d, want 800x600 kept", w, h)
	}
}

func TestEnterFullScreenChildWindow(t *testing.T) {
	f := newFixture(t,
		software.WindowOptions{Width: 200, Height: 100, Child: true},
		DefaultParameters(200, 100, gputypes.TextureFormatBGRA8Unorm))
	before := f.native.TotalCalls()

	err := f.surf.EnterFullScreen(hd, nil)
	if !errors.Is(err, ErrNotTopLevel) {
		t.Fatalf("EnterFullScreen() error = %v, want ErrNotTopLevel", err)
	}
	if f.surf.Mode() != Windowed || f.surf.IsModeTransitioning() {
		t.Errorf("state = %v transitioning=%v, want Windowed", f.surf.Mode(), f.surf.IsModeTransitioning())
	}
	if f.native.TotalCalls() != before {
		t.Error("native calls made for a child window")
	}
}

func TestEnterFullScreenRace(t *testing.T) {
	tests := []struct {
		name string
		op   software.Op
		err  error
	}{
		{"target mode change", software.OpResizeTarget, device.ErrModeChangeInProgress},
		{"target unavailable", software.OpResizeTarget, device.ErrNotCurrentlyAvailable},
		{"fullscreen mode change", software.OpSetFullscreen, device.ErrModeChangeInProgress},
		{"fullscreen unavailable", software.OpSetFullscreen, device.ErrNotCurrentlyAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := windowed(t)
			f.native.Script(tt.op, tt.err)

			if err := f.surf.EnterFullScreen(hd, nil); err != nil {
				t.Fatalf("EnterFullScreen() error = %v, want nil", err)
			}
			s := f.surf
			if s.Mode() != Windowed {
				t.Errorf("Mode() = %v, want Windowed", s.Mode())
			}
			if s.IsModeTransitioning() {
				t.Error("IsModeTransitioning() = true")
			}
			if s.Width() != 800 || s.Height() != 600 {
				t.Errorf("size = %dx%d, want 800x600", s.Width(), s.Height())
			}
			if _, _, ok := s.FullScreenState(); ok {
				t.Error("FullScreenState() ok after dropped request")
			}
			if n := f.native.Calls(software.OpResizeBuffers); n != 0 {
				t.Errorf("ResizeBuffers calls = %d, want 0", n)
			}
			if w, h := f.win.ClientSize(); w != 800 || h != 600 {
				t.Errorf("window size = %dx%d, want 800x600", w, h)
			}
			if f.native.IsFullscreen() {
				t.Error("native chain fullscreen after dropped request")
			}
		})
	}
}

func TestEnterFullScreenRefreshResetRace(t *testing.T) {
	f := windowed(t)
	f.native.Script(software.OpResizeTarget, nil, device.ErrModeChangeInProgress)

	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatalf("EnterFullScreen() error = %v", err)
	}
	if !f.surf.IsFullScreen() {
		t.Error("a race on the refresh reset aborted the switch")
	}
}

func TestEnterFullScreenFatal(t *testing.T) {
	for _, op := range []software.Op{software.OpResizeTarget, software.OpSetFullscreen} {
		t.Run(string(op), func(t *testing.T) {
			f := windowed(t)
			f.native.Script(op, errBoom)

			err := f.surf.EnterFullScreen(hd, nil)
			if !errors.Is(err, device.ErrUnrecoverable) {
				t.Fatalf("EnterFullScreen() error = %v, want ErrUnrecoverable", err)
			}
			if f.surf.IsModeTransitioning() {
				t.Error("IsModeTransitioning() = true after failure")
			}
			if f.surf.Mode() != Windowed || f.surf.Width() != 800 {
				t.Errorf("state = %v %dx%d, want Windowed 800x600", f.surf.Mode(), f.surf.Width(), f.surf.Height())
			}
		})
	}
}

func TestEnterFullScreenRaceWhileFullScreen(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}
	f.native.Script(software.OpSetFullscreen, device.ErrModeChangeInProgress)

	if err := f.surf.EnterFullScreen(wsi.DisplayMode{Width: 1280, Height: 720}, nil); err != nil {
		t.Fatalf("EnterFullScreen() error = %v, want nil", err)
	}
	if f.surf.Width() != 1920 || f.surf.Height() != 1080 {
		t.Errorf("size = %dx%d, want 1920x1080 kept", f.surf.Width(), f.surf.Height())
	}
	if w, h := f.win.ClientSize(); w != 1920 || h != 1080 {
		t.Errorf("window size = %dx%d, want 1920x1080 restored", w, h)
	}
	if w, h := f.surf.WindowedSize(); w != 800 || h != 600 {
		t.Errorf("WindowedSize() = %dx%d, want 800x600", w, h)
	}
}

func TestEnterFullScreenRefreshResetFatal(t *testing.T) {
	f := windowed(t)
	f.native.Script(software.OpResizeTarget, nil, errBoom)

	err := f.surf.EnterFullScreen(hd, nil)
	if !errors.Is(err, device.ErrUnrecoverable) || !errors.Is(err, errBoom) {
		t.Fatalf("EnterFullScreen() error = %v, want ErrUnrecoverable wrapping boom", err)
	}
	if !f.native.IsFullscreen() {
		t.Fatal("native chain not fullscreen after the switch")
	}
	if f.surf.Mode() != FullScreen {
		t.Errorf("Mode() = %v, want FullScreen to match the native chain", f.surf.Mode())
	}
	if _, _, ok := f.surf.FullScreenState(); !ok {
		t.Error("FullScreenState() not recorded")
	}

	f.surf.Dispose()
	if !f.native.Released() {
		t.Fatal("native swap chain not released")
	}
	if f.native.ReleasedWhileFullscreen() {
		t.Error("native swap chain released while still fullscreen")
	}
}

func TestEnterFullScreenNoMode(t *testing.T) {
	f := windowed(t)
	empty := wsi.NewStaticOutput("EMPTY")
	if err := f.surf.EnterFullScreen(hd, empty); !errors.Is(err, wsi.ErrNoDisplayModes) {
		t.Fatalf("EnterFullScreen() error = %v, want ErrNoDisplayModes", err)
	}
	if f.surf.IsModeTransitioning() || f.surf.Mode() != Windowed {
		t.Error("state changed after a failed mode lookup")
	}
}

func TestExitFullScreen(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}

	if err := f.surf.ExitFullScreen(); err != nil {
		t.Fatalf("ExitFullScreen() error = %v", err)
	}
	s := f.surf
	if s.Mode() != Windowed || s.IsModeTransitioning() {
		t.Errorf("state = %v transitioning=%v, want Windowed", s.Mode(), s.IsModeTransitioning())
	}
	if s.Width() != 800 || s.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", s.Width(), s.Height())
	}
	if s.BufferCount() != windowedBufferCount {
		t.Errorf("BufferCount() = %d, want %d", s.BufferCount(), windowedBufferCount)
	}
	if w, h := f.win.ClientSize(); w != 800 || h != 600 {
		t.Errorf("window size = %dx%d, want 800x600", w, h)
	}
	if f.native.IsFullscreen() || f.win.IsFullscreen() {
		t.Error("native or window still fullscreen")
	}
	if _, _, ok := s.FullScreenState(); ok {
		t.Error("FullScreenState() ok after exit")
	}
}

func TestExitFullScreenWindowed(t *testing.T) {
	f := windowed(t)
	before := f.native.TotalCalls()
	if err := f.surf.ExitFullScreen(); err != nil {
		t.Fatal(err)
	}
	if f.native.TotalCalls() != before {
		t.Error("ExitFullScreen() on a windowed surface made native calls")
	}
}

func TestExitFullScreenRace(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}
	f.native.Script(software.OpSetFullscreen, device.ErrModeChangeInProgress)

	if err := f.surf.ExitFullScreen(); err != nil {
		t.Fatalf("ExitFullScreen() error = %v, want nil", err)
	}
	if f.surf.Mode() != FullScreen || f.surf.IsModeTransitioning() {
		t.Errorf("state = %v transitioning=%v, want FullScreen unchanged", f.surf.Mode(), f.surf.IsModeTransitioning())
	}
}

func TestExitFullScreenFatal(t *testing.T) {
	f := windowed(t)
	if err := f.surf.EnterFullScreen(hd, nil); err != nil {
		t.Fatal(err)
	}
	f.native.Script(software.OpSetFullscreen, errBoom)

	if err := f.surf.ExitFullScreen(); !errors.Is(err, device.ErrUnrecoverable) {
		t.Fatalf("ExitFullScreen() error = %v, want ErrUnrecoverable", err)
	}
	if f.surf.IsModeTransitioning() {
		t.Error("IsModeTransitioning() = true after failure")
	}
}
