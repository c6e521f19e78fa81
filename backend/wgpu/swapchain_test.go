// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/swapchain"
	"github.com/gogpu/present/view"
	"github.com/gogpu/present/wsi"
	"github.com/gogpu/wgpu/hal"
)

func chainDesc() *device.SwapChainDescriptor {
	return &device.SwapChainDescriptor{
		Label:       "main",
		Width:       800,
		Height:      600,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		BufferCount: 3,
		FlipModel:   true,
	}
}

func newChain(t *testing.T, f *fixture) *SwapChain {
	t.Helper()
	native, err := f.dev.CreateSwapChain(f.win, chainDesc())
	if err != nil {
		t.Fatalf("CreateSwapChain() error = %v", err)
	}
	sc := native.(*SwapChain)
	t.Cleanup(sc.Release)
	return sc
}

func TestCreateSwapChainHostSurface(t *testing.T) {
	f := newFixture(t)
	sc := newChain(t, f)

	if len(f.surface.configs) != 1 {
		t.Fatalf("Configure calls = %d, want 1", len(f.surface.configs))
	}
	want := hal.SurfaceConfiguration{
		Width:       800,
		Height:      600,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	}
	if got := f.surface.lastConfig(); got != want {
		t.Errorf("configuration = %+v, want %+v", got, want)
	}
	if got := sc.BufferCount(); got != 1 {
		t.Errorf("BufferCount() = %d, want 1", got)
	}

	sc.Release()
	if !f.surface.unconfig {
		t.Error("Release did not unconfigure the surface")
	}
	if f.surface.destroyed {
		t.Error("Release destroyed a host-owned surface")
	}
}

func TestCreateSwapChainNoSurface(t *testing.T) {
	f := newFixture(t)

	_, err := f.dev.CreateSwapChain(&handleWindow{w: 64, h: 64}, chainDesc())
	if !errors.Is(err, ErrNoSurface) {
		t.Errorf("CreateSwapChain() error = %v, want ErrNoSurface", err)
	}
}

func TestCreateSwapChainNativeHandles(t *testing.T) {
	d, err := Open(Options{Backends: []gputypes.Backend{gputypes.BackendEmpty}})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()
	win := &handleWindow{w: 800, h: 600}

	native, err := d.CreateSwapChain(win, chainDesc())
	if err != nil {
		t.Fatalf("CreateSwapChain() error = %v", err)
	}
	sc := native.(*SwapChain)
	defer sc.Release()

	// The noop adapter supports immediate presentation.
	if err := sc.Present(0, 0); err != nil {
		t.Fatalf("Present(0) error = %v", err)
	}
	if got := sc.Configuration().PresentMode; got != gputypes.PresentModeImmediate {
		t.Errorf("PresentMode after interval 0 = %v, want Immediate", got)
	}
	if err := sc.Present(1, 0); err != nil {
		t.Fatalf("Present(1) error = %v", err)
	}
	if got := sc.Configuration().PresentMode; got != gputypes.PresentModeFifo {
		t.Errorf("PresentMode after interval 1 = %v, want Fifo", got)
	}

	desc := chainDesc()
	desc.Format = gputypes.TextureFormatRGBA16Float
	if _, err := d.CreateSwapChain(win, desc); !errors.Is(err, ErrFormatNotSupported) {
		t.Errorf("CreateSwapChain(RGBA16Float) error = %v, want ErrFormatNotSupported", err)
	}
}

func TestBackBufferFollowsFrames(t *testing.T) {
	f := newFixture(t)
	sc := newChain(t, f)

	tex, err := sc.BackBuffer(0)
	if err != nil {
		t.Fatalf("BackBuffer(0) error = %v", err)
	}
	v, err := view.NewRenderTarget2D(f.dev, view.Params{Texture: tex, Name: "back"})
	if err != nil {
		t.Fatalf("NewRenderTarget2D() error = %v", err)
	}
	if len(f.rec.views) != 0 {
		t.Errorf("HAL views before first use = %d, want 0", len(f.rec.views))
	}

	for range 2 {
		if err := v.Clear(gputypes.Color{B: 1, A: 1}); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
	}
	if f.surface.acquires != 1 || len(f.rec.views) != 1 {
		t.Errorf("acquires/views in one frame = %d/%d, want 1/1", f.surface.acquires, len(f.rec.views))
	}

	if err := sc.Present(1, 0); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if f.queue.presented != 1 {
		t.Errorf("queue presents = %d, want 1", f.queue.presented)
	}

	if err := v.Clear(gputypes.Color{}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if f.surface.acquires != 2 || len(f.rec.views) != 2 || f.rec.viewsDestroyed != 1 {
		t.Errorf("next frame acquires/views/destroyed = %d/%d/%d, want 2/2/1",
			f.surface.acquires, len(f.rec.views), f.rec.viewsDestroyed)
	}

	if _, err := sc.BackBuffer(1); !errors.Is(err, device.ErrUnsupported) {
		t.Errorf("BackBuffer(1) error = %v, want ErrUnsupported", err)
	}

	v.Dispose()
	if sc.References() != 1 {
		t.Errorf("References() = %d, want 1", sc.References())
	}
	tex.Destroy()
	if sc.References() != 0 {
		t.Errorf("References() after release = %d, want 0", sc.References())
	}
}

func TestResizeBuffers(t *testing.T) {
	f := newFixture(t)
	sc := newChain(t, f)

	tex, err := sc.BackBuffer(0)
	if err != nil {
		t.Fatalf("BackBuffer(0) error = %v", err)
	}
	if err := sc.ResizeBuffers(2, 1024, 768, gputypes.TextureFormatUndefined); !errors.Is(err, ErrOutstandingReferences) {
		t.Errorf("ResizeBuffers() with reference error = %v, want ErrOutstandingReferences", err)
	}
	tex.Destroy()

	if err := sc.Present(0, device.PresentTest); err != nil {
		t.Fatalf("Present(test) error = %v", err)
	}
	if err := sc.ResizeBuffers(2, 1024, 768, gputypes.TextureFormatUndefined); err != nil {
		t.Fatalf("ResizeBuffers() error = %v", err)
	}
	if f.surface.discards != 1 {
		t.Errorf("discarded textures = %d, want 1", f.surface.discards)
	}
	cfg := f.surface.lastConfig()
	if cfg.Width != 1024 || cfg.Height != 768 || cfg.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("configuration = %dx%d %s, want 1024x768 BGRA8Unorm", cfg.Width, cfg.Height, cfg.Format)
	}

	if err := sc.ResizeBuffers(2, 0, 768, gputypes.TextureFormatUndefined); !errors.Is(err, device.ErrOccluded) {
		t.Errorf("ResizeBuffers(0 width) error = %v, want ErrOccluded", err)
	}
}

func TestPresentResults(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*fixture)
		want   error
		class  device.Class
		frames int
	}{
		{"ok", func(*fixture) {}, nil, device.ClassOK, 1},
		{"minimized", func(f *fixture) { f.win.minimized = true }, device.ErrOccluded, device.ClassTransient, 0},
		{"outdated", func(f *fixture) { f.surface.acquireErr = []error{hal.ErrSurfaceOutdated} },
			device.ErrModeChangeInProgress, device.ClassTransient, 0},
		{"lost", func(f *fixture) { f.queue.presentErr = []error{hal.ErrSurfaceLost} },
			device.ErrDeviceReset, device.ClassTransient, 0},
		{"driver bug", func(f *fixture) { f.queue.presentErr = []error{hal.ErrDriverBug} },
			hal.ErrDriverBug, device.ClassFatal, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sc := newChain(t, f)
			tt.setup(f)

			err := sc.Present(1, 0)
			if tt.want == nil && err != nil || tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Present() error = %v, want %v", err, tt.want)
			}
			if got := device.Classify(err); got != tt.class {
				t.Errorf("Classify() = %v, want %v", got, tt.class)
			}
			if got := sc.Presents(); got != tt.frames {
				t.Errorf("Presents() = %d, want %d", got, tt.frames)
			}
		})
	}
}

func TestPresentTestKeepsFrame(t *testing.T) {
	f := newFixture(t)
	sc := newChain(t, f)

	if err := sc.Present(0, device.PresentTest); err != nil {
		t.Fatalf("Present(test) error = %v", err)
	}
	if f.queue.presented != 0 {
		t.Errorf("queue presents after test = %d, want 0", f.queue.presented)
	}
	if err := sc.Present(1, 0); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if f.surface.acquires != 1 || f.queue.presented != 1 {
		t.Errorf("acquires/presents = %d/%d, want 1/1", f.surface.acquires, f.queue.presented)
	}
	// Host devices have no adapter to query, so interval 0 keeps Fifo.
	if len(f.surface.configs) != 1 {
		t.Errorf("Configure calls = %d, want 1", len(f.surface.configs))
	}
}

func TestSetFullscreen(t *testing.T) {
	f := newFixture(t)
	out := wsi.NewStaticOutput("HAL-2", hd)
	f.win.out = out
	sc := newChain(t, f)

	if err := sc.SetFullscreen(true, nil); err != nil {
		t.Fatalf("SetFullscreen(true) error = %v", err)
	}
	if !f.win.fullscreen || !sc.IsFullscreen() {
		t.Error("window not fullscreen")
	}
	if err := sc.SetFullscreen(true, out); !errors.Is(err, device.ErrAlreadyCurrent) {
		t.Errorf("repeated SetFullscreen error = %v, want ErrAlreadyCurrent", err)
	}
	if err := sc.SetFullscreen(false, nil); err != nil {
		t.Fatalf("SetFullscreen(false) error = %v", err)
	}
	if f.win.fullscreen {
		t.Error("window still fullscreen")
	}

	f.win.child = true
	if err := sc.SetFullscreen(true, out); !errors.Is(err, device.ErrUnsupported) {
		t.Errorf("child SetFullscreen error = %v, want ErrUnsupported", err)
	}
}

func TestContainingOutputFallback(t *testing.T) {
	f := newFixture(t)
	sc := newChain(t, f)

	out, err := sc.ContainingOutput()
	if err != nil || out.Name() != "HAL-1" {
		t.Errorf("ContainingOutput() = %v, %v, want device output HAL-1", out, err)
	}

	f.win.out = wsi.NewStaticOutput("HAL-2", hd)
	if out, _ := sc.ContainingOutput(); out.Name() != "HAL-2" {
		t.Errorf("ContainingOutput() = %s, want window output HAL-2", out.Name())
	}

	d, err := FromHAL(f.rec, f.queue, Options{})
	if err != nil {
		t.Fatalf("FromHAL() error = %v", err)
	}
	native, err := d.CreateSwapChain(&hostWindow{surface: &scriptedSurface{}, w: 10, h: 10}, chainDesc())
	if err != nil {
		t.Fatalf("CreateSwapChain() error = %v", err)
	}
	defer native.Release()
	if _, err := native.ContainingOutput(); !errors.Is(err, wsi.ErrNoOutput) {
		t.Errorf("ContainingOutput() error = %v, want wsi.ErrNoOutput", err)
	}
}

func TestReleasedSwapChain(t *testing.T) {
	f := newFixture(t)
	sc := newChain(t, f)
	sc.Release()
	sc.Release()

	if err := sc.Present(1, 0); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Present() after Release error = %v, want ErrDestroyed", err)
	}
	if _, err := sc.BackBuffer(0); !errors.Is(err, ErrDestroyed) {
		t.Errorf("BackBuffer() after Release error = %v, want ErrDestroyed", err)
	}
}

func TestSurfaceOverWGPU(t *testing.T) {
	f := newFixture(t)
	f.win.out = wsi.NewStaticOutput("HAL-1", hd)

	s, err := swapchain.New(f.dev, f.win, swapchain.DefaultParameters(800, 600, gputypes.TextureFormatBGRA8Unorm))
	if err != nil {
		t.Fatalf("swapchain.New() error = %v", err)
	}
	if got := s.BufferCount(); got != 1 {
		t.Errorf("BufferCount() = %d, want 1", got)
	}
	if err := s.BackBuffer().Clear(gputypes.Color{G: 1, A: 1}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := s.Present(1); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	if err := s.ResizeBackBuffers(1024, 768); err != nil {
		t.Fatalf("ResizeBackBuffers() error = %v", err)
	}
	if cfg := f.surface.lastConfig(); cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("configuration = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}

	if err := s.EnterFullScreen(hd, nil); err != nil {
		t.Fatalf("EnterFullScreen() error = %v", err)
	}
	if !f.win.fullscreen || !s.IsFullScreen() {
		t.Error("not fullscreen after EnterFullScreen")
	}
	if cfg := f.surface.lastConfig(); cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("fullscreen configuration = %dx%d, want 1920x1080", cfg.Width, cfg.Height)
	}

	if err := s.ExitFullScreen(); err != nil {
		t.Fatalf("ExitFullScreen() error = %v", err)
	}
	if w, h := f.win.ClientSize(); w != 1024 || h != 768 {
		t.Errorf("window size after exit = %dx%d, want 1024x768", w, h)
	}

	s.Dispose()
	if !f.surface.unconfig {
		t.Error("Dispose did not release the surface")
	}
}
