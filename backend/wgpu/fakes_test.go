// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"image"
	"sync"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/wsi"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// recorder wraps a noop HAL device and queue and records what reaches them.
type recorder struct {
	hal.Device

	mu             sync.Mutex
	textures       []hal.TextureDescriptor
	views          []hal.TextureViewDescriptor
	viewsDestroyed int
	texDestroyed   int
	passes         []hal.RenderPassDescriptor
	copies         []hal.TextureCopy
	failTexture    error
}

func (r *recorder) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	r.mu.Lock()
	r.textures = append(r.textures, *desc)
	err := r.failTexture
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return r.Device.CreateTexture(desc)
}

func (r *recorder) DestroyTexture(t hal.Texture) {
	r.mu.Lock()
	r.texDestroyed++
	r.mu.Unlock()
	r.Device.DestroyTexture(t)
}

func (r *recorder) CreateTextureView(t hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	r.mu.Lock()
	r.views = append(r.views, *desc)
	r.mu.Unlock()
	return r.Device.CreateTextureView(t, desc)
}

func (r *recorder) DestroyTextureView(v hal.TextureView) {
	r.mu.Lock()
	r.viewsDestroyed++
	r.mu.Unlock()
	r.Device.DestroyTextureView(v)
}

func (r *recorder) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := r.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, rec: r}, nil
}

func (r *recorder) Passes() []hal.RenderPassDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]hal.RenderPassDescriptor(nil), r.passes...)
}

func (r *recorder) Copies() []hal.TextureCopy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]hal.TextureCopy(nil), r.copies...)
}

type recordingEncoder struct {
	hal.CommandEncoder
	rec *recorder
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.rec.mu.Lock()
	e.rec.passes = append(e.rec.passes, *desc)
	e.rec.mu.Unlock()
	return e.CommandEncoder.BeginRenderPass(desc)
}

func (e *recordingEncoder) CopyTextureToTexture(src, dst hal.Texture, regions []hal.TextureCopy) {
	e.rec.mu.Lock()
	e.rec.copies = append(e.rec.copies, regions...)
	e.rec.mu.Unlock()
	e.CommandEncoder.CopyTextureToTexture(src, dst, regions)
}

// scriptedQueue returns queued errors from Present.
type scriptedQueue struct {
	hal.Queue

	mu         sync.Mutex
	presentErr []error
	presented  int
}

func (q *scriptedQueue) Present(s hal.Surface, t hal.SurfaceTexture, damage []image.Rectangle) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.presentErr) > 0 {
		err := q.presentErr[0]
		q.presentErr = q.presentErr[1:]
		return err
	}
	q.presented++
	return nil
}

// scriptedSurface wraps a noop surface, counting calls and returning
// queued acquire errors.
type scriptedSurface struct {
	noop.Surface

	configs    []hal.SurfaceConfiguration
	acquires   int
	discards   int
	acquireErr []error
	destroyed  bool
	unconfig   bool
}

func (s *scriptedSurface) Configure(dev hal.Device, cfg *hal.SurfaceConfiguration) error {
	s.configs = append(s.configs, *cfg)
	return s.Surface.Configure(dev, cfg)
}

func (s *scriptedSurface) Unconfigure(dev hal.Device) {
	s.unconfig = true
	s.Surface.Unconfigure(dev)
}

func (s *scriptedSurface) AcquireTexture(f hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	if len(s.acquireErr) > 0 {
		err := s.acquireErr[0]
		s.acquireErr = s.acquireErr[1:]
		return nil, err
	}
	s.acquires++
	return s.Surface.AcquireTexture(f)
}

func (s *scriptedSurface) DiscardTexture(t hal.SurfaceTexture) {
	s.discards++
}

func (s *scriptedSurface) Destroy() { s.destroyed = true }

func (s *scriptedSurface) lastConfig() hal.SurfaceConfiguration {
	return s.configs[len(s.configs)-1]
}

// hostWindow is a window whose host owns the surface.
type hostWindow struct {
	surface    hal.Surface
	w, h       int
	minimized  bool
	child      bool
	fullscreen bool
	out        wsi.Output
}

func (w *hostWindow) Handle() uintptr { return 1 }
func (w *hostWindow) ClientSize() (int, int) { return w.w, w.h }
func (w *hostWindow) IsTopLevel() bool { return !w.child }
func (w *hostWindow) IsMinimized() bool { return w.minimized }
func (w *hostWindow) Visible() bool { return true }
func (w *hostWindow) Show() {}
func (w *hostWindow) HALSurface() hal.Surface { return w.surface }
func (w *hostWindow) SetFullscreen(fs bool) { w.fullscreen = fs }
func (w *hostWindow) IsFullscreen() bool { return w.fullscreen }

func (w *hostWindow) ContainingOutput() (wsi.Output, error) {
	if w.out == nil {
		return nil, wsi.ErrNoOutput
	}
	return w.out, nil
}

func (w *hostWindow) SetClientSize(width, height int) error {
	w.w, w.h = width, height
	return nil
}

// handleWindow only exposes native handles.
type handleWindow struct{ w, h int }

func (w *handleWindow) Handle() uintptr { return 3 }
func (w *handleWindow) ClientSize() (int, int) { return w.w, w.h }
func (w *handleWindow) IsTopLevel() bool { return true }
func (w *handleWindow) IsMinimized() bool { return false }
func (w *handleWindow) Visible() bool { return true }
func (w *handleWindow) Show() {}
func (w *handleWindow) NativeHandles() (uintptr, uintptr) { return 2, 3 }

type fixture struct {
	rec     *recorder
	queue   *scriptedQueue
	dev     *Device
	surface *scriptedSurface
	win     *hostWindow
}

var hd = wsi.DisplayMode{
	Width:       1920,
	Height:      1080,
	Format:      gputypes.TextureFormatBGRA8Unorm,
	RefreshRate: wsi.Rational{Numerator: 60, Denominator: 1},
}

// newFixture wraps a noop device opened through the HAL registry.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	opened, err := Open(Options{Backends: []gputypes.Backend{gputypes.BackendEmpty}})
	if err != nil {
		t.Fatalf("Open(noop) error = %v", err)
	}
	t.Cleanup(func() { opened.Close() })

	raw, queue := opened.HAL()
	f := &fixture{
		rec:     &recorder{Device: raw},
		queue:   &scriptedQueue{Queue: queue},
		surface: &scriptedSurface{},
	}
	f.dev, err = FromHAL(f.rec, f.queue, Options{Output: wsi.NewStaticOutput("HAL-1", hd)})
	if err != nil {
		t.Fatalf("FromHAL() error = %v", err)
	}
	f.win = &hostWindow{surface: f.surface, w: 800, h: 600}
	return f
}
