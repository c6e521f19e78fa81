// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
	"github.com/gogpu/present/wsi"
	"golang.org/x/image/draw"
)

// BackendName is the registry name of the software backend.
const BackendName = "software"

func init() {
	device.Register(BackendName, 10, func() (device.Device, error) {
		return New(Options{}), nil
	}, nil)
}

// Errors returned by the software device.
var (
	// ErrInvalidDescriptor is returned for a texture descriptor with zero
	// extents or counts.
	ErrInvalidDescriptor = errors.New("software: invalid texture descriptor")

	// ErrForeignObject is returned when an object from another device is
	// passed in.
	ErrForeignObject = errors.New("software: object does not belong to this device")

	// ErrDestroyed is returned when a destroyed texture or view is used.
	ErrDestroyed = errors.New("software: object destroyed")

	// ErrWrongUsage is returned when a clear does not match the view usage.
	ErrWrongUsage = errors.New("software: clear does not match view usage")
)

// Options configure a software device.
type Options struct {
	// DisplayFormats restricts the formats swap chains accept. Empty means
	// every display-capable format.
	DisplayFormats []gputypes.TextureFormat

	// Output is the output windows without their own output report. When
	// nil a single 1080p output is used.
	Output wsi.Output
}

// Stats counts native calls made on a device.
type Stats struct {
	TexturesCreated   int
	TexturesDestroyed int
	ViewsCreated      int
	ViewsDestroyed    int
	SwapChainsCreated int
	Clears            int
}

// ClearRecord describes the most recent clear.
type ClearRecord struct {
	View    *View
	Color   gputypes.Color
	Flags   device.ClearFlags
	Depth   float32
	Stencil uint8

	// Rects is a copy of the rectangles passed to the device; nil for a
	// full clear.
	Rects []image.Rectangle
}

// Device is the in-memory reference device.
type Device struct {
	tracker device.Tracker
	output  wsi.Output
	display map[gputypes.TextureFormat]bool

	mu        sync.Mutex
	stats     Stats
	lastClear ClearRecord
	failView  []error
	failTex   []error
	chains    []*SwapChain
}

// Ensure Device implements device.Device.
var _ device.Device = (*Device)(nil)

// New creates a software device.
func New(opts Options) *Device {
	d := &Device{output: opts.Output}
	if d.output == nil {
		d.output = DefaultOutput()
	}
	if len(opts.DisplayFormats) > 0 {
		d.display = make(map[gputypes.TextureFormat]bool, len(opts.DisplayFormats))
		for _, f := range opts.DisplayFormats {
			d.display[f] = true
		}
	}
	return d
}

// DefaultOutput returns an output with common 16:9 and 16:10 modes at 60 Hz
// in BGRA8Unorm and RGBA8Unorm.
func DefaultOutput() *wsi.StaticOutput {
	hz60 := wsi.Rational{Numerator: 60, Denominator: 1}
	var modes []wsi.DisplayMode
	for _, f := range []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm} {
		for _, s := range [][2]int{{800, 600}, {1280, 720}, {1280, 800}, {1920, 1080}, {1920, 1200}, {2560, 1440}} {
			modes = append(modes, wsi.DisplayMode{Width: s[0], Height: s[1], Format: f, RefreshRate: hz60})
		}
	}
	return wsi.NewStaticOutput("SOFTWARE-1", modes...)
}

// Name returns "software".
func (d *Device) Name() string { return BackendName }

// Tracker returns the live view registry.
func (d *Device) Tracker() *device.Tracker { return &d.tracker }

// Stats returns a snapshot of the call counters.
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// LastClear returns the most recent clear.
func (d *Device) LastClear() ClearRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastClear
}

// FailNextTexture makes the next CreateTexture calls return errs in order.
func (d *Device) FailNextTexture(errs ...error) {
	d.mu.Lock()
	d.failTex = append(d.failTex, errs...)
	d.mu.Unlock()
}

// FailNextView makes the next CreateView calls return errs in order.
func (d *Device) FailNextView(errs ...error) {
	d.mu.Lock()
	d.failView = append(d.failView, errs...)
	d.mu.Unlock()
}

// SwapChains returns every swap chain created on the device.
func (d *Device) SwapChains() []*SwapChain {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*SwapChain(nil), d.chains...)
}

// Close reports views that were never disposed. It returns their count.
func (d *Device) Close() int {
	return d.tracker.ReportLeaks(present.Logger())
}

func pop(q *[]error) error {
	if len(*q) == 0 {
		return nil
	}
	err := (*q)[0]
	*q = (*q)[1:]
	return err
}

// CreateTexture allocates a texture.
func (d *Device) CreateTexture(desc *device.TextureDescriptor) (device.Texture, error) {
	d.mu.Lock()
	err := pop(&d.failTex)
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if desc.Width == 0 || desc.Height == 0 || desc.DepthOrArrayLayers == 0 ||
		desc.MipLevelCount == 0 || desc.SampleCount == 0 {
		return nil, fmt.Errorf("%w: %q %dx%dx%d mips=%d samples=%d", ErrInvalidDescriptor, desc.Label,
			desc.Width, desc.Height, desc.DepthOrArrayLayers, desc.MipLevelCount, desc.SampleCount)
	}
	t := newTexture(d, *desc)

	d.mu.Lock()
	d.stats.TexturesCreated++
	d.mu.Unlock()
	return t, nil
}

// CreateView creates a view over a texture of this device.
func (d *Device) CreateView(tex device.Texture, desc *device.ViewDescriptor) (device.NativeView, error) {
	d.mu.Lock()
	err := pop(&d.failView)
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}

	t, ok := tex.(*Texture)
	if !ok || t.dev != d {
		return nil, fmt.Errorf("%w: texture %T", ErrForeignObject, tex)
	}
	if t.IsDestroyed() {
		return nil, fmt.Errorf("%w: texture %q", ErrDestroyed, t.desc.Label)
	}

	d.mu.Lock()
	d.stats.ViewsCreated++
	d.mu.Unlock()
	return &View{tex: t, desc: *desc}, nil
}

func (d *Device) view(nv device.NativeView, usage device.ViewUsage) (*View, error) {
	v, ok := nv.(*View)
	if !ok || v.tex.dev != d {
		return nil, fmt.Errorf("%w: view %T", ErrForeignObject, nv)
	}
	if v.IsDestroyed() || v.tex.IsDestroyed() {
		return nil, fmt.Errorf("%w: view %q", ErrDestroyed, v.desc.Label)
	}
	if v.desc.Usage != usage {
		return nil, fmt.Errorf("%w: view %q", ErrWrongUsage, v.desc.Label)
	}
	return v, nil
}

func (d *Device) recordClear(rec ClearRecord, rects []image.Rectangle) {
	if rects != nil {
		rec.Rects = append([]image.Rectangle(nil), rects...)
	}
	d.mu.Lock()
	d.stats.Clears++
	d.lastClear = rec
	d.mu.Unlock()
}

// ClearRenderTarget fills every slice of the view with c.
func (d *Device) ClearRenderTarget(nv device.NativeView, c gputypes.Color, rects []image.Rectangle) error {
	v, err := d.view(nv, device.ViewUsageRenderTarget)
	if err != nil {
		return err
	}
	src := image.NewUniform(toNRGBA(c))
	v.eachPlane(func(p *plane) {
		if len(rects) == 0 {
			draw.Draw(p.rgba, p.rgba.Bounds(), src, image.Point{}, draw.Src)
			return
		}
		for _, r := range rects {
			draw.Draw(p.rgba, r.Intersect(p.rgba.Bounds()), src, image.Point{}, draw.Src)
		}
	})
	d.recordClear(ClearRecord{View: v, Color: c}, rects)
	return nil
}

// ClearDepthStencil writes the aspects selected by flags.
func (d *Device) ClearDepthStencil(nv device.NativeView, flags device.ClearFlags, depth float32, stencil uint8, rects []image.Rectangle) error {
	v, err := d.view(nv, device.ViewUsageDepthStencil)
	if err != nil {
		return err
	}
	v.eachPlane(func(p *plane) {
		if len(rects) == 0 {
			p.fillDepthStencil(image.Rect(0, 0, p.w, p.h), flags, depth, stencil)
			return
		}
		for _, r := range rects {
			p.fillDepthStencil(r, flags, depth, stencil)
		}
	})
	d.recordClear(ClearRecord{View: v, Flags: flags, Depth: depth, Stencil: stencil}, rects)
	return nil
}

// IsDisplayFormat reports whether f can back a swap chain.
func (d *Device) IsDisplayFormat(f gputypes.TextureFormat) bool {
	if !format.IsDisplayCapable(f) {
		return false
	}
	return d.display == nil || d.display[f]
}

// CreateSwapChain creates a swap chain presenting into win.
func (d *Device) CreateSwapChain(win wsi.Window, desc *device.SwapChainDescriptor) (device.SwapChain, error) {
	sc, err := newSwapChain(d, win, *desc)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.stats.SwapChainsCreated++
	d.chains = append(d.chains, sc)
	d.mu.Unlock()
	return sc, nil
}

func toNRGBA(c gputypes.Color) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
