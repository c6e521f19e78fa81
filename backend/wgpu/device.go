// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
	"github.com/gogpu/present/wsi"
	"github.com/gogpu/wgpu/hal"
)

// BackendName is the registry name of the wgpu backend.
const BackendName = "wgpu"

func init() {
	device.Register(BackendName, 100, func() (device.Device, error) {
		return Open(Options{})
	}, hardwareAvailable)
}

// hardwareBackends is the default HAL backend preference.
var hardwareBackends = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
}

func hardwareAvailable() bool {
	for _, v := range hardwareBackends {
		if _, ok := hal.GetBackend(v); ok {
			return true
		}
	}
	return false
}

// Options configure a wgpu device.
type Options struct {
	// Backends lists HAL backends in order of preference. Empty means
	// Vulkan, Metal, DX12, GL.
	Backends []gputypes.Backend

	// Output is reported for windows that cannot locate their own output.
	Output wsi.Output

	// AlphaMode is used when configuring surfaces. Zero picks Opaque.
	AlphaMode gputypes.CompositeAlphaMode
}

// Device is a device.Device backed by a HAL device.
type Device struct {
	raw   hal.Device
	queue hal.Queue
	opts  Options

	// instance and adapter are set when the device was opened by Open.
	instance hal.Instance
	adapter  hal.Adapter
	info     gputypes.AdapterInfo

	tracker device.Tracker

	mu     sync.Mutex
	closed bool
}

// Ensure Device implements device.Device.
var _ device.Device = (*Device)(nil)

// Open creates a HAL instance on the first usable backend, picks its first
// adapter and opens a device on it.
func Open(opts Options) (*Device, error) {
	prefs := opts.Backends
	if len(prefs) == 0 {
		prefs = hardwareBackends
	}
	var lastErr error
	for _, v := range prefs {
		backend, ok := hal.GetBackend(v)
		if !ok {
			continue
		}
		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{
			Backends: gputypes.Backends(1) << v,
		})
		if err != nil {
			lastErr = err
			continue
		}
		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			instance.Destroy()
			continue
		}
		exposed := adapters[0]
		opened, err := exposed.Adapter.Open(0, gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			lastErr = err
			continue
		}

		d := newDevice(opened.Device, opened.Queue, opts)
		d.instance = instance
		d.adapter = exposed.Adapter
		d.info = exposed.Info
		present.Logger().Info("wgpu: device opened",
			"backend", v.String(), "adapter", exposed.Info.Name)
		return d, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, lastErr)
	}
	return nil, ErrNoAdapter
}

// FromHAL wraps a device owned by someone else. Close does not destroy it.
func FromHAL(dev hal.Device, queue hal.Queue, opts Options) (*Device, error) {
	if dev == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil device or queue", ErrNoHALProvider)
	}
	return newDevice(dev, queue, opts), nil
}

// FromProvider wraps the device of a host application. The provider must
// implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue, as gogpu applications do.
func FromProvider(provider any, opts Options) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoHALProvider, provider)
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return newDevice(dev, queue, opts), nil
}

func newDevice(dev hal.Device, queue hal.Queue, opts Options) *Device {
	if opts.AlphaMode == gputypes.CompositeAlphaModeAuto {
		opts.AlphaMode = gputypes.CompositeAlphaModeOpaque
	}
	return &Device{raw: dev, queue: queue, opts: opts}
}

// Name returns "wgpu".
func (d *Device) Name() string { return BackendName }

// Tracker returns the live view registry.
func (d *Device) Tracker() *device.Tracker { return &d.tracker }

// HAL returns the underlying HAL device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) { return d.raw, d.queue }

// AdapterInfo returns the adapter description. It is zero for devices
// created by FromHAL or FromProvider.
func (d *Device) AdapterInfo() gputypes.AdapterInfo { return d.info }

// Close reports views that were never disposed and, for devices created by
// Open, destroys the HAL device and instance. It returns the leak count.
func (d *Device) Close() int {
	leaks := d.tracker.ReportLeaks(present.Logger())

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return leaks
	}
	d.closed = true
	if d.instance != nil {
		if err := d.raw.WaitIdle(); err != nil {
			present.Logger().Warn("wgpu: wait idle on close", "err", err)
		}
		d.raw.Destroy()
		d.adapter.Destroy()
		d.instance.Destroy()
	}
	return leaks
}

// CreateTexture allocates a HAL texture. Typeless formats are allocated
// with their concrete family member.
func (d *Device) CreateTexture(desc *device.TextureDescriptor) (device.Texture, error) {
	if desc.Width == 0 || desc.Height == 0 || desc.DepthOrArrayLayers == 0 ||
		desc.MipLevelCount == 0 || desc.SampleCount == 0 {
		return nil, fmt.Errorf("%w: %q %dx%dx%d mips=%d samples=%d", device.ErrUnsupported, desc.Label,
			desc.Width, desc.Height, desc.DepthOrArrayLayers, desc.MipLevelCount, desc.SampleCount)
	}
	if desc.Dimension == gputypes.TextureDimension1D && desc.Usage&(device.BindRenderTarget|device.BindDepthStencil) != 0 {
		return nil, fmt.Errorf("%w: %q: 1D textures cannot be attachments", device.ErrUnsupported, desc.Label)
	}
	native, ok := format.Resolve(desc.Format, desc.Usage.Has(device.BindDepthStencil))
	if !ok {
		return nil, fmt.Errorf("%w: %q: no concrete member for %s", device.ErrUnsupported, desc.Label, format.Name(desc.Format))
	}

	usage := desc.Usage.WebGPU()
	if desc.Usage.Has(device.BindRenderTarget) && desc.SampleCount == 1 {
		// Region clears copy into color targets.
		usage |= gputypes.TextureUsageCopyDst
	}
	raw, err := d.raw.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: desc.DepthOrArrayLayers,
		},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     desc.Dimension,
		Format:        native,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, translate(err))
	}
	return &Texture{dev: d, desc: *desc, native: native, raw: raw}, nil
}

// CreateView creates a HAL texture view. Views over swap chain back
// buffers are bound to the surface texture of the current frame when they
// are first used.
func (d *Device) CreateView(tex device.Texture, desc *device.ViewDescriptor) (device.NativeView, error) {
	t, ok := tex.(*Texture)
	if !ok || t.dev != d {
		return nil, fmt.Errorf("%w: texture %T", ErrForeignObject, tex)
	}
	if t.IsDestroyed() {
		return nil, fmt.Errorf("%w: texture %q", ErrDestroyed, t.desc.Label)
	}
	if _, ok := desc.Dimension.WebGPU(); !ok {
		return nil, fmt.Errorf("%w: %s views", device.ErrUnsupported, desc.Dimension)
	}

	v := &View{tex: t, desc: *desc}
	if t.chain != nil {
		return v, nil
	}
	raw, err := d.raw.CreateTextureView(t.raw, v.halDescriptor(desc.FirstSlice, desc.SliceCount))
	if err != nil {
		return nil, fmt.Errorf("create view %q: %w", desc.Label, translate(err))
	}
	v.raw = raw
	return v, nil
}

// IsDisplayFormat reports whether f is a display-capable format. The
// surface itself is checked when the swap chain is created.
func (d *Device) IsDisplayFormat(f gputypes.TextureFormat) bool {
	return format.IsDisplayCapable(f)
}

// CreateSwapChain configures a surface for win. The surface comes from
// the window when it implements [SurfaceSource], otherwise it is created
// from the window's native handles on the device's own instance.
func (d *Device) CreateSwapChain(win wsi.Window, desc *device.SwapChainDescriptor) (device.SwapChain, error) {
	var (
		surface hal.Surface
		owned   bool
	)
	if src, ok := win.(SurfaceSource); ok {
		surface = src.HALSurface()
	} else if d.instance != nil {
		nh, ok := win.(wsi.NativeHandles)
		if !ok {
			return nil, fmt.Errorf("%w: %T has no native handles", ErrNoSurface, win)
		}
		display, handle := nh.NativeHandles()
		s, err := d.instance.CreateSurface(display, handle)
		if err != nil {
			return nil, fmt.Errorf("create surface: %w", translate(err))
		}
		surface, owned = s, true
	}
	if surface == nil {
		return nil, fmt.Errorf("%w: %T", ErrNoSurface, win)
	}

	if d.adapter != nil {
		caps := d.adapter.SurfaceCapabilities(surface)
		if caps != nil && !slices.Contains(caps.Formats, desc.Format) {
			if owned {
				surface.Destroy()
			}
			return nil, fmt.Errorf("%w: %s", ErrFormatNotSupported, desc.Format)
		}
	}

	sc, err := newSwapChain(d, win, surface, owned, *desc)
	if err != nil {
		if owned {
			surface.Destroy()
		}
		return nil, err
	}
	return sc, nil
}
