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
	"github.com/gogpu/present/wsi"
	"github.com/gogpu/wgpu/hal"
)

// SurfaceSource is implemented by windows whose host already owns a HAL
// surface. The swap chain configures it but never destroys it.
type SurfaceSource interface {
	HALSurface() hal.Surface
}

// SwapChain presents through a configured HAL surface.
type SwapChain struct {
	dev     *Device
	win     wsi.Window
	surface hal.Surface
	owned   bool

	// unsynced is the present mode used for interval 0.
	unsynced gputypes.PresentMode

	mu         sync.Mutex
	desc       device.SwapChainDescriptor
	config     hal.SurfaceConfiguration
	current    *hal.AcquiredSurfaceTexture
	frame      uint64
	refs       int
	fullscreen bool
	output     wsi.Output
	autoSwitch bool
	released   bool
	presents   int
}

// Ensure SwapChain implements device.SwapChain.
var _ device.SwapChain = (*SwapChain)(nil)

func newSwapChain(d *Device, win wsi.Window, surface hal.Surface, owned bool, desc device.SwapChainDescriptor) (*SwapChain, error) {
	sc := &SwapChain{
		dev:        d,
		win:        win,
		surface:    surface,
		owned:      owned,
		unsynced:   gputypes.PresentModeFifo,
		desc:       desc,
		autoSwitch: true,
		config: hal.SurfaceConfiguration{
			Width:       uint32(max(desc.Width, 0)),
			Height:      uint32(max(desc.Height, 0)),
			Format:      desc.Format,
			Usage:       gputypes.TextureUsageRenderAttachment,
			PresentMode: gputypes.PresentModeFifo,
			AlphaMode:   d.opts.AlphaMode,
		},
	}
	if d.adapter != nil {
		if caps := d.adapter.SurfaceCapabilities(surface); caps != nil {
			for _, m := range []gputypes.PresentMode{gputypes.PresentModeImmediate, gputypes.PresentModeMailbox} {
				if slices.Contains(caps.PresentModes, m) {
					sc.unsynced = m
					break
				}
			}
		}
	}
	if err := sc.configureLocked(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Surface returns the HAL surface.
func (sc *SwapChain) Surface() hal.Surface { return sc.surface }

// Configuration returns the current surface configuration.
func (sc *SwapChain) Configuration() hal.SurfaceConfiguration {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.config
}

// Presents returns the number of frames handed to the queue.
func (sc *SwapChain) Presents() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.presents
}

// IsFullscreen reports the fullscreen state set through SetFullscreen.
func (sc *SwapChain) IsFullscreen() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.fullscreen
}

// AutoModeSwitch reports the value set through SetAutoModeSwitch.
func (sc *SwapChain) AutoModeSwitch() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.autoSwitch
}

// References returns the number of back buffer references held.
func (sc *SwapChain) References() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.refs
}

func (sc *SwapChain) configureLocked() error {
	if sc.config.Width == 0 || sc.config.Height == 0 {
		return translate(hal.ErrZeroArea)
	}
	if err := sc.surface.Configure(sc.dev.raw, &sc.config); err != nil {
		return fmt.Errorf("configure surface %q: %w", sc.desc.Label, translate(err))
	}
	return nil
}

// discardLocked drops the acquired surface texture, if any.
func (sc *SwapChain) discardLocked() {
	if sc.current != nil {
		sc.surface.DiscardTexture(sc.current.Texture)
		sc.current = nil
	}
}

func (sc *SwapChain) releaseRef() {
	sc.mu.Lock()
	if sc.refs > 0 {
		sc.refs--
	}
	sc.mu.Unlock()
}

// acquire returns the surface texture of the current frame, acquiring one
// if needed, and the frame number it belongs to.
func (sc *SwapChain) acquire() (hal.Texture, uint64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.acquireLocked(); err != nil {
		return nil, 0, err
	}
	return sc.current.Texture, sc.frame, nil
}

func (sc *SwapChain) acquireLocked() error {
	if sc.released {
		return fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if sc.current != nil {
		return nil
	}
	if sc.win.IsMinimized() {
		return device.ErrOccluded
	}
	acquired, err := sc.surface.AcquireTexture(nil)
	if err != nil {
		return translate(err)
	}
	if acquired.Suboptimal {
		present.Logger().Debug("wgpu: suboptimal surface texture", "swapchain", sc.desc.Label)
	}
	sc.current = acquired
	sc.frame++
	return nil
}

// BufferCount returns 1: a surface exposes only the texture of the
// current frame.
func (sc *SwapChain) BufferCount() int { return 1 }

// BackBuffer returns a reference to the current frame's texture. Views
// created over it follow the surface from frame to frame.
func (sc *SwapChain) BackBuffer(index int) (device.Texture, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return nil, fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if index != 0 {
		return nil, fmt.Errorf("%w: back buffer %d of 1", device.ErrUnsupported, index)
	}
	sc.refs++
	return &Texture{
		dev: sc.dev,
		desc: device.TextureDescriptor{
			Label:              sc.desc.Label + " surface",
			Dimension:          gputypes.TextureDimension2D,
			Width:              sc.config.Width,
			Height:             sc.config.Height,
			DepthOrArrayLayers: 1,
			MipLevelCount:      1,
			SampleCount:        1,
			Format:             sc.config.Format,
			Usage:              device.BindRenderTarget,
		},
		native: sc.config.Format,
		chain:  sc,
	}, nil
}

// ResizeBuffers reconfigures the surface. count is recorded but WebGPU
// surfaces choose their own image count.
func (sc *SwapChain) ResizeBuffers(count, width, height int, f gputypes.TextureFormat) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if sc.refs > 0 {
		return fmt.Errorf("%w: %d held", ErrOutstandingReferences, sc.refs)
	}
	sc.discardLocked()

	if f != gputypes.TextureFormatUndefined {
		sc.config.Format = f
		sc.desc.Format = f
	}
	sc.config.Width, sc.config.Height = uint32(max(width, 0)), uint32(max(height, 0))
	sc.desc.Width, sc.desc.Height = width, height
	if count > 0 {
		sc.desc.BufferCount = count
	}
	return sc.configureLocked()
}

// ResizeTarget resizes the window client area when the window supports it.
// There are no exclusive display modes, so refresh rate and format of mode
// are ignored.
func (sc *SwapChain) ResizeTarget(mode wsi.DisplayMode) error {
	sc.mu.Lock()
	released := sc.released
	sc.mu.Unlock()
	if released {
		return fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if r, ok := sc.win.(wsi.Resizer); ok && mode.Width > 0 && mode.Height > 0 {
		return r.SetClientSize(mode.Width, mode.Height)
	}
	return nil
}

// SetFullscreen switches the window to borderless fullscreen through
// wsi.Fullscreener.
func (sc *SwapChain) SetFullscreen(fullscreen bool, output wsi.Output) error {
	if fullscreen && output == nil {
		var err error
		if output, err = sc.ContainingOutput(); err != nil {
			return err
		}
	}
	fs, ok := sc.win.(wsi.Fullscreener)
	if !ok {
		return fmt.Errorf("%w: %T cannot go fullscreen", device.ErrUnsupported, sc.win)
	}
	if fullscreen && !sc.win.IsTopLevel() {
		return fmt.Errorf("%w: fullscreen on a child window", device.ErrUnsupported)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if fullscreen == sc.fullscreen && fs.IsFullscreen() == fullscreen && (!fullscreen || output == sc.output) {
		return device.ErrAlreadyCurrent
	}
	fs.SetFullscreen(fullscreen)
	sc.fullscreen = fullscreen
	if fullscreen {
		sc.output = output
	} else {
		sc.output = nil
	}
	return nil
}

// SetAutoModeSwitch records the setting. Fullscreen toggling by the window
// system is up to the window implementation.
func (sc *SwapChain) SetAutoModeSwitch(enabled bool) error {
	sc.mu.Lock()
	sc.autoSwitch = enabled
	sc.mu.Unlock()
	return nil
}

// ContainingOutput asks the window, then falls back to Options.Output.
func (sc *SwapChain) ContainingOutput() (wsi.Output, error) {
	if loc, ok := sc.win.(wsi.OutputLocator); ok {
		if out, err := loc.ContainingOutput(); err == nil {
			return out, nil
		}
	}
	if sc.dev.opts.Output != nil {
		return sc.dev.opts.Output, nil
	}
	return nil, wsi.ErrNoOutput
}

// Present queues the current frame. Interval 0 presents without vertical
// sync when the surface allows it; any other interval uses Fifo. With
// device.PresentTest it only checks that a frame can be acquired.
func (sc *SwapChain) Present(interval int, flags device.PresentFlags) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if flags&device.PresentTest != 0 {
		return sc.acquireLocked()
	}
	if sc.released {
		return fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if sc.win.IsMinimized() {
		sc.discardLocked()
		return device.ErrOccluded
	}

	mode := gputypes.PresentModeFifo
	if interval == 0 {
		mode = sc.unsynced
	}
	if mode != sc.config.PresentMode {
		sc.discardLocked()
		sc.config.PresentMode = mode
		if err := sc.configureLocked(); err != nil {
			return err
		}
		present.Logger().Debug("wgpu: present mode changed", "swapchain", sc.desc.Label, "mode", mode)
	}

	if err := sc.acquireLocked(); err != nil {
		return err
	}
	err := sc.dev.queue.Present(sc.surface, sc.current.Texture, nil)
	sc.current = nil
	if err != nil {
		return translate(err)
	}
	sc.presents++
	return nil
}

// Release unconfigures the surface and destroys it when the swap chain
// created it.
func (sc *SwapChain) Release() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return
	}
	sc.released = true
	if sc.fullscreen {
		present.Logger().Warn("wgpu: swap chain released while fullscreen", "swapchain", sc.desc.Label)
	}
	sc.discardLocked()
	sc.surface.Unconfigure(sc.dev.raw)
	if sc.owned {
		sc.surface.Destroy()
	}
}
