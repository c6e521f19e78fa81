// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/wgpu/hal"
)

// Texture is a HAL texture, or a back buffer of a [SwapChain].
type Texture struct {
	dev    *Device
	desc   device.TextureDescriptor
	native gputypes.TextureFormat
	raw    hal.Texture

	// chain is set for back buffers. Their storage is the surface texture
	// acquired for the current frame.
	chain *SwapChain

	mu        sync.Mutex
	destroyed bool
}

// Ensure Texture implements device.Texture.
var _ device.Texture = (*Texture)(nil)

// Descriptor returns the creation parameters.
func (t *Texture) Descriptor() device.TextureDescriptor { return t.desc }

// NativeFormat returns the format the HAL texture was allocated with.
func (t *Texture) NativeFormat() gputypes.TextureFormat { return t.native }

// Raw returns the HAL texture. It is nil for back buffers.
func (t *Texture) Raw() hal.Texture { return t.raw }

// Destroy releases the texture. For back buffers it releases the caller's
// reference only.
func (t *Texture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.mu.Unlock()

	if t.chain != nil {
		t.chain.releaseRef()
		return
	}
	t.dev.raw.DestroyTexture(t.raw)
}

// IsDestroyed reports whether Destroy was called.
func (t *Texture) IsDestroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}

// View is a HAL texture view.
//
// Views over back buffers hold no HAL view until they are used. The view is
// then created over the surface texture of the current frame and replaced
// once that frame has been presented.
type View struct {
	tex  *Texture
	desc device.ViewDescriptor

	mu    sync.Mutex
	raw   hal.TextureView
	frame uint64

	destroyed atomic.Bool
}

// Ensure View implements the native view contracts.
var (
	_ device.NativeView     = (*View)(nil)
	_ device.HandleProvider = (*View)(nil)
)

// Destroy releases the HAL view.
func (v *View) Destroy() {
	if v.destroyed.Swap(true) {
		return
	}
	v.mu.Lock()
	raw := v.raw
	v.raw = nil
	v.mu.Unlock()
	if raw != nil {
		v.tex.dev.raw.DestroyTextureView(raw)
	}
}

// IsDestroyed reports whether Destroy was called.
func (v *View) IsDestroyed() bool { return v.destroyed.Load() }

// Descriptor returns the descriptor the view was created with.
func (v *View) Descriptor() device.ViewDescriptor { return v.desc }

// Texture returns the viewed texture.
func (v *View) Texture() *Texture { return v.tex }

// Handle exports the view to gpucontext hosts. The pointer is the *View.
func (v *View) Handle() gpucontext.TextureView {
	return gpucontext.NewTextureView(unsafe.Pointer(v))
}

// Raw returns the HAL view, binding back buffer views to the current frame
// first.
func (v *View) Raw() (hal.TextureView, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	chain := v.tex.chain
	if chain == nil {
		return v.raw, nil
	}

	surfaceTex, frame, err := chain.acquire()
	if err != nil {
		return nil, err
	}
	if v.raw != nil && v.frame == frame {
		return v.raw, nil
	}
	dev := v.tex.dev
	if v.raw != nil {
		dev.raw.DestroyTextureView(v.raw)
		v.raw = nil
	}
	raw, err := dev.raw.CreateTextureView(surfaceTex, v.halDescriptor(0, 1))
	if err != nil {
		return nil, translate(err)
	}
	v.raw, v.frame = raw, frame
	return raw, nil
}

// halDescriptor returns the HAL descriptor for count layers starting at
// first. 3D views always address the whole depth range.
func (v *View) halDescriptor(first, count uint32) *hal.TextureViewDescriptor {
	dim, _ := v.desc.Dimension.WebGPU()
	if v.desc.Dimension == device.ViewDimension3D {
		first, count = 0, 1
	}
	return &hal.TextureViewDescriptor{
		Label:           v.desc.Label,
		Format:          v.desc.Format,
		Dimension:       dim,
		Aspect:          gputypes.TextureAspectAll,
		BaseMipLevel:    v.desc.MipSlice,
		MipLevelCount:   1,
		BaseArrayLayer:  first,
		ArrayLayerCount: count,
	}
}

// layerDescriptor returns the HAL descriptor of a single-layer 2D view
// used as a render pass attachment.
func (v *View) layerDescriptor(layer uint32) *hal.TextureViewDescriptor {
	desc := v.halDescriptor(layer, 1)
	desc.Dimension = gputypes.TextureViewDimension2D
	return desc
}
