// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/device"
)

// handles are the native objects a live view holds. A view owns exactly one
// handles value until Dispose swaps it out.
type handles struct {
	native  device.NativeView
	texture device.Texture
	owns    bool
	id      uint64
}

// View is a validated binding of a texture sub-range to one pipeline stage.
type View struct {
	dev     device.Device
	kind    Kind
	desc    device.ViewDescriptor
	texDesc device.TextureDescriptor

	h atomic.Pointer[handles]

	// scratch holds clipped clear rectangles. It only grows.
	scratch []image.Rectangle
}

// New creates a view of kind k. No native object is created unless all
// validation passes.
func New(dev device.Device, k Kind, p Params) (*View, error) {
	return newView(dev, k, &p, false)
}

// NewRenderTarget1D creates a render-target view of a 1D texture or array.
func NewRenderTarget1D(dev device.Device, p Params) (*View, error) {
	return New(dev, RenderTarget1D, p)
}

// NewRenderTarget2D creates a render-target view of a 2D texture or array.
func NewRenderTarget2D(dev device.Device, p Params) (*View, error) {
	return New(dev, RenderTarget2D, p)
}

// NewRenderTarget3D creates a render-target view of a depth-slice range of
// a 3D texture.
func NewRenderTarget3D(dev device.Device, p Params) (*View, error) {
	return New(dev, RenderTarget3D, p)
}

// NewDepthStencil creates a depth-stencil view of a 2D texture or array.
func NewDepthStencil(dev device.Device, p Params) (*View, error) {
	return New(dev, DepthStencil2D, p)
}

func newView(dev device.Device, k Kind, p *Params, owns bool) (*View, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: view %q", ErrNilDevice, p.Name)
	}
	if p.Texture == nil {
		return nil, fmt.Errorf("%w: view %q", ErrNilTexture, p.Name)
	}

	texDesc := p.Texture.Descriptor()
	desc, err := Describe(k, &texDesc, p)
	if err != nil {
		return nil, err
	}

	native, err := dev.CreateView(p.Texture, &desc)
	if err != nil {
		return nil, fmt.Errorf("view %q: create native view: %w", p.Name, err)
	}

	v := &View{
		dev:     dev,
		kind:    k,
		desc:    desc,
		texDesc: texDesc,
	}
	v.h.Store(&handles{
		native:  native,
		texture: p.Texture,
		owns:    owns,
		id:      dev.Tracker().Register(p.Name),
	})

	present.Logger().Debug("view: created",
		"name", p.Name, "kind", k.String(), "dimension", desc.Dimension.String(),
		"mip", desc.MipSlice, "first", desc.FirstSlice, "count", desc.SliceCount)
	return v, nil
}

// Dispose releases the native view and, for owning views, the texture.
// Only the first call has an effect.
func (v *View) Dispose() {
	h := v.h.Swap(nil)
	if h == nil {
		return
	}
	h.native.Destroy()
	if h.owns {
		h.texture.Destroy()
	}
	v.dev.Tracker().Unregister(h.id)
}

// IsDisposed reports whether Dispose has been called.
func (v *View) IsDisposed() bool { return v.h.Load() == nil }

// Kind returns the view kind.
func (v *View) Kind() Kind { return v.kind }

// Name returns the view name.
func (v *View) Name() string { return v.desc.Label }

// Descriptor returns the resolved native descriptor.
func (v *View) Descriptor() device.ViewDescriptor { return v.desc }

// TextureDescriptor returns the descriptor of the viewed texture.
func (v *View) TextureDescriptor() device.TextureDescriptor { return v.texDesc }

// Texture returns the viewed texture, or nil once disposed.
func (v *View) Texture() device.Texture {
	if h := v.h.Load(); h != nil {
		return h.texture
	}
	return nil
}

// Native returns the native view, or nil once disposed.
func (v *View) Native() device.NativeView {
	if h := v.h.Load(); h != nil {
		return h.native
	}
	return nil
}

// NativeHandle exports the native view to gpucontext hosts. The handle is
// nil when the backend has no exportable view or the view is disposed.
func (v *View) NativeHandle() gpucontext.TextureView {
	if hp, ok := v.Native().(device.HandleProvider); ok {
		return hp.Handle()
	}
	return gpucontext.TextureView{}
}

// ID returns the tracker ID of a live view, or 0 once disposed.
func (v *View) ID() uint64 {
	if h := v.h.Load(); h != nil {
		return h.id
	}
	return 0
}

// OwnsTexture reports whether disposing the view also destroys the texture.
func (v *View) OwnsTexture() bool {
	if h := v.h.Load(); h != nil {
		return h.owns
	}
	return false
}

// Format returns the view format.
func (v *View) Format() gputypes.TextureFormat { return v.desc.Format }

// MipSlice returns the bound mip level after clamping.
func (v *View) MipSlice() uint32 { return v.desc.MipSlice }

// FirstSlice returns the first array layer or depth slice.
func (v *View) FirstSlice() uint32 { return v.desc.FirstSlice }

// SliceCount returns the number of array layers or depth slices.
func (v *View) SliceCount() uint32 { return v.desc.SliceCount }

// Flags returns the depth-stencil view flags.
func (v *View) Flags() device.ViewFlags { return v.desc.Flags }

// Width returns the texture width at mip 0.
func (v *View) Width() int { return int(v.texDesc.Width) }

// Height returns the texture height at mip 0.
func (v *View) Height() int { return int(max(v.texDesc.Height, 1)) }

// MipWidth returns the width of the bound mip level.
func (v *View) MipWidth() int { return int(device.MipExtent(v.texDesc.Width, v.desc.MipSlice)) }

// MipHeight returns the height of the bound mip level.
func (v *View) MipHeight() int { return int(device.MipExtent(v.texDesc.Height, v.desc.MipSlice)) }

// MipDepth returns the depth of the bound mip level; 1 for non-3D views.
func (v *View) MipDepth() int { return int(device.MipExtent(v.texDesc.Depth(), v.desc.MipSlice)) }

// Bounds returns the rectangle covered by the bound mip level.
func (v *View) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.MipWidth(), v.MipHeight())
}

// String returns a short description for logs.
func (v *View) String() string {
	return fmt.Sprintf("%s %q %dx%d mip=%d", v.kind, v.desc.Label, v.MipWidth(), v.MipHeight(), v.desc.MipSlice)
}
