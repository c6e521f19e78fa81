// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
	"github.com/gogpu/wgpu/hal"
)

// ClearRenderTarget clears the view with a render pass whose load op is
// Clear. Rectangles smaller than the view are cleared by copying from a
// cleared staging texture.
func (d *Device) ClearRenderTarget(nv device.NativeView, c gputypes.Color, rects []image.Rectangle) error {
	v, err := d.view(nv, device.ViewUsageRenderTarget)
	if err != nil {
		return err
	}
	if !v.isFull(rects) {
		return d.clearRegions(v, c, rects)
	}
	return v.eachAttachment(func(att hal.TextureView) error {
		return d.runPass(&hal.RenderPassDescriptor{
			Label: v.desc.Label + " clear",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       att,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: c,
			}},
		})
	})
}

// clearRegions clears a staging texture covering the bounds of rects and
// copies each rectangle into every slice of the view.
func (d *Device) clearRegions(v *View, c gputypes.Color, rects []image.Rectangle) error {
	if v.tex.chain != nil || v.tex.desc.SampleCount > 1 {
		return fmt.Errorf("%w: partial clear of view %q", device.ErrUnsupported, v.desc.Label)
	}
	var bounds image.Rectangle
	for _, r := range rects {
		bounds = bounds.Union(r)
	}
	if bounds.Empty() {
		return nil
	}

	label := v.desc.Label + " clear staging"
	staging, err := d.raw.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(bounds.Dx()), Height: uint32(bounds.Dy()), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        v.desc.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create %q: %w", label, translate(err))
	}
	defer d.raw.DestroyTexture(staging)
	att, err := d.raw.CreateTextureView(staging, &hal.TextureViewDescriptor{
		Label:           label,
		Format:          v.desc.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create %q view: %w", label, translate(err))
	}
	defer d.raw.DestroyTextureView(att)

	first, count := v.desc.FirstSlice, v.desc.SliceCount
	if v.desc.Dimension == device.ViewDimension3D {
		first, count = 0, 1
	}
	regions := make([]hal.TextureCopy, 0, len(rects)*int(count))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		for layer := first; layer < first+count; layer++ {
			regions = append(regions, hal.TextureCopy{
				SrcBase: hal.ImageCopyTexture{
					Texture: staging,
					Origin:  hal.Origin3D{X: uint32(r.Min.X - bounds.Min.X), Y: uint32(r.Min.Y - bounds.Min.Y)},
					Aspect:  gputypes.TextureAspectAll,
				},
				DstBase: hal.ImageCopyTexture{
					Texture:  v.tex.raw,
					MipLevel: v.desc.MipSlice,
					Origin:   hal.Origin3D{X: uint32(r.Min.X), Y: uint32(r.Min.Y), Z: layer},
					Aspect:   gputypes.TextureAspectAll,
				},
				Size: hal.Extent3D{Width: uint32(r.Dx()), Height: uint32(r.Dy()), DepthOrArrayLayers: 1},
			})
		}
	}

	return d.submit(v.desc.Label+" clear", func(enc hal.CommandEncoder) {
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: label,
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       att,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: c,
			}},
		})
		rp.End()
		enc.CopyTextureToTexture(staging, v.tex.raw, regions)
	})
}

// ClearDepthStencil clears the aspects selected by flags. Aspects the
// format does not have are left out of the pass; selected-out aspects are
// loaded and stored unchanged.
func (d *Device) ClearDepthStencil(nv device.NativeView, flags device.ClearFlags, depth float32, stencil uint8, rects []image.Rectangle) error {
	v, err := d.view(nv, device.ViewUsageDepthStencil)
	if err != nil {
		return err
	}
	if !v.isFull(rects) {
		return fmt.Errorf("%w: partial depth-stencil clear of view %q", device.ErrUnsupported, v.desc.Label)
	}

	f := v.desc.Format
	return v.eachAttachment(func(att hal.TextureView) error {
		ds := &hal.RenderPassDepthStencilAttachment{View: att}
		if format.HasDepth(f) {
			ds.DepthLoadOp, ds.DepthStoreOp = loadOp(flags&device.ClearDepth != 0), gputypes.StoreOpStore
			ds.DepthClearValue = depth
		}
		if format.HasStencil(f) {
			ds.StencilLoadOp, ds.StencilStoreOp = loadOp(flags&device.ClearStencil != 0), gputypes.StoreOpStore
			ds.StencilClearValue = uint32(stencil)
		}
		return d.runPass(&hal.RenderPassDescriptor{
			Label:                  v.desc.Label + " clear",
			DepthStencilAttachment: ds,
		})
	})
}

func loadOp(clear bool) gputypes.LoadOp {
	if clear {
		return gputypes.LoadOpClear
	}
	return gputypes.LoadOpLoad
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
	if v.desc.Dimension == device.ViewDimension3D && v.tex.desc.Depth() > 1 {
		return nil, fmt.Errorf("%w: clearing 3D view %q", device.ErrUnsupported, v.desc.Label)
	}
	return v, nil
}

// isFull reports whether rects is empty or every rectangle covers the
// view.
func (v *View) isFull(rects []image.Rectangle) bool {
	w, h, _ := v.tex.desc.MipSize(v.desc.MipSlice)
	full := image.Rect(0, 0, int(w), int(h))
	for _, r := range rects {
		if !r.Eq(full) {
			return false
		}
	}
	return true
}

// eachAttachment calls fn with a single-layer attachment view for every
// slice the view covers. Render pass attachments address one layer, so
// array views get temporary per-layer views.
func (v *View) eachAttachment(fn func(hal.TextureView) error) error {
	if v.tex.chain != nil || !v.desc.Dimension.IsArray() {
		raw, err := v.Raw()
		if err != nil {
			return err
		}
		return fn(raw)
	}

	dev := v.tex.dev.raw
	for layer := v.desc.FirstSlice; layer < v.desc.FirstSlice+v.desc.SliceCount; layer++ {
		att, err := dev.CreateTextureView(v.tex.raw, v.layerDescriptor(layer))
		if err != nil {
			return fmt.Errorf("create layer %d view: %w", layer, translate(err))
		}
		err = fn(att)
		dev.DestroyTextureView(att)
		if err != nil {
			return err
		}
	}
	return nil
}

// runPass records an empty render pass, submits it and waits for the
// queue to drain.
func (d *Device) runPass(desc *hal.RenderPassDescriptor) error {
	return d.submit(desc.Label, func(enc hal.CommandEncoder) {
		enc.BeginRenderPass(desc).End()
	})
}

// submit records commands with record, submits them and waits for the
// queue to drain.
func (d *Device) submit(label string, record func(hal.CommandEncoder)) error {
	encoder, err := d.raw.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label,
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", translate(err))
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", translate(err))
	}
	record(encoder)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", translate(err))
	}
	defer d.raw.FreeCommandBuffer(cmdBuf)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", translate(err))
	}
	if err := d.raw.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", translate(err))
	}
	return nil
}
