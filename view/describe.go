// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
)

// Params are the view creation parameters.
type Params struct {
	// Texture is the texture to view. It is not owned by the view.
	Texture device.Texture

	// Format is the view format. Undefined uses the texture format.
	// Typeless families are rejected.
	Format gputypes.TextureFormat

	// MipSlice is the mip level to bind. Values past the last level are
	// clamped to it.
	MipSlice uint32

	// FirstSlice is the first array layer, or the first depth slice for
	// RenderTarget3D.
	FirstSlice uint32

	// SliceCount is the number of array layers or depth slices. Zero selects
	// every slice from FirstSlice to the end.
	SliceCount uint32

	// Flags are depth-stencil view flags. Render-target views ignore them.
	Flags device.ViewFlags

	// Name labels the view in errors, logs and the native debug layer.
	Name string
}

// Describe validates p against tex for a view of kind k and returns the
// native view descriptor. It has no side effects.
//
// The descriptor dimension is chosen from two independent facts: whether
// the view spans more than one slice and whether the texture is
// multisampled. 3D views never have a multisampled variant and address a
// depth-slice range instead of an array range.
func Describe(k Kind, tex *device.TextureDescriptor, p *Params) (device.ViewDescriptor, error) {
	if !k.Valid() {
		return device.ViewDescriptor{}, fmt.Errorf("%w: view %q: kind=%d", ErrInvalidKind, p.Name, k)
	}
	if want := k.TextureDimension(); tex.Dimension != want {
		return device.ViewDescriptor{}, fmt.Errorf("%w: view %q: %s over a %s texture",
			ErrDimension, p.Name, k, dimensionName(tex.Dimension))
	}

	f, err := resolveFormat(k, tex, p)
	if err != nil {
		return device.ViewDescriptor{}, err
	}

	// Depth is validated at mip 0; the view may address fewer slices at
	// coarser mips, which the native layer clips.
	total := tex.ArraySize()
	if k == RenderTarget3D {
		total = tex.Depth()
	}
	count := p.SliceCount
	if count == 0 && p.FirstSlice < total {
		count = total - p.FirstSlice
	}
	if count == 0 || uint64(p.FirstSlice)+uint64(count) > uint64(total) {
		return device.ViewDescriptor{}, fmt.Errorf("%w: view %q: first=%d count=%d, texture has %d",
			ErrSliceRange, p.Name, p.FirstSlice, p.SliceCount, total)
	}

	if need := k.requiredBinding(); !tex.Usage.Has(need) {
		return device.ViewDescriptor{}, fmt.Errorf("%w: view %q: %s needs %s, texture has %s",
			ErrMissingBinding, p.Name, k, need, tex.Usage)
	}
	if k.IsDepthStencil() && tex.Usage.Has(device.BindShaderResource) && !format.IsTypeless(tex.Format) {
		return device.ViewDescriptor{}, fmt.Errorf("%w: view %q: texture format %s",
			ErrShaderReadableDepth, p.Name, format.Name(tex.Format))
	}

	mip := p.MipSlice
	if levels := max(tex.MipLevelCount, 1); mip >= levels {
		mip = levels - 1
	}

	desc := device.ViewDescriptor{
		Label:      p.Name,
		Usage:      k.usage(),
		Format:     f,
		Dimension:  viewDimension(k, count > 1, tex.IsMultisampled()),
		MipSlice:   mip,
		FirstSlice: p.FirstSlice,
		SliceCount: count,
	}
	if k.IsDepthStencil() {
		desc.Flags = p.Flags
	}
	return desc, nil
}

func resolveFormat(k Kind, tex *device.TextureDescriptor, p *Params) (gputypes.TextureFormat, error) {
	f := p.Format
	if f == gputypes.TextureFormatUndefined {
		f = tex.Format
	}
	if format.IsTypeless(f) {
		return 0, fmt.Errorf("%w: view %q: format %s", ErrTypelessFormat, p.Name, format.Name(f))
	}
	if !format.Compatible(f, tex.Format) {
		return 0, fmt.Errorf("%w: view %q: %s over %s", ErrFormatMismatch, p.Name, format.Name(f), format.Name(tex.Format))
	}
	if k.IsDepthStencil() != format.IsDepthStencil(f) {
		return 0, fmt.Errorf("%w: view %q: %s cannot use %s", ErrFormatMismatch, p.Name, k, format.Name(f))
	}
	return f, nil
}

func viewDimension(k Kind, ranged, multisampled bool) device.ViewDimension {
	switch k {
	case RenderTarget1D:
		if ranged {
			return device.ViewDimension1DArray
		}
		return device.ViewDimension1D
	case RenderTarget3D:
		return device.ViewDimension3D
	}
	switch {
	case ranged && multisampled:
		return device.ViewDimension2DMSArray
	case multisampled:
		return device.ViewDimension2DMS
	case ranged:
		return device.ViewDimension2DArray
	default:
		return device.ViewDimension2D
	}
}

func dimensionName(d gputypes.TextureDimension) string {
	switch d {
	case gputypes.TextureDimension1D:
		return "1D"
	case gputypes.TextureDimension2D:
		return "2D"
	case gputypes.TextureDimension3D:
		return "3D"
	default:
		return "undefined"
	}
}
