// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
)

// TextureParams describe a texture and view created together by NewOwned.
type TextureParams struct {
	Kind Kind

	Width  uint32
	Height uint32

	// DepthOrArraySize is the depth of a 3D texture or the array size of a
	// 1D/2D texture. Zero means 1.
	DepthOrArraySize uint32

	// MipLevels is the mip level count. Zero means 1.
	MipLevels uint32

	// Format is the concrete view format. For shader-readable depth the
	// texture is created with its typeless family.
	Format gputypes.TextureFormat

	// SampleCount and SampleQuality describe multisampling. A zero count
	// means 1.
	SampleCount   uint32
	SampleQuality uint32

	// ShaderResource requests that the texture also be sampled by shaders.
	ShaderResource bool

	// UnorderedAccess requests storage-image access. Not available on
	// depth-stencil or multisampled textures.
	UnorderedAccess bool

	// Flags are depth-stencil view flags.
	Flags device.ViewFlags

	Name string
}

// NewOwned creates a texture and a view over it. The view owns the texture:
// disposing the view destroys both.
//
// Bind flags are inferred from p.Kind and the requests in p. Requests that
// cannot be honored, or that make no sense together with the view flags,
// are logged as warnings and the objects are created without them.
func NewOwned(dev device.Device, p TextureParams) (*View, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: view %q", ErrNilDevice, p.Name)
	}
	if !p.Kind.Valid() {
		return nil, fmt.Errorf("%w: view %q: kind=%d", ErrInvalidKind, p.Name, p.Kind)
	}
	if p.Width == 0 || (p.Height == 0 && p.Kind != RenderTarget1D) {
		return nil, fmt.Errorf("%w: view %q: %dx%d", ErrInvalidSize, p.Name, p.Width, p.Height)
	}
	if format.IsTypeless(p.Format) {
		return nil, fmt.Errorf("%w: view %q: format %s", ErrTypelessFormat, p.Name, format.Name(p.Format))
	}

	texDesc := device.TextureDescriptor{
		Label:              p.Name,
		Dimension:          p.Kind.TextureDimension(),
		Width:              p.Width,
		Height:             max(p.Height, 1),
		DepthOrArrayLayers: max(p.DepthOrArraySize, 1),
		MipLevelCount:      max(p.MipLevels, 1),
		SampleCount:        max(p.SampleCount, 1),
		SampleQuality:      p.SampleQuality,
		Format:             p.Format,
		Usage:              p.Kind.requiredBinding(),
	}
	if p.Kind == RenderTarget1D {
		texDesc.Height = 1
	}
	if p.Kind.IsDepthStencil() {
		inferDepthBinding(&texDesc, &p)
	} else {
		inferColorBinding(&texDesc, &p)
	}

	tex, err := dev.CreateTexture(&texDesc)
	if err != nil {
		return nil, fmt.Errorf("view %q: create texture: %w", p.Name, err)
	}

	v, err := newView(dev, p.Kind, &Params{
		Texture: tex,
		Format:  p.Format,
		Flags:   p.Flags,
		Name:    p.Name,
	}, true)
	if err != nil {
		tex.Destroy()
		return nil, err
	}
	return v, nil
}

const readOnlyFlags = device.ViewReadOnlyDepth | device.ViewReadOnlyStencil

func inferDepthBinding(desc *device.TextureDescriptor, p *TextureParams) {
	log := present.Logger()

	if p.UnorderedAccess {
		log.Warn("view: unordered access is not available on depth-stencil textures, ignoring",
			"name", p.Name)
	}

	readOnly := p.Flags&readOnlyFlags != 0
	switch {
	case p.ShaderResource:
		family, ok := format.TypelessOf(p.Format)
		if !ok {
			log.Warn("view: depth format has no typeless family, texture will not be shader-readable",
				"name", p.Name, "format", format.Name(p.Format))
			return
		}
		desc.Format = family
		desc.Usage |= device.BindShaderResource
		if !readOnly {
			log.Warn("view: shader-readable depth without a read-only view flag, it cannot be sampled while bound",
				"name", p.Name)
		}
	case readOnly:
		log.Warn("view: read-only view flag without shader resource binding has no effect",
			"name", p.Name, "flags", p.Flags)
	}
}

func inferColorBinding(desc *device.TextureDescriptor, p *TextureParams) {
	log := present.Logger()

	if p.ShaderResource {
		desc.Usage |= device.BindShaderResource
	}
	if p.UnorderedAccess {
		if desc.SampleCount > 1 {
			log.Warn("view: unordered access is not available on multisampled textures, ignoring",
				"name", p.Name, "samples", desc.SampleCount)
		} else {
			desc.Usage |= device.BindUnorderedAccess
		}
	}
	if p.Flags != 0 {
		log.Warn("view: depth-stencil view flags on a render target are ignored",
			"name", p.Name, "flags", p.Flags)
		p.Flags = 0
	}
}
