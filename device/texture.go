// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"github.com/gogpu/gputypes"
)

// BindFlags specifies the pipeline stages a texture can be bound to.
// These flags can be combined with bitwise OR.
type BindFlags uint32

const (
	// BindCopySrc allows the texture to be used as a copy source.
	BindCopySrc BindFlags = 1 << iota

	// BindCopyDst allows the texture to be used as a copy destination.
	BindCopyDst

	// BindShaderResource allows the texture to be sampled by shaders.
	BindShaderResource

	// BindUnorderedAccess allows the texture to be used as a storage image.
	BindUnorderedAccess

	// BindRenderTarget allows the texture to be used as a color attachment.
	BindRenderTarget

	// BindDepthStencil allows the texture to be used as a depth-stencil
	// attachment.
	BindDepthStencil
)

// Has reports whether all bits of want are set in f.
func (f BindFlags) Has(want BindFlags) bool {
	return f&want == want
}

// WebGPU converts the flags to WebGPU texture usage.
func (f BindFlags) WebGPU() gputypes.TextureUsage {
	var u gputypes.TextureUsage
	if f.Has(BindCopySrc) {
		u |= gputypes.TextureUsageCopySrc
	}
	if f.Has(BindCopyDst) {
		u |= gputypes.TextureUsageCopyDst
	}
	if f.Has(BindShaderResource) {
		u |= gputypes.TextureUsageTextureBinding
	}
	if f.Has(BindUnorderedAccess) {
		u |= gputypes.TextureUsageStorageBinding
	}
	if f&(BindRenderTarget|BindDepthStencil) != 0 {
		u |= gputypes.TextureUsageRenderAttachment
	}
	return u
}

// String returns the set flags joined by '|'.
func (f BindFlags) String() string {
	if f == 0 {
		return "None"
	}
	names := [...]string{"CopySrc", "CopyDst", "ShaderResource", "UnorderedAccess", "RenderTarget", "DepthStencil"}
	s := ""
	for i, n := range names {
		if f&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n
	}
	return s
}

// TextureDescriptor describes parameters for creating a texture.
// It mirrors the WebGPU GPUTextureDescriptor with the additions native
// APIs need (sample quality, typeless formats, bind flags).
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels. Use 1 for 1D textures.
	Height uint32

	// DepthOrArrayLayers is the depth of a 3D texture or the array layer
	// count of a 1D/2D texture.
	DepthOrArrayLayers uint32

	// MipLevelCount is the number of mipmap levels.
	// Use 1 for no mipmaps.
	MipLevelCount uint32

	// SampleCount is the number of samples for multisampling.
	// Use 1 for no multisampling.
	SampleCount uint32

	// SampleQuality is the vendor-specific multisample quality level.
	SampleQuality uint32

	// Format is the texture pixel format. It may be a typeless family
	// from package format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be bound.
	Usage BindFlags
}

// DefaultTextureDescriptor returns a single-mip, single-sample 2D
// TextureDescriptor. Only Width, Height, and Format need to be set.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Dimension:          gputypes.TextureDimension2D,
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
		MipLevelCount:      1,
		SampleCount:        1,
		Format:             format,
		Usage:              BindShaderResource | BindRenderTarget,
	}
}

// ArraySize returns the array layer count, or 1 for 3D textures.
func (d *TextureDescriptor) ArraySize() uint32 {
	if d.Dimension == gputypes.TextureDimension3D {
		return 1
	}
	return max(d.DepthOrArrayLayers, 1)
}

// Depth returns the depth of a 3D texture, or 1 for other dimensions.
func (d *TextureDescriptor) Depth() uint32 {
	if d.Dimension != gputypes.TextureDimension3D {
		return 1
	}
	return max(d.DepthOrArrayLayers, 1)
}

// IsMultisampled reports whether the texture has more than one sample.
func (d *TextureDescriptor) IsMultisampled() bool {
	return d.SampleCount > 1
}

// MipSize returns the extent of mip level, each axis floored to 1.
func (d *TextureDescriptor) MipSize(level uint32) (width, height, depth uint32) {
	return mipExtent(d.Width, level), mipExtent(d.Height, level), mipExtent(d.Depth(), level)
}

// MipExtent returns max(1, base >> level).
func MipExtent(base, level uint32) uint32 {
	return mipExtent(base, level)
}

func mipExtent(base, level uint32) uint32 {
	if level >= 32 {
		return 1
	}
	return max(base>>level, 1)
}

// Texture is a GPU texture resource created by a [Device].
// The descriptor is fixed at creation.
type Texture interface {
	// Descriptor returns the creation parameters.
	Descriptor() TextureDescriptor

	// Destroy releases GPU resources associated with this texture.
	Destroy()
}
