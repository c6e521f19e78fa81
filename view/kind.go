// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
)

// Kind is the closed set of view variants.
type Kind uint8

const (
	// RenderTarget1D is a color view of a 1D texture or 1D texture array.
	RenderTarget1D Kind = iota + 1

	// RenderTarget2D is a color view of a 2D texture, 2D array, or their
	// multisampled variants.
	RenderTarget2D

	// RenderTarget3D is a color view of a depth-slice range of a 3D texture.
	RenderTarget3D

	// DepthStencil2D is a depth-stencil view of a 2D texture, 2D array, or
	// their multisampled variants.
	DepthStencil2D
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case RenderTarget1D:
		return "RenderTarget1D"
	case RenderTarget2D:
		return "RenderTarget2D"
	case RenderTarget3D:
		return "RenderTarget3D"
	case DepthStencil2D:
		return "DepthStencil2D"
	default:
		return "Invalid"
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= RenderTarget1D && k <= DepthStencil2D
}

// IsDepthStencil reports whether k is a depth-stencil kind.
func (k Kind) IsDepthStencil() bool {
	return k == DepthStencil2D
}

// TextureDimension returns the texture dimensionality k binds to.
func (k Kind) TextureDimension() gputypes.TextureDimension {
	switch k {
	case RenderTarget1D:
		return gputypes.TextureDimension1D
	case RenderTarget3D:
		return gputypes.TextureDimension3D
	case RenderTarget2D, DepthStencil2D:
		return gputypes.TextureDimension2D
	default:
		return gputypes.TextureDimensionUndefined
	}
}

// requiredBinding returns the texture bind flag k needs.
func (k Kind) requiredBinding() device.BindFlags {
	if k.IsDepthStencil() {
		return device.BindDepthStencil
	}
	return device.BindRenderTarget
}

// usage returns the native view usage of k.
func (k Kind) usage() device.ViewUsage {
	if k.IsDepthStencil() {
		return device.ViewUsageDepthStencil
	}
	return device.ViewUsageRenderTarget
}
