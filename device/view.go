// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ViewDimension is the native dimensionality of a view.
type ViewDimension uint8

const (
	ViewDimensionUndefined ViewDimension = iota
	ViewDimension1D
	ViewDimension1DArray
	ViewDimension2D
	ViewDimension2DArray
	ViewDimension2DMS
	ViewDimension2DMSArray
	ViewDimension3D
)

// String returns the name of the view dimension.
func (d ViewDimension) String() string {
	switch d {
	case ViewDimension1D:
		return "1D"
	case ViewDimension1DArray:
		return "1DArray"
	case ViewDimension2D:
		return "2D"
	case ViewDimension2DArray:
		return "2DArray"
	case ViewDimension2DMS:
		return "2DMS"
	case ViewDimension2DMSArray:
		return "2DMSArray"
	case ViewDimension3D:
		return "3D"
	default:
		return "Undefined"
	}
}

// IsArray reports whether the dimension addresses a slice range.
func (d ViewDimension) IsArray() bool {
	return d == ViewDimension1DArray || d == ViewDimension2DArray || d == ViewDimension2DMSArray
}

// IsMultisampled reports whether the dimension is a multisampled variant.
func (d ViewDimension) IsMultisampled() bool {
	return d == ViewDimension2DMS || d == ViewDimension2DMSArray
}

// WebGPU maps d onto a WebGPU view dimension. WebGPU encodes multisampling
// in the texture rather than the view, so the MS variants map to their
// plain counterparts. 1D arrays have no WebGPU equivalent.
func (d ViewDimension) WebGPU() (gputypes.TextureViewDimension, bool) {
	switch d {
	case ViewDimension1D:
		return gputypes.TextureViewDimension1D, true
	case ViewDimension2D, ViewDimension2DMS:
		return gputypes.TextureViewDimension2D, true
	case ViewDimension2DArray, ViewDimension2DMSArray:
		return gputypes.TextureViewDimension2DArray, true
	case ViewDimension3D:
		return gputypes.TextureViewDimension3D, true
	default:
		return gputypes.TextureViewDimensionUndefined, false
	}
}

// ViewFlags are optional depth-stencil view flags.
type ViewFlags uint8

const (
	// ViewReadOnlyDepth binds the depth aspect read-only so it can be
	// sampled while bound.
	ViewReadOnlyDepth ViewFlags = 1 << iota

	// ViewReadOnlyStencil binds the stencil aspect read-only.
	ViewReadOnlyStencil
)

// ViewUsage is the pipeline stage a native view is created for.
type ViewUsage uint8

const (
	// ViewUsageRenderTarget creates a color attachment view.
	ViewUsageRenderTarget ViewUsage = iota + 1

	// ViewUsageDepthStencil creates a depth-stencil attachment view.
	ViewUsageDepthStencil
)

// ViewDescriptor is the fully resolved description of a native view.
type ViewDescriptor struct {
	Label     string
	Usage     ViewUsage
	Format    gputypes.TextureFormat
	Dimension ViewDimension

	// MipSlice is the single mip level the view addresses.
	MipSlice uint32

	// FirstSlice is the first array layer, or the first depth slice for
	// 3D views.
	FirstSlice uint32

	// SliceCount is the number of array layers or depth slices.
	SliceCount uint32

	Flags ViewFlags
}

// NativeView is a view object created by a [Device].
type NativeView interface {
	// Destroy releases the native view.
	Destroy()
}

// HandleProvider is implemented by native views that can be exported to
// gpucontext hosts.
type HandleProvider interface {
	Handle() gpucontext.TextureView
}
