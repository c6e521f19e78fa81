// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"github.com/gogpu/gputypes"
)

// typelessBase is the first TextureFormat value reserved for typeless
// families. WebGPU formats end well below it.
const typelessBase gputypes.TextureFormat = 0x00010000

// Typeless family formats.
const (
	R8Typeless gputypes.TextureFormat = typelessBase + iota
	RG8Typeless
	R16Typeless
	RG16Typeless
	R32Typeless
	RG32Typeless
	RGBA8Typeless
	BGRA8Typeless
	RGB10A2Typeless
	RGBA16Typeless
	RGBA32Typeless
	R24G8Typeless
	R32G8X24Typeless

	typelessEnd
)

var typelessNames = [...]string{
	"R8Typeless",
	"RG8Typeless",
	"R16Typeless",
	"RG16Typeless",
	"R32Typeless",
	"RG32Typeless",
	"RGBA8Typeless",
	"BGRA8Typeless",
	"RGB10A2Typeless",
	"RGBA16Typeless",
	"RGBA32Typeless",
	"R24G8Typeless",
	"R32G8X24Typeless",
}

// families maps every concrete format that has a typeless family to it.
var families = map[gputypes.TextureFormat]gputypes.TextureFormat{
	gputypes.TextureFormatR8Unorm: R8Typeless,
	gputypes.TextureFormatR8Snorm: R8Typeless,
	gputypes.TextureFormatR8Uint:  R8Typeless,
	gputypes.TextureFormatR8Sint:  R8Typeless,

	gputypes.TextureFormatRG8Unorm: RG8Typeless,
	gputypes.TextureFormatRG8Snorm: RG8Typeless,
	gputypes.TextureFormatRG8Uint:  RG8Typeless,
	gputypes.TextureFormatRG8Sint:  RG8Typeless,

	gputypes.TextureFormatR16Unorm: R16Typeless,
	gputypes.TextureFormatR16Snorm: R16Typeless,
	gputypes.TextureFormatR16Uint:  R16Typeless,
	gputypes.TextureFormatR16Sint:  R16Typeless,
	gputypes.TextureFormatR16Float: R16Typeless,

	gputypes.TextureFormatRG16Unorm: RG16Typeless,
	gputypes.TextureFormatRG16Snorm: RG16Typeless,
	gputypes.TextureFormatRG16Uint:  RG16Typeless,
	gputypes.TextureFormatRG16Sint:  RG16Typeless,
	gputypes.TextureFormatRG16Float: RG16Typeless,

	gputypes.TextureFormatR32Float: R32Typeless,
	gputypes.TextureFormatR32Uint:  R32Typeless,
	gputypes.TextureFormatR32Sint:  R32Typeless,

	gputypes.TextureFormatRG32Float: RG32Typeless,
	gputypes.TextureFormatRG32Uint:  RG32Typeless,
	gputypes.TextureFormatRG32Sint:  RG32Typeless,

	gputypes.TextureFormatRGBA8Unorm:     RGBA8Typeless,
	gputypes.TextureFormatRGBA8UnormSrgb: RGBA8Typeless,
	gputypes.TextureFormatRGBA8Snorm:     RGBA8Typeless,
	gputypes.TextureFormatRGBA8Uint:      RGBA8Typeless,
	gputypes.TextureFormatRGBA8Sint:      RGBA8Typeless,

	gputypes.TextureFormatBGRA8Unorm:     BGRA8Typeless,
	gputypes.TextureFormatBGRA8UnormSrgb: BGRA8Typeless,

	gputypes.TextureFormatRGB10A2Unorm: RGB10A2Typeless,
	gputypes.TextureFormatRGB10A2Uint:  RGB10A2Typeless,

	gputypes.TextureFormatRGBA16Unorm: RGBA16Typeless,
	gputypes.TextureFormatRGBA16Snorm: RGBA16Typeless,
	gputypes.TextureFormatRGBA16Uint:  RGBA16Typeless,
	gputypes.TextureFormatRGBA16Sint:  RGBA16Typeless,
	gputypes.TextureFormatRGBA16Float: RGBA16Typeless,

	gputypes.TextureFormatRGBA32Float: RGBA32Typeless,
	gputypes.TextureFormatRGBA32Uint:  RGBA32Typeless,
	gputypes.TextureFormatRGBA32Sint:  RGBA32Typeless,

	gputypes.TextureFormatDepth16Unorm:         R16Typeless,
	gputypes.TextureFormatDepth24Plus:          R24G8Typeless,
	gputypes.TextureFormatDepth24PlusStencil8:  R24G8Typeless,
	gputypes.TextureFormatDepth32Float:         R32Typeless,
	gputypes.TextureFormatDepth32FloatStencil8: R32G8X24Typeless,
}

// IsTypeless reports whether f is a typeless family placeholder.
func IsTypeless(f gputypes.TextureFormat) bool {
	return f >= typelessBase && f < typelessEnd
}

// TypelessOf returns the typeless family of a concrete format.
// The second result is false when f has no family (Stencil8, compressed
// formats) or is already typeless.
func TypelessOf(f gputypes.TextureFormat) (gputypes.TextureFormat, bool) {
	fam, ok := families[f]
	return fam, ok
}

// Compatible reports whether a view of format view may be created over a
// texture of format texture. Identical formats are always compatible; over
// a typeless texture any member of the family is; otherwise only the sRGB
// twin of the same family is.
func Compatible(view, texture gputypes.TextureFormat) bool {
	if view == texture {
		return true
	}
	if IsTypeless(view) {
		return false
	}
	fam, ok := families[view]
	if !ok {
		return false
	}
	if IsTypeless(texture) {
		return fam == texture
	}
	if texture.IsDepthStencil() || view.IsDepthStencil() {
		return false
	}
	return families[texture] == fam && view.IsSrgb() != texture.IsSrgb()
}

// concrete lists, per typeless family, the member used to allocate
// storage on APIs without typeless formats: color first, then depth.
var concrete = [...][2]gputypes.TextureFormat{
	{gputypes.TextureFormatR8Unorm, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatR16Float, gputypes.TextureFormatDepth16Unorm},
	{gputypes.TextureFormatRG16Float, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatR32Float, gputypes.TextureFormatDepth32Float},
	{gputypes.TextureFormatRG32Float, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatRGB10A2Unorm, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatRGBA32Float, gputypes.TextureFormatUndefined},
	{gputypes.TextureFormatUndefined, gputypes.TextureFormatDepth24PlusStencil8},
	{gputypes.TextureFormatUndefined, gputypes.TextureFormatDepth32FloatStencil8},
}

// Resolve returns the concrete member of a typeless family that backs
// storage for it. depth selects the depth member of the family. Concrete
// formats are returned unchanged. The second result is false when the
// family has no member of the requested kind.
func Resolve(f gputypes.TextureFormat, depth bool) (gputypes.TextureFormat, bool) {
	if !IsTypeless(f) {
		return f, true
	}
	pair := concrete[f-typelessBase]
	if depth {
		return pair[1], pair[1] != gputypes.TextureFormatUndefined
	}
	return pair[0], pair[0] != gputypes.TextureFormatUndefined
}

// HasDepth reports whether f carries a depth aspect.
func HasDepth(f gputypes.TextureFormat) bool {
	return f.HasDepth()
}

// HasStencil reports whether f carries a stencil aspect.
func HasStencil(f gputypes.TextureFormat) bool {
	return f.HasStencil()
}

// IsDepthStencil reports whether f is a concrete depth and/or stencil format.
func IsDepthStencil(f gputypes.TextureFormat) bool {
	return f.IsDepthStencil()
}

// IsDisplayCapable reports whether f can back a presentable surface on any
// platform. Devices narrow this further with their own display query.
func IsDisplayCapable(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatRGBA16Float,
		gputypes.TextureFormatRGB10A2Unorm:
		return true
	default:
		return false
	}
}

// Name returns a printable name for f, including typeless families.
func Name(f gputypes.TextureFormat) string {
	if IsTypeless(f) {
		return typelessNames[f-typelessBase]
	}
	return f.String()
}
