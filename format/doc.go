// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package format adds the pixel-format typing that views and swap chains
// need on top of [gputypes.TextureFormat].
//
// WebGPU formats are always concrete. Native APIs additionally have typeless
// family formats: a texture allocated as R24G8Typeless can be viewed both as
// Depth24PlusStencil8 (depth-stencil binding) and as a shader-readable
// channel. This package reserves a private range of TextureFormat values for
// those families so one descriptor type can carry either kind.
package format
