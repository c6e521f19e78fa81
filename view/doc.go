// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view creates typed, range-validated views over device textures.
//
// A [View] binds one mip level and a contiguous array (or depth) range of a
// texture to a single pipeline stage. The set of view kinds is closed:
// render targets of 1D, 2D and 3D textures, and 2D depth-stencil targets.
// All kinds share one validation routine, [Describe], which turns a kind,
// a texture descriptor and [Params] into a native descriptor.
//
// Views are immutable. [View.Dispose] releases the native view, and the
// texture too when the view owns it ([NewOwned]). Dispose is safe to call
// repeatedly and from several goroutines; everything else assumes a single
// owner.
package view
