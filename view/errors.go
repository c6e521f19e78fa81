// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import "errors"

// Validation errors. Construction wraps them with the view name and the
// offending values.
var (
	// ErrNilDevice is returned when no device is given.
	ErrNilDevice = errors.New("view: nil device")

	// ErrNilTexture is returned when no texture is given.
	ErrNilTexture = errors.New("view: nil texture")

	// ErrInvalidKind is returned for a Kind outside the closed set.
	ErrInvalidKind = errors.New("view: invalid view kind")

	// ErrDimension is returned when the texture dimensionality does not match
	// the view kind.
	ErrDimension = errors.New("view: texture dimension does not match view kind")

	// ErrTypelessFormat is returned when the view format is a typeless family.
	ErrTypelessFormat = errors.New("view: typeless format")

	// ErrFormatMismatch is returned when the view format cannot reinterpret
	// the texture format, or has the wrong aspects for the view kind.
	ErrFormatMismatch = errors.New("view: format incompatible with texture or view kind")

	// ErrSliceRange is returned when the array or depth range exceeds the
	// texture.
	ErrSliceRange = errors.New("view: slice range out of bounds")

	// ErrMissingBinding is returned when the texture lacks the bind flag the
	// view kind requires.
	ErrMissingBinding = errors.New("view: texture missing required bind flag")

	// ErrShaderReadableDepth is returned for a depth-stencil view over a
	// texture that is both shader-readable and not typeless.
	ErrShaderReadableDepth = errors.New("view: depth-stencil texture is shader-readable but not typeless")

	// ErrInvalidSize is returned by NewOwned for a zero width or height.
	ErrInvalidSize = errors.New("view: invalid texture size")

	// ErrWrongKind is returned when a clear does not match the view kind.
	ErrWrongKind = errors.New("view: operation not valid for view kind")

	// ErrDisposed is returned by operations on a disposed view.
	ErrDisposed = errors.New("view: view is disposed")
)
