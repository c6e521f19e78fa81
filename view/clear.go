// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
)

// Clear fills a render-target view with c. With no rectangles the whole
// view is cleared; otherwise only the parts of rects inside the view.
func (v *View) Clear(c gputypes.Color, rects ...image.Rectangle) error {
	if v.kind.IsDepthStencil() {
		return fmt.Errorf("%w: Clear on %s %q", ErrWrongKind, v.kind, v.desc.Label)
	}
	h := v.h.Load()
	if h == nil {
		return fmt.Errorf("%w: %q", ErrDisposed, v.desc.Label)
	}
	clip, ok := v.clip(rects)
	if !ok {
		return nil
	}
	return v.dev.ClearRenderTarget(h.native, c, clip)
}

// ClearDepthStencil writes depth and stencil to a depth-stencil view.
// Aspects the view format lacks are skipped.
//
// Stencil-bearing formats cannot be cleared partially: when the format has
// a stencil aspect, rects are ignored and the whole view is cleared.
func (v *View) ClearDepthStencil(depth float32, stencil uint8, rects ...image.Rectangle) error {
	return v.clearDepthStencil(device.ClearDepth|device.ClearStencil, depth, stencil, rects)
}

// ClearDepth writes depth to a depth-stencil view. The stencil rule of
// ClearDepthStencil applies to rects.
func (v *View) ClearDepth(depth float32, rects ...image.Rectangle) error {
	return v.clearDepthStencil(device.ClearDepth, depth, 0, rects)
}

// ClearStencil writes stencil to a depth-stencil view. Stencil-bearing
// formats are always cleared whole.
func (v *View) ClearStencil(stencil uint8, rects ...image.Rectangle) error {
	return v.clearDepthStencil(device.ClearStencil, 0, stencil, rects)
}

func (v *View) clearDepthStencil(flags device.ClearFlags, depth float32, stencil uint8, rects []image.Rectangle) error {
	if !v.kind.IsDepthStencil() {
		return fmt.Errorf("%w: depth-stencil clear on %s %q", ErrWrongKind, v.kind, v.desc.Label)
	}
	h := v.h.Load()
	if h == nil {
		return fmt.Errorf("%w: %q", ErrDisposed, v.desc.Label)
	}

	if !format.HasDepth(v.desc.Format) {
		flags &^= device.ClearDepth
	}
	hasStencil := format.HasStencil(v.desc.Format)
	if !hasStencil {
		flags &^= device.ClearStencil
	}
	if flags == 0 {
		return nil
	}

	if hasStencil && len(rects) > 0 {
		present.Logger().Debug("view: partial clear of stencil format, clearing whole view",
			"name", v.desc.Label, "rects", len(rects))
		rects = nil
	}
	clip, ok := v.clip(rects)
	if !ok {
		return nil
	}
	return v.dev.ClearDepthStencil(h.native, flags, depth, stencil, clip)
}

// clip intersects rects with the view bounds into the scratch buffer.
// It returns nil for a full clear and false when nothing is left to clear.
func (v *View) clip(rects []image.Rectangle) ([]image.Rectangle, bool) {
	if len(rects) == 0 {
		return nil, true
	}
	bounds := v.Bounds()
	v.scratch = v.scratch[:0]
	for _, r := range rects {
		if r = r.Intersect(bounds); !r.Empty() {
			v.scratch = append(v.scratch, r)
		}
	}
	if len(v.scratch) == 0 {
		return nil, false
	}
	return v.scratch, true
}
