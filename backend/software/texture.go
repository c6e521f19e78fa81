// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
)

// plane is one subresource: a mip level of one array layer or depth slice.
type plane struct {
	w, h    int
	rgba    *image.RGBA
	depth   []float32
	stencil []uint8
}

func (p *plane) fillDepthStencil(r image.Rectangle, flags device.ClearFlags, depth float32, stencil uint8) {
	r = r.Intersect(image.Rect(0, 0, p.w, p.h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * p.w
		for x := r.Min.X; x < r.Max.X; x++ {
			if flags&device.ClearDepth != 0 {
				p.depth[row+x] = depth
			}
			if flags&device.ClearStencil != 0 {
				p.stencil[row+x] = stencil
			}
		}
	}
}

// Texture is a software texture. Color textures hold image.RGBA planes;
// depth-stencil textures hold depth and stencil planes.
type Texture struct {
	dev    *Device
	desc   device.TextureDescriptor
	planes [][]*plane // [mip][slice]

	// chain is set for swap chain back buffers. Destroying a back buffer
	// releases a reference instead of the storage.
	chain *SwapChain

	destroys atomic.Int32
}

// Ensure Texture implements device.Texture.
var _ device.Texture = (*Texture)(nil)

func newTexture(d *Device, desc device.TextureDescriptor) *Texture {
	t := &Texture{dev: d, desc: desc}
	ds := desc.Usage.Has(device.BindDepthStencil)
	t.planes = make([][]*plane, desc.MipLevelCount)
	for mip := range t.planes {
		w, h, depth := desc.MipSize(uint32(mip))
		slices := desc.ArraySize()
		if desc.Dimension == gputypes.TextureDimension3D {
			slices = depth
		}
		t.planes[mip] = make([]*plane, slices)
		for s := range t.planes[mip] {
			p := &plane{w: int(w), h: int(h)}
			if ds {
				p.depth = make([]float32, p.w*p.h)
				p.stencil = make([]uint8, p.w*p.h)
			} else {
				p.rgba = image.NewRGBA(image.Rect(0, 0, p.w, p.h))
			}
			t.planes[mip][s] = p
		}
	}
	return t
}

// Descriptor returns the creation parameters.
func (t *Texture) Descriptor() device.TextureDescriptor { return t.desc }

// Destroy frees the texture. Back buffers release one reference instead.
func (t *Texture) Destroy() {
	if t.chain != nil {
		t.chain.releaseRef()
		return
	}
	if t.destroys.Add(1) != 1 {
		return
	}
	t.dev.mu.Lock()
	t.dev.stats.TexturesDestroyed++
	t.dev.mu.Unlock()
}

// DestroyCount returns how many times Destroy was called.
func (t *Texture) DestroyCount() int { return int(t.destroys.Load()) }

// IsDestroyed reports whether the texture storage was destroyed.
func (t *Texture) IsDestroyed() bool {
	if t.chain != nil {
		return t.chain.isReleased()
	}
	return t.destroys.Load() > 0
}

func (t *Texture) plane(mip, slice int) *plane {
	if mip < 0 || mip >= len(t.planes) || slice < 0 || slice >= len(t.planes[mip]) {
		return nil
	}
	return t.planes[mip][slice]
}

// Image returns the color plane of mip and slice, or nil.
func (t *Texture) Image(mip, slice int) *image.RGBA {
	if p := t.plane(mip, slice); p != nil {
		return p.rgba
	}
	return nil
}

// RGBAAt returns the color at (x, y) of mip and slice.
func (t *Texture) RGBAAt(mip, slice, x, y int) color.RGBA {
	if img := t.Image(mip, slice); img != nil {
		return img.RGBAAt(x, y)
	}
	return color.RGBA{}
}

// DepthAt returns the depth at (x, y) of mip and slice.
func (t *Texture) DepthAt(mip, slice, x, y int) float32 {
	p := t.plane(mip, slice)
	if p == nil || p.depth == nil || x < 0 || y < 0 || x >= p.w || y >= p.h {
		return 0
	}
	return p.depth[y*p.w+x]
}

// StencilAt returns the stencil value at (x, y) of mip and slice.
func (t *Texture) StencilAt(mip, slice, x, y int) uint8 {
	p := t.plane(mip, slice)
	if p == nil || p.stencil == nil || x < 0 || y < 0 || x >= p.w || y >= p.h {
		return 0
	}
	return p.stencil[y*p.w+x]
}

// View is a software native view.
type View struct {
	tex      *Texture
	desc     device.ViewDescriptor
	destroys atomic.Int32
}

// Ensure View implements device.NativeView.
var _ device.NativeView = (*View)(nil)

// Destroy releases the view.
func (v *View) Destroy() {
	if v.destroys.Add(1) != 1 {
		return
	}
	v.tex.dev.mu.Lock()
	v.tex.dev.stats.ViewsDestroyed++
	v.tex.dev.mu.Unlock()
}

// DestroyCount returns how many times Destroy was called.
func (v *View) DestroyCount() int { return int(v.destroys.Load()) }

// IsDestroyed reports whether Destroy was called.
func (v *View) IsDestroyed() bool { return v.destroys.Load() > 0 }

// Texture returns the viewed texture.
func (v *View) Texture() *Texture { return v.tex }

// Descriptor returns the descriptor the view was created with.
func (v *View) Descriptor() device.ViewDescriptor { return v.desc }

// eachPlane calls fn for every subresource the view covers.
func (v *View) eachPlane(fn func(*plane)) {
	mip := int(v.desc.MipSlice)
	for s := v.desc.FirstSlice; s < v.desc.FirstSlice+v.desc.SliceCount; s++ {
		if p := v.tex.plane(mip, int(s)); p != nil {
			fn(p)
		}
	}
}
