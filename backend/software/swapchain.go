// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/wsi"
	"golang.org/x/image/draw"
)

// Op names a swap chain operation for result scripting and call counting.
type Op string

// Swap chain operations.
const (
	OpResizeBuffers  Op = "ResizeBuffers"
	OpResizeTarget   Op = "ResizeTarget"
	OpSetFullscreen  Op = "SetFullscreen"
	OpAutoModeSwitch Op = "SetAutoModeSwitch"
	OpPresent        Op = "Present"
)

// ErrOutstandingReferences is returned by ResizeBuffers while back buffer
// references are still held.
var ErrOutstandingReferences = errors.New("software: back buffer references outstanding")

// FrameSink receives presented frames. [Window] implements it.
type FrameSink interface {
	// Frame returns the destination image, sized to the client area.
	Frame() *image.RGBA
}

// SwapChain is a software swap chain.
type SwapChain struct {
	dev *Device
	win wsi.Window

	mu          sync.Mutex
	desc        device.SwapChainDescriptor
	buffers     []*Texture
	refs        int
	fullscreen  bool
	output      wsi.Output
	autoSwitch  bool
	released    bool
	releasedFS  bool
	calls       map[Op]int
	scripted    map[Op][]error
	targets     []wsi.DisplayMode
	lastPresent int
}

// Ensure SwapChain implements device.SwapChain.
var _ device.SwapChain = (*SwapChain)(nil)

func newSwapChain(d *Device, win wsi.Window, desc device.SwapChainDescriptor) (*SwapChain, error) {
	if desc.BufferCount < 1 {
		desc.BufferCount = 1
	}
	sc := &SwapChain{
		dev:        d,
		win:        win,
		desc:       desc,
		autoSwitch: true,
		calls:      make(map[Op]int),
		scripted:   make(map[Op][]error),
	}
	if err := sc.allocate(desc.BufferCount, desc.Width, desc.Height, desc.Format); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *SwapChain) allocate(count, width, height int, f gputypes.TextureFormat) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: swap chain %q %dx%d", ErrInvalidDescriptor, sc.desc.Label, width, height)
	}
	buffers := make([]*Texture, count)
	for i := range buffers {
		td := device.DefaultTextureDescriptor(uint32(width), uint32(height), f)
		td.Label = fmt.Sprintf("%s back buffer %d", sc.desc.Label, i)
		td.Usage = device.BindRenderTarget | device.BindCopySrc
		t := newTexture(sc.dev, td)
		t.chain = sc
		buffers[i] = t
	}
	sc.buffers = buffers
	sc.desc.BufferCount = count
	sc.desc.Width, sc.desc.Height, sc.desc.Format = width, height, f
	return nil
}

// Script queues results for op. Each call to op consumes one result; an
// exhausted queue means success.
func (sc *SwapChain) Script(op Op, results ...error) {
	sc.mu.Lock()
	sc.scripted[op] = append(sc.scripted[op], results...)
	sc.mu.Unlock()
}

// Calls returns how many times op was called.
func (sc *SwapChain) Calls(op Op) int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (sc *SwapChain) TotalCalls() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	n := 0
	for _, c := range sc.calls {
		n += c
	}
	return n
}

// Targets returns the modes passed to ResizeTarget in order.
func (sc *SwapChain) Targets() []wsi.DisplayMode {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return append([]wsi.DisplayMode(nil), sc.targets...)
}

// Descriptor returns the current buffer configuration.
func (sc *SwapChain) Descriptor() device.SwapChainDescriptor {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.desc
}

// IsFullscreen reports the native fullscreen state.
func (sc *SwapChain) IsFullscreen() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.fullscreen
}

// AutoModeSwitch reports whether window-system mode switching is enabled.
func (sc *SwapChain) AutoModeSwitch() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.autoSwitch
}

// References returns the number of outstanding back buffer references.
func (sc *SwapChain) References() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.refs
}

// Released reports whether Release was called.
func (sc *SwapChain) Released() bool { return sc.isReleased() }

// ReleasedWhileFullscreen reports whether Release found the swap chain in
// fullscreen, which native platforms forbid.
func (sc *SwapChain) ReleasedWhileFullscreen() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.releasedFS
}

// LastInterval returns the sync interval of the last shown frame.
func (sc *SwapChain) LastInterval() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.lastPresent
}

func (sc *SwapChain) isReleased() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.released
}

func (sc *SwapChain) releaseRef() {
	sc.mu.Lock()
	if sc.refs > 0 {
		sc.refs--
	}
	sc.mu.Unlock()
}

// begin counts a call and pops its scripted result. Must be called with
// sc.mu held.
func (sc *SwapChain) begin(op Op) error {
	sc.calls[op]++
	q := sc.scripted[op]
	if len(q) == 0 {
		return nil
	}
	sc.scripted[op] = q[1:]
	return q[0]
}

// BufferCount returns the number of back buffers.
func (sc *SwapChain) BufferCount() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.buffers)
}

// BackBuffer returns a reference to back buffer index.
func (sc *SwapChain) BackBuffer(index int) (device.Texture, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return nil, fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	}
	if index < 0 || index >= len(sc.buffers) {
		return nil, fmt.Errorf("software: back buffer %d out of range [0, %d)", index, len(sc.buffers))
	}
	sc.refs++
	return sc.buffers[index], nil
}

// ResizeBuffers reallocates the back buffers. Zero count, width or height
// keep the current count or use the window client size; an undefined format
// keeps the current format.
func (sc *SwapChain) ResizeBuffers(count, width, height int, f gputypes.TextureFormat) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.begin(OpResizeBuffers); err != nil {
		return err
	}
	if sc.refs > 0 {
		return fmt.Errorf("%w: %d", ErrOutstandingReferences, sc.refs)
	}
	if count == 0 {
		count = len(sc.buffers)
	}
	if width == 0 || height == 0 {
		cw, ch := sc.win.ClientSize()
		if width == 0 {
			width = cw
		}
		if height == 0 {
			height = ch
		}
	}
	if f == gputypes.TextureFormatUndefined {
		f = sc.desc.Format
	}
	return sc.allocate(count, width, height, f)
}

// ResizeTarget records the mode and resizes the window client area when the
// window supports it.
func (sc *SwapChain) ResizeTarget(mode wsi.DisplayMode) error {
	sc.mu.Lock()
	err := sc.begin(OpResizeTarget)
	if err == nil {
		sc.targets = append(sc.targets, mode)
	}
	sc.mu.Unlock()
	if err != nil {
		return err
	}
	if r, ok := sc.win.(wsi.Resizer); ok && mode.Width > 0 && mode.Height > 0 {
		return r.SetClientSize(mode.Width, mode.Height)
	}
	return nil
}

// SetFullscreen switches the fullscreen state. Child windows cannot go
// fullscreen.
func (sc *SwapChain) SetFullscreen(fullscreen bool, output wsi.Output) error {
	if fullscreen && output == nil {
		var err error
		if output, err = sc.ContainingOutput(); err != nil {
			return err
		}
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.begin(OpSetFullscreen); err != nil {
		return err
	}
	if fullscreen && !sc.win.IsTopLevel() {
		return fmt.Errorf("%w: fullscreen on a child window", device.ErrUnsupported)
	}
	sc.fullscreen = fullscreen
	if fullscreen {
		sc.output = output
	} else {
		sc.output = nil
	}
	if fs, ok := sc.win.(wsi.Fullscreener); ok {
		fs.SetFullscreen(fullscreen)
	}
	return nil
}

// SetAutoModeSwitch records the window-system mode switch policy.
func (sc *SwapChain) SetAutoModeSwitch(enabled bool) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.begin(OpAutoModeSwitch); err != nil {
		return err
	}
	sc.autoSwitch = enabled
	return nil
}

// ContainingOutput returns the window's output, or the device output.
func (sc *SwapChain) ContainingOutput() (wsi.Output, error) {
	if loc, ok := sc.win.(wsi.OutputLocator); ok {
		if out, err := loc.ContainingOutput(); err == nil {
			return out, nil
		}
	}
	return sc.dev.output, nil
}

// Present copies back buffer 0 into the window frame. Windows reporting
// occlusion or minimization yield device.ErrOccluded.
func (sc *SwapChain) Present(interval int, flags device.PresentFlags) error {
	sc.mu.Lock()
	err := sc.begin(OpPresent)
	released := sc.released
	var src *image.RGBA
	if len(sc.buffers) > 0 {
		src = sc.buffers[0].Image(0, 0)
	}
	stretch := sc.desc.Stretch
	sc.mu.Unlock()

	switch {
	case err != nil:
		return err
	case released:
		return fmt.Errorf("%w: swap chain %q", ErrDestroyed, sc.desc.Label)
	case sc.win.IsMinimized():
		return device.ErrOccluded
	}
	if o, ok := sc.win.(interface{ Occluded() bool }); ok && o.Occluded() {
		return device.ErrOccluded
	}
	if flags&device.PresentTest != 0 {
		return nil
	}

	if sink, ok := sc.win.(FrameSink); ok && src != nil {
		blit(sink.Frame(), src, stretch)
	}
	sc.mu.Lock()
	sc.lastPresent = interval
	sc.mu.Unlock()
	return nil
}

func blit(dst, src *image.RGBA, stretch bool) {
	if dst == nil {
		return
	}
	if stretch && dst.Bounds().Size() != src.Bounds().Size() {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return
	}
	draw.Copy(dst, dst.Bounds().Min, src, src.Bounds(), draw.Src, nil)
}

// Release destroys the swap chain.
func (sc *SwapChain) Release() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return
	}
	sc.released = true
	sc.releasedFS = sc.fullscreen
	sc.buffers = nil
}
