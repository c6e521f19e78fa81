// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/format"
	"github.com/gogpu/present/view"
	"github.com/gogpu/present/wsi"
)

// Back buffer list sizes. Flip-model chains rotate three buffers; simple
// chains blit from one.
const (
	simpleBuffers = 1
	flipBuffers   = 3
)

// Native buffer counts requested on resize.
const (
	windowedBufferCount   = 2
	fullScreenBufferCount = 3
)

// Surface is a swap chain bound to one window for its entire life.
type Surface struct {
	dev    device.Device
	win    wsi.Window
	native device.SwapChain
	params Parameters
	opts   options

	// buffers has a fixed length chosen at creation; entries past the
	// native buffer count stay nil.
	buffers    []device.Texture
	backBuffer *view.View

	mode              Mode
	resizing          bool
	modeTransitioning bool
	standBy           bool
	manualResize      bool

	width, height int
	format        gputypes.TextureFormat
	bufferCount   int

	windowedWidth, windowedHeight int

	fsOutput  wsi.Output
	fsMode    wsi.DisplayMode
	fsRequest wsi.DisplayMode

	beforeResize hooks
	afterResize  hooks

	coordinator *Coordinator
}

// New validates params, creates the native swap chain bound to win and
// allocates the back buffers and the view over back buffer 0.
//
// Invalid dimensions and non-displayable formats fail with
// ErrInvalidDimensions and ErrFormatNotDisplayable. A hidden window is
// shown. The window system's own fullscreen switching is disabled because
// the surface handles mode changes itself.
func New(dev device.Device, win wsi.Window, params Parameters, opts ...Option) (*Surface, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilDevice, params.Name)
	}
	if win == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilWindow, params.Name)
	}
	if params.Width < 1 || params.Height < 1 {
		return nil, fmt.Errorf("%w: %q: width=%d, height=%d", ErrInvalidDimensions, params.Name, params.Width, params.Height)
	}
	if !format.IsDisplayCapable(params.Format) || !dev.IsDisplayFormat(params.Format) {
		return nil, fmt.Errorf("%w: %q: %s", ErrFormatNotDisplayable, params.Name, format.Name(params.Format))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Surface{
		dev:            dev,
		win:            win,
		params:         params,
		opts:           o,
		width:          params.Width,
		height:         params.Height,
		format:         params.Format,
		windowedWidth:  params.Width,
		windowedHeight: params.Height,
	}

	if !win.Visible() {
		win.Show()
	}

	listSize := simpleBuffers
	if params.FlipModel {
		listSize = flipBuffers
	}
	native, err := dev.CreateSwapChain(win, &device.SwapChainDescriptor{
		Label:       params.Name,
		Width:       params.Width,
		Height:      params.Height,
		Format:      params.Format,
		BufferCount: listSize,
		FlipModel:   params.FlipModel,
		Stretch:     params.Stretch,
	})
	if err != nil {
		return nil, device.Unrecoverable(params.Name, "CreateSwapChain", err)
	}
	s.native = native

	if err := native.SetAutoModeSwitch(false); err != nil {
		native.Release()
		return nil, device.Unrecoverable(params.Name, "SetAutoModeSwitch", err)
	}

	s.buffers = make([]device.Texture, listSize)
	s.bufferCount = native.BufferCount()
	if err := s.createBuffers(); err != nil {
		native.Release()
		return nil, err
	}

	if sig, ok := win.(wsi.Signals); ok && o.attach {
		s.coordinator = NewCoordinator(s, o.exitOnFocusLoss)
		s.coordinator.Attach(sig)
	}

	s.logger().Info("swapchain: created",
		"name", params.Name, "width", params.Width, "height", params.Height,
		"format", format.Name(params.Format), "buffers", s.bufferCount, "flip", params.FlipModel)

	if params.FullScreen {
		output, err := native.ContainingOutput()
		if err == nil {
			err = s.EnterFullScreen(wsi.DisplayMode{Width: params.Width, Height: params.Height, Format: params.Format}, output)
		}
		if err != nil {
			s.Dispose()
			return nil, err
		}
	}
	return s, nil
}

func (s *Surface) logger() *slog.Logger {
	if s.opts.logger != nil {
		return s.opts.logger
	}
	return present.Logger()
}

// createBuffers fetches min(list size, native count) back buffers and
// creates the render-target view over buffer 0.
func (s *Surface) createBuffers() error {
	n := min(len(s.buffers), s.bufferCount)
	for i := 0; i < n; i++ {
		tex, err := s.native.BackBuffer(i)
		if err != nil {
			s.releaseBuffers()
			return device.Unrecoverable(s.params.Name, fmt.Sprintf("BackBuffer(%d)", i), err)
		}
		s.buffers[i] = tex
	}

	v, err := view.NewRenderTarget2D(s.dev, view.Params{
		Texture: s.buffers[0],
		Format:  s.format,
		Name:    s.params.Name + " back buffer",
	})
	if err != nil {
		s.releaseBuffers()
		return fmt.Errorf("swapchain %q: back buffer view: %w", s.params.Name, err)
	}
	s.backBuffer = v
	return nil
}

// releaseBuffers drops the view and every back buffer reference.
func (s *Surface) releaseBuffers() {
	if s.backBuffer != nil {
		s.backBuffer.Dispose()
		s.backBuffer = nil
	}
	for i, tex := range s.buffers {
		if tex != nil {
			tex.Destroy()
			s.buffers[i] = nil
		}
	}
}

// Dispose detaches from the window, releases the back buffers, leaves
// fullscreen if needed and releases the native swap chain. Later calls do
// nothing.
func (s *Surface) Dispose() {
	if s.native == nil {
		return
	}
	if s.coordinator != nil {
		s.coordinator.Detach()
		s.coordinator = nil
	}
	s.releaseBuffers()

	if s.mode == FullScreen {
		// Native fullscreen swap chains cannot be destroyed directly.
		if err := s.native.SetFullscreen(false, nil); err != nil {
			s.logger().Warn("swapchain: leaving fullscreen on dispose failed", "name", s.params.Name, "err", err)
		}
		s.mode = Windowed
		s.clearFullScreenState()
	}

	s.native.Release()
	s.native = nil
	s.beforeResize.clear()
	s.afterResize.clear()
	s.logger().Info("swapchain: disposed", "name", s.params.Name)
}

// IsDisposed reports whether Dispose has been called.
func (s *Surface) IsDisposed() bool { return s.native == nil }

// Name returns the surface name.
func (s *Surface) Name() string { return s.params.Name }

// Parameters returns the creation parameters.
func (s *Surface) Parameters() Parameters { return s.params }

// Window returns the bound window.
func (s *Surface) Window() wsi.Window { return s.win }

// Device returns the device the surface was created on.
func (s *Surface) Device() device.Device { return s.dev }

// Native returns the native swap chain, or nil once disposed.
func (s *Surface) Native() device.SwapChain { return s.native }

// Coordinator returns the attached coordinator, or nil.
func (s *Surface) Coordinator() *Coordinator { return s.coordinator }

// Mode returns the presentation mode.
func (s *Surface) Mode() Mode { return s.mode }

// IsFullScreen reports whether the surface is in fullscreen mode.
func (s *Surface) IsFullScreen() bool { return s.mode == FullScreen }

// IsStandBy reports whether presentation is deferred after a transient
// condition.
func (s *Surface) IsStandBy() bool { return s.standBy }

// IsModeTransitioning reports whether a fullscreen transition is running.
func (s *Surface) IsModeTransitioning() bool { return s.modeTransitioning }

// IsResizing reports whether back buffers are being rebuilt.
func (s *Surface) IsResizing() bool { return s.resizing }

// Width returns the back buffer width.
func (s *Surface) Width() int { return s.width }

// Height returns the back buffer height.
func (s *Surface) Height() int { return s.height }

// Format returns the back buffer format.
func (s *Surface) Format() gputypes.TextureFormat { return s.format }

// BufferCount returns the native back buffer count.
func (s *Surface) BufferCount() int { return s.bufferCount }

// BackBuffer returns the render-target view over back buffer 0. The view
// is replaced on every resize and mode transition; do not keep it across
// OnBeforeResize.
func (s *Surface) BackBuffer() *view.View { return s.backBuffer }

// BackBuffers returns the fetched back buffer textures.
func (s *Surface) BackBuffers() []device.Texture {
	out := make([]device.Texture, 0, len(s.buffers))
	for _, t := range s.buffers {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// FullScreenState returns the output and display mode of the current
// fullscreen session. ok is false when windowed.
func (s *Surface) FullScreenState() (output wsi.Output, mode wsi.DisplayMode, ok bool) {
	if s.mode != FullScreen {
		return nil, wsi.DisplayMode{}, false
	}
	return s.fsOutput, s.fsMode, true
}

// WindowedSize returns the size restored when leaving fullscreen.
func (s *Surface) WindowedSize() (width, height int) {
	return s.windowedWidth, s.windowedHeight
}

// SetManualResize stops the coordinator from resizing back buffers on
// window resize signals. The caller then calls ResizeBackBuffers itself.
func (s *Surface) SetManualResize(manual bool) { s.manualResize = manual }

// ManualResize reports whether automatic resizing is disabled.
func (s *Surface) ManualResize() bool { return s.manualResize }

func (s *Surface) clearFullScreenState() {
	s.fsOutput = nil
	s.fsMode = wsi.DisplayMode{}
	s.fsRequest = wsi.DisplayMode{}
}
