// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sdlwin adapts SDL2 windows to the wsi contracts.
//
// Window events are translated to [wsi.Signals] by [Window.HandleEvent],
// which the application calls from its SDL event loop. SDL does not bracket
// interactive resizes, so no resize-begin or resize-end notifications are
// emitted; every size change is delivered immediately. Fullscreen is
// borderless (SDL_WINDOW_FULLSCREEN_DESKTOP), and SDL display modes are
// exposed as [wsi.Output] values.
package sdlwin

import (
	"fmt"
	"sync"

	"github.com/gogpu/present"
	"github.com/gogpu/present/wsi"
	"github.com/veandco/go-sdl2/sdl"
)

// handle is the part of *sdl.Window the adapter uses.
type handle interface {
	GetID() (uint32, error)
	GetSize() (int32, int32)
	SetSize(w, h int32)
	GetFlags() uint32
	Show()
	SetFullscreen(flags uint32) error
	GetDisplayIndex() (int, error)
	GetWMInfo() (*sdl.SysWMInfo, error)
}

// Window wraps an *sdl.Window.
type Window struct {
	wsi.Dispatcher

	win      handle
	id       uint32
	displays displaySource

	mu        sync.Mutex
	maximized bool
}

// Ensure Window implements the window contracts.
var (
	_ wsi.Window        = (*Window)(nil)
	_ wsi.Signals       = (*Window)(nil)
	_ wsi.Resizer       = (*Window)(nil)
	_ wsi.Fullscreener  = (*Window)(nil)
	_ wsi.NativeHandles = (*Window)(nil)
	_ wsi.OutputLocator = (*Window)(nil)
)

// New wraps win. The window stays owned by the caller.
func New(win *sdl.Window) (*Window, error) {
	return newWindow(win, sdlDisplays{})
}

func newWindow(win handle, displays displaySource) (*Window, error) {
	id, err := win.GetID()
	if err != nil {
		return nil, fmt.Errorf("sdlwin: window id: %w", err)
	}
	return &Window{
		win:       win,
		id:        id,
		displays:  displays,
		maximized: win.GetFlags()&uint32(sdl.WINDOW_MAXIMIZED) != 0,
	}, nil
}

// ID returns the SDL window id events are matched against.
func (w *Window) ID() uint32 { return w.id }

// HandleEvent translates e into signals when it is a window event for this
// window. It reports whether the event was consumed.
func (w *Window) HandleEvent(e sdl.Event) bool {
	we, ok := e.(*sdl.WindowEvent)
	if !ok || we.WindowID != w.id {
		return false
	}
	switch we.Event {
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		w.EmitResize(w.resizeReason(), int(we.Data1), int(we.Data2))
	case sdl.WINDOWEVENT_FOCUS_GAINED:
		w.EmitActivated()
	case sdl.WINDOWEVENT_FOCUS_LOST:
		w.EmitDeactivated()
	default:
		return false
	}
	return true
}

// resizeReason derives the cause of a size change from the maximized flag.
func (w *Window) resizeReason() wsi.ResizeReason {
	maximized := w.win.GetFlags()&uint32(sdl.WINDOW_MAXIMIZED) != 0

	w.mu.Lock()
	was := w.maximized
	w.maximized = maximized
	w.mu.Unlock()

	switch {
	case maximized && !was:
		return wsi.ResizeMaximize
	case !maximized && was:
		return wsi.ResizeRestore
	default:
		return wsi.ResizeProgrammatic
	}
}

// Handle returns the platform window handle, or 0 when SDL cannot report
// one.
func (w *Window) Handle() uintptr {
	_, h := w.NativeHandles()
	return h
}

// NativeHandles returns the display connection and window handle for X11
// and Windows. Other subsystems report zeros.
func (w *Window) NativeHandles() (display, window uintptr) {
	info, err := w.win.GetWMInfo()
	if err != nil {
		present.Logger().Debug("sdlwin: no window manager info", "window", w.id, "err", err)
		return 0, 0
	}
	switch info.Subsystem {
	case sdl.SYSWM_X11:
		x := info.GetX11Info()
		return uintptr(x.Display), uintptr(x.Window)
	case sdl.SYSWM_WINDOWS:
		return 0, uintptr(info.GetWindowsInfo().Window)
	default:
		return 0, 0
	}
}

// ClientSize returns the window size. Outside high-DPI mode SDL screen
// coordinates are pixels.
func (w *Window) ClientSize() (width, height int) {
	cw, ch := w.win.GetSize()
	return int(cw), int(ch)
}

// SetClientSize resizes the window.
func (w *Window) SetClientSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("sdlwin: invalid size %dx%d", width, height)
	}
	w.win.SetSize(int32(width), int32(height))
	return nil
}

// IsTopLevel reports true: SDL windows are always top-level.
func (w *Window) IsTopLevel() bool { return true }

// IsMinimized reports the SDL minimized flag.
func (w *Window) IsMinimized() bool {
	return w.win.GetFlags()&uint32(sdl.WINDOW_MINIMIZED) != 0
}

// Visible reports the SDL shown flag.
func (w *Window) Visible() bool {
	return w.win.GetFlags()&uint32(sdl.WINDOW_SHOWN) != 0
}

// Show shows the window.
func (w *Window) Show() { w.win.Show() }

// SetFullscreen switches between desktop fullscreen and windowed.
func (w *Window) SetFullscreen(fullscreen bool) {
	var flags uint32
	if fullscreen {
		flags = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	if err := w.win.SetFullscreen(flags); err != nil {
		present.Logger().Warn("sdlwin: fullscreen switch failed", "window", w.id, "fullscreen", fullscreen, "err", err)
	}
}

// IsFullscreen reports whether any SDL fullscreen flag is set.
func (w *Window) IsFullscreen() bool {
	return w.win.GetFlags()&uint32(sdl.WINDOW_FULLSCREEN) != 0
}

// ContainingOutput returns the display the window is on.
func (w *Window) ContainingOutput() (wsi.Output, error) {
	index, err := w.win.GetDisplayIndex()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wsi.ErrNoOutput, err)
	}
	return outputFor(w.displays, index)
}
