// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/wsi"
)

func newChain(t *testing.T, w *Window, stretch bool) (*Device, *SwapChain) {
	t.Helper()
	d := New(Options{})
	cw, ch := w.ClientSize()
	sc, err := d.CreateSwapChain(w, &device.SwapChainDescriptor{
		Label:       "test",
		Width:       cw,
		Height:      ch,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		BufferCount: 1,
		Stretch:     stretch,
	})
	if err != nil {
		t.Fatalf("CreateSwapChain() error = %v", err)
	}
	return d, sc.(*SwapChain)
}

func fillBackBuffer(t *testing.T, d *Device, sc *SwapChain, c gputypes.Color) {
	t.Helper()
	bb, err := sc.BackBuffer(0)
	if err != nil {
		t.Fatal(err)
	}
	defer bb.Destroy()
	nv, err := d.CreateView(bb, &device.ViewDescriptor{Usage: device.ViewUsageRenderTarget, SliceCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer nv.Destroy()
	if err := d.ClearRenderTarget(nv, c, nil); err != nil {
		t.Fatal(err)
	}
}

func TestPresentCopiesFrame(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 16, Height: 8})
	d, sc := newChain(t, w, false)
	fillBackBuffer(t, d, sc, gputypes.ColorGreen)

	if err := sc.Present(1, 0); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	frame := w.Snapshot()
	if frame == nil {
		t.Fatal("no frame presented")
	}
	if got := frame.RGBAAt(15, 7); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("frame pixel = %v, want green", got)
	}
	if sc.LastInterval() != 1 {
		t.Errorf("LastInterval() = %d, want 1", sc.LastInterval())
	}
}

func TestPresentStretch(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 8, Height: 8})
	d, sc := newChain(t, w, true)
	fillBackBuffer(t, d, sc, gputypes.ColorWhite)
	if err := w.SetClientSize(32, 32); err != nil {
		t.Fatal(err)
	}

	if err := sc.Present(0, 0); err != nil {
		t.Fatal(err)
	}
	frame := w.Snapshot()
	if frame.Bounds().Dx() != 32 {
		t.Fatalf("frame width = %d, want 32", frame.Bounds().Dx())
	}
	if got := frame.RGBAAt(31, 31); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("stretched corner = %v, want white", got)
	}
}

func TestPresentOccluded(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 4, Height: 4})
	_, sc := newChain(t, w, false)

	w.SetOccluded(true)
	if err := sc.Present(1, 0); !errors.Is(err, device.ErrOccluded) {
		t.Errorf("occluded Present() error = %v, want ErrOccluded", err)
	}
	w.SetOccluded(false)
	w.Minimize()
	if err := sc.Present(1, device.PresentTest); !errors.Is(err, device.ErrOccluded) {
		t.Errorf("minimized Present() error = %v, want ErrOccluded", err)
	}
	w.Restore()
	if err := sc.Present(1, device.PresentTest); err != nil {
		t.Errorf("restored test Present() error = %v", err)
	}
	if w.Snapshot() != nil {
		t.Error("PresentTest should not produce a frame")
	}
}

func TestScriptedResults(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 4, Height: 4})
	_, sc := newChain(t, w, false)

	sc.Script(OpPresent, device.ErrDeviceReset, nil, device.ErrModeChangeInProgress)
	want := []error{device.ErrDeviceReset, nil, device.ErrModeChangeInProgress, nil}
	for i, exp := range want {
		if err := sc.Present(1, 0); !errors.Is(err, exp) {
			t.Errorf("Present #%d error = %v, want %v", i, err, exp)
		}
	}
	if sc.Calls(OpPresent) != 4 {
		t.Errorf("Calls(Present) = %d, want 4", sc.Calls(OpPresent))
	}
}

func TestResizeBuffersReferences(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 4, Height: 4})
	_, sc := newChain(t, w, false)

	bb, err := sc.BackBuffer(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.ResizeBuffers(2, 8, 8, gputypes.TextureFormatUndefined); !errors.Is(err, ErrOutstandingReferences) {
		t.Errorf("ResizeBuffers with reference error = %v, want ErrOutstandingReferences", err)
	}
	bb.Destroy()
	if sc.References() != 0 {
		t.Errorf("References() = %d, want 0", sc.References())
	}
	if err := sc.ResizeBuffers(2, 8, 0, gputypes.TextureFormatUndefined); err != nil {
		t.Fatalf("ResizeBuffers() error = %v", err)
	}
	desc := sc.Descriptor()
	if desc.BufferCount != 2 || desc.Width != 8 || desc.Height != 4 || desc.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Descriptor() = %+v, want 2 buffers 8x4 BGRA8Unorm", desc)
	}
	if sc.BufferCount() != 2 {
		t.Errorf("BufferCount() = %d, want 2", sc.BufferCount())
	}
	if _, err := sc.BackBuffer(2); err == nil {
		t.Error("BackBuffer(2) should fail with 2 buffers")
	}
}

func TestSetFullscreen(t *testing.T) {
	out := wsi.NewStaticOutput("A", wsi.DisplayMode{Width: 640, Height: 480})
	w := NewWindow(WindowOptions{Width: 4, Height: 4, Output: out})
	_, sc := newChain(t, w, false)

	if err := sc.SetFullscreen(true, nil); err != nil {
		t.Fatal(err)
	}
	if !sc.IsFullscreen() || !w.IsFullscreen() {
		t.Error("fullscreen not applied")
	}
	got, _ := sc.ContainingOutput()
	if got != wsi.Output(out) {
		t.Errorf("ContainingOutput() = %v, want window output", got)
	}

	if err := sc.ResizeTarget(wsi.DisplayMode{Width: 640, Height: 480}); err != nil {
		t.Fatal(err)
	}
	if cw, ch := w.ClientSize(); cw != 640 || ch != 480 {
		t.Errorf("ClientSize() = %dx%d after ResizeTarget, want 640x480", cw, ch)
	}
	if len(sc.Targets()) != 1 {
		t.Errorf("Targets() = %v", sc.Targets())
	}

	if err := sc.SetFullscreen(false, nil); err != nil {
		t.Fatal(err)
	}
	sc.Release()
	sc.Release()
	if sc.ReleasedWhileFullscreen() {
		t.Error("released while fullscreen")
	}
	if !sc.Released() {
		t.Error("Released() = false")
	}
}

func TestSetFullscreenChild(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 4, Height: 4, Child: true})
	_, sc := newChain(t, w, false)
	if err := sc.SetFullscreen(true, nil); !errors.Is(err, device.ErrUnsupported) {
		t.Errorf("child SetFullscreen error = %v, want ErrUnsupported", err)
	}
	if sc.IsFullscreen() {
		t.Error("child window went fullscreen")
	}
}

func TestAutoModeSwitch(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 4, Height: 4})
	_, sc := newChain(t, w, false)
	if !sc.AutoModeSwitch() {
		t.Error("auto mode switch should default to enabled")
	}
	if err := sc.SetAutoModeSwitch(false); err != nil {
		t.Fatal(err)
	}
	if sc.AutoModeSwitch() {
		t.Error("SetAutoModeSwitch(false) not applied")
	}
}
