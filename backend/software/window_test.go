// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"testing"

	"github.com/gogpu/present/wsi"
)

func TestWindowBasics(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 320, Height: 200, Hidden: true})
	if w.Visible() {
		t.Error("hidden window reported visible")
	}
	w.Show()
	if !w.Visible() {
		t.Error("Show() did not make the window visible")
	}
	if w.Handle() == 0 {
		t.Error("Handle() = 0")
	}
	if other := NewWindow(WindowOptions{}); other.Handle() == w.Handle() {
		t.Error("windows share a handle")
	}
	if !w.IsTopLevel() {
		t.Error("IsTopLevel() = false")
	}
	if _, err := w.ContainingOutput(); err == nil {
		t.Error("ContainingOutput() without output should fail")
	}
	if err := w.SetClientSize(0, 10); err == nil {
		t.Error("SetClientSize(0, 10) should fail")
	}
}

func TestWindowDrag(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 100, Height: 100})
	var events []string
	w.OnResizeBegin(func() { events = append(events, "begin") })
	w.OnResize(func(r wsi.ResizeReason, _, _ int) { events = append(events, r.String()) })
	w.OnResizeEnd(func() { events = append(events, "end") })

	w.Drag([][2]int{{110, 100}, {120, 100}})

	want := []string{"begin", "Drag", "Drag", "end"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, events[i], want[i])
		}
	}
	if cw, _ := w.ClientSize(); cw != 120 {
		t.Errorf("width after drag = %d, want 120", cw)
	}
}

func TestWindowMinimizeRestore(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 50, Height: 50})
	var last wsi.ResizeReason
	w.OnResize(func(r wsi.ResizeReason, _, _ int) { last = r })

	w.Minimize()
	if !w.IsMinimized() {
		t.Error("Minimize() did not minimize")
	}
	w.Restore()
	if w.IsMinimized() || last != wsi.ResizeRestore {
		t.Errorf("after Restore minimized=%v reason=%v", w.IsMinimized(), last)
	}
}

func TestWindowFrame(t *testing.T) {
	w := NewWindow(WindowOptions{Width: 10, Height: 5})
	if w.Snapshot() != nil {
		t.Error("Snapshot() before any present should be nil")
	}
	f := w.Frame()
	if f.Bounds().Dx() != 10 || f.Bounds().Dy() != 5 {
		t.Errorf("Frame() bounds = %v", f.Bounds())
	}
	if w.Frame() != f {
		t.Error("Frame() reallocated without a size change")
	}
	w.Resize(wsi.ResizeProgrammatic, 20, 5)
	if w.Frame() == f {
		t.Error("Frame() not reallocated after resize")
	}
}
