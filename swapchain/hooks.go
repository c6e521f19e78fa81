// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

// hooks is an ordered list of resize callbacks with per-entry removal.
type hooks struct {
	next    uint64
	entries []hookEntry
}

type hookEntry struct {
	id uint64
	fn func(*Surface)
}

func (h *hooks) add(fn func(*Surface)) func() {
	h.next++
	id := h.next
	h.entries = append(h.entries, hookEntry{id: id, fn: fn})
	return func() { h.remove(id) }
}

func (h *hooks) remove(id uint64) {
	for i, e := range h.entries {
		if e.id == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

// emit calls every hook in registration order. A hook may unsubscribe
// itself while running.
func (h *hooks) emit(s *Surface) {
	snapshot := append([]hookEntry(nil), h.entries...)
	for _, e := range snapshot {
		e.fn(s)
	}
}

func (h *hooks) clear() { h.entries = nil }

func (h *hooks) len() int { return len(h.entries) }

// OnBeforeResize registers fn to run before the back buffers are released.
// Drop any reference to BackBuffer there. The returned func unsubscribes.
func (s *Surface) OnBeforeResize(fn func(*Surface)) func() {
	return s.beforeResize.add(fn)
}

// OnAfterResize registers fn to run once new back buffers exist. The
// returned func unsubscribes.
func (s *Surface) OnAfterResize(fn func(*Surface)) func() {
	return s.afterResize.add(fn)
}
