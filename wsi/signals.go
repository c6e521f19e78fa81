// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wsi

import "sync"

// ResizeReason tells a resize handler what caused the client size change.
type ResizeReason int

const (
	// ResizeDrag is an interactive border drag. It is bracketed by
	// resize-begin and resize-end notifications.
	ResizeDrag ResizeReason = iota

	// ResizeMaximize is a maximize command.
	ResizeMaximize

	// ResizeRestore is a restore from maximized or minimized state.
	ResizeRestore

	// ResizeProgrammatic is a size change requested by code or by the host
	// framework without drag bracketing.
	ResizeProgrammatic
)

// String returns the name of the resize reason.
func (r ResizeReason) String() string {
	switch r {
	case ResizeDrag:
		return "Drag"
	case ResizeMaximize:
		return "Maximize"
	case ResizeRestore:
		return "Restore"
	case ResizeProgrammatic:
		return "Programmatic"
	default:
		return "Unknown"
	}
}

// Signals is the notification surface of a window. Every registration
// returns a function that removes the handler; calling it more than once is
// a no-op.
type Signals interface {
	OnResizeBegin(fn func()) (unsubscribe func())
	OnResizeEnd(fn func()) (unsubscribe func())
	OnResize(fn func(reason ResizeReason, width, height int)) (unsubscribe func())
	OnActivated(fn func()) (unsubscribe func())
	OnDeactivated(fn func()) (unsubscribe func())
}

type handlerSet[F any] struct {
	next uint64
	ids  []uint64
	fns  []F
}

func (s *handlerSet[F]) add(fn F) uint64 {
	s.next++
	s.ids = append(s.ids, s.next)
	s.fns = append(s.fns, fn)
	return s.next
}

func (s *handlerSet[F]) remove(id uint64) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.fns = append(s.fns[:i], s.fns[i+1:]...)
			return
		}
	}
}

func (s *handlerSet[F]) snapshot() []F {
	if len(s.fns) == 0 {
		return nil
	}
	out := make([]F, len(s.fns))
	copy(out, s.fns)
	return out
}

// Dispatcher implements [Signals] and fans notifications out to the
// registered handlers in registration order. Window adapters embed it and
// call the Emit methods from their event loop.
//
// Handlers run outside the internal lock, so a handler may unsubscribe
// itself or register new handlers.
//
// The zero value is ready to use.
type Dispatcher struct {
	mu          sync.Mutex
	resizeBegin handlerSet[func()]
	resizeEnd   handlerSet[func()]
	resize      handlerSet[func(ResizeReason, int, int)]
	activated   handlerSet[func()]
	deactivated handlerSet[func()]
}

// Ensure Dispatcher implements Signals.
var _ Signals = (*Dispatcher)(nil)

func subscribe[F any](d *Dispatcher, set *handlerSet[F], fn F) func() {
	d.mu.Lock()
	id := set.add(fn)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			set.remove(id)
			d.mu.Unlock()
		})
	}
}

func handlers[F any](d *Dispatcher, set *handlerSet[F]) []F {
	d.mu.Lock()
	defer d.mu.Unlock()
	return set.snapshot()
}

// OnResizeBegin registers fn for the start of an interactive resize.
func (d *Dispatcher) OnResizeBegin(fn func()) func() {
	return subscribe(d, &d.resizeBegin, fn)
}

// OnResizeEnd registers fn for the end of an interactive resize.
func (d *Dispatcher) OnResizeEnd(fn func()) func() {
	return subscribe(d, &d.resizeEnd, fn)
}

// OnResize registers fn for client size changes.
func (d *Dispatcher) OnResize(fn func(reason ResizeReason, width, height int)) func() {
	return subscribe(d, &d.resize, fn)
}

// OnActivated registers fn for focus gain.
func (d *Dispatcher) OnActivated(fn func()) func() {
	return subscribe(d, &d.activated, fn)
}

// OnDeactivated registers fn for focus loss.
func (d *Dispatcher) OnDeactivated(fn func()) func() {
	return subscribe(d, &d.deactivated, fn)
}

// EmitResizeBegin notifies resize-begin handlers.
func (d *Dispatcher) EmitResizeBegin() {
	for _, fn := range handlers(d, &d.resizeBegin) {
		fn()
	}
}

// EmitResizeEnd notifies resize-end handlers.
func (d *Dispatcher) EmitResizeEnd() {
	for _, fn := range handlers(d, &d.resizeEnd) {
		fn()
	}
}

// EmitResize notifies resize handlers.
func (d *Dispatcher) EmitResize(reason ResizeReason, width, height int) {
	for _, fn := range handlers(d, &d.resize) {
		fn(reason, width, height)
	}
}

// EmitActivated notifies activation handlers.
func (d *Dispatcher) EmitActivated() {
	for _, fn := range handlers(d, &d.activated) {
		fn()
	}
}

// EmitDeactivated notifies deactivation handlers.
func (d *Dispatcher) EmitDeactivated() {
	for _, fn := range handlers(d, &d.deactivated) {
		fn()
	}
}

// Len returns the total number of registered handlers.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.resizeBegin.fns) + len(d.resizeEnd.fns) + len(d.resize.fns) +
		len(d.activated.fns) + len(d.deactivated.fns)
}
