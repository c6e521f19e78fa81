// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"log/slog"
	"sort"
	"sync"
)

// Tracker records the live views of a device under stable IDs, so that a
// device can report views that were never disposed.
//
// The zero value is ready to use.
type Tracker struct {
	mu   sync.Mutex
	next uint64
	live map[uint64]string
}

// Register records a live object and returns its ID. IDs start at 1 and are
// never reused.
func (t *Tracker) Register(name string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live == nil {
		t.live = make(map[uint64]string)
	}
	t.next++
	t.live[t.next] = name
	return t.next
}

// Unregister removes id and reports whether it was live.
func (t *Tracker) Unregister(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.live[id]; !ok {
		return false
	}
	delete(t.live, id)
	return true
}

// Live returns the number of live objects.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Lookup returns the name registered under id.
func (t *Tracker) Lookup(id uint64) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	name, ok := t.live[id]
	return name, ok
}

// Names returns the names of live objects in registration order.
func (t *Tracker) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]uint64, 0, len(t.live))
	for id := range t.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = t.live[id]
	}
	return names
}

// ReportLeaks logs a warning for every live object and returns their count.
func (t *Tracker) ReportLeaks(log *slog.Logger) int {
	names := t.Names()
	for _, n := range names {
		log.Warn("device: view not disposed", "name", n)
	}
	return len(names)
}
