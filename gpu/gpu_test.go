//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/present/backend/wgpu"
	"github.com/gogpu/present/device"
)

func TestWGPURegistered(t *testing.T) {
	entry, ok := device.Get(wgpu.BackendName)
	if !ok {
		t.Fatalf("device.Get(%q) not found", wgpu.BackendName)
	}
	if entry.Priority != 100 {
		t.Errorf("Priority = %d, want 100", entry.Priority)
	}
	if entry.Available == nil || !entry.Available() {
		t.Error("wgpu backend unavailable with hardware HAL backends linked")
	}
}

func TestFromProviderRejects(t *testing.T) {
	if _, err := FromProvider(struct{}{}, wgpu.Options{}); !errors.Is(err, wgpu.ErrNoHALProvider) {
		t.Errorf("FromProvider() error = %v, want ErrNoHALProvider", err)
	}
}
