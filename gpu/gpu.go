//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu registers the wgpu device backend together with every
// hardware HAL backend of the platform (Vulkan, Metal, DX12, GL).
//
// Importing backend/wgpu alone registers the "wgpu" device backend, but it
// stays unavailable until some HAL backend is linked in. This package links
// them all, so device.OpenBest prefers the GPU and falls back to software
// only when no adapter can be opened.
//
// Usage:
//
//	import _ "github.com/gogpu/present/gpu" // enable hardware presentation
//
// Build with the nogpu tag to leave the HAL backends out.
package gpu

import (
	"github.com/gogpu/present"
	"github.com/gogpu/present/backend/wgpu"
	"github.com/gogpu/present/device"
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// FromProvider opens a device on the HAL device and queue of an
// external provider (e.g. a gogpu.App), so the swap chain shares the host's
// GPU instead of creating its own.
//
// The provider must expose HalDevice() and HalQueue() returning the HAL
// objects.
func FromProvider(provider any, opts wgpu.Options) (device.Device, error) {
	d, err := wgpu.FromProvider(provider, opts)
	if err != nil {
		present.Logger().Warn("gpu: provider has no HAL device", "err", err)
		return nil, err
	}
	return d, nil
}
