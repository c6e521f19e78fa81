// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements device.Device over the gogpu/wgpu hardware
// abstraction layer.
//
// A Device either opens its own HAL instance and adapter ([Open]) or wraps a
// device shared by a host application ([FromHAL], [FromProvider]). Only
// devices that own an instance can create surfaces from native window
// handles; shared devices present into surfaces the host hands over through
// [SurfaceSource].
//
// WebGPU has no typeless formats. Textures requested with a typeless family
// are allocated with its concrete member (the depth member when the texture
// is bound as depth-stencil), see format.Resolve.
//
// Limitations compared with native 3D APIs:
//   - clears cover whole subresources; rectangle lists other than the full
//     view fail with device.ErrUnsupported
//   - 1D textures cannot be render targets
//   - 3D render targets cannot be cleared
//   - a surface exposes a single back buffer, the texture acquired for the
//     current frame
//   - there are no exclusive display modes; fullscreen is borderless and
//     goes through wsi.Fullscreener
//
// HAL results are translated to the device package sentinels:
//
//	hal.ErrDeviceLost      -> device.ErrDeviceRemoved
//	hal.ErrSurfaceLost     -> device.ErrDeviceReset
//	hal.ErrSurfaceOutdated -> device.ErrModeChangeInProgress
//	hal.ErrZeroArea        -> device.ErrOccluded
//	hal.ErrTimeout         -> device.ErrNotCurrentlyAvailable
//	hal.ErrNotReady        -> device.ErrNotCurrentlyAvailable
//
// Importing the package registers the "wgpu" backend with priority 100. It
// is available once a hardware HAL backend is registered; importing
// github.com/gogpu/present/gpu links all of them.
package wgpu
