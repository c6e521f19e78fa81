// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/present/device"
	"github.com/gogpu/wgpu/hal"
)

// Errors returned by the wgpu device.
var (
	// ErrNoAdapter is returned by Open when no requested HAL backend yields
	// an adapter.
	ErrNoAdapter = errors.New("wgpu: no adapter available")

	// ErrNoHALProvider is returned by FromProvider when the provider does
	// not expose HAL objects.
	ErrNoHALProvider = errors.New("wgpu: provider does not expose HAL types")

	// ErrForeignObject is returned when an object from another device is
	// passed in.
	ErrForeignObject = errors.New("wgpu: object does not belong to this device")

	// ErrDestroyed is returned when a destroyed texture, view or swap chain
	// is used.
	ErrDestroyed = errors.New("wgpu: object destroyed")

	// ErrWrongUsage is returned when a clear does not match the view usage.
	ErrWrongUsage = errors.New("wgpu: clear does not match view usage")

	// ErrNoSurface is returned by CreateSwapChain when neither the window
	// nor the device can provide a HAL surface.
	ErrNoSurface = errors.New("wgpu: no surface for window")

	// ErrFormatNotSupported is returned when a surface cannot present the
	// requested format.
	ErrFormatNotSupported = errors.New("wgpu: surface format not supported")

	// ErrOutstandingReferences is returned by ResizeBuffers while back
	// buffer references are still held.
	ErrOutstandingReferences = errors.New("wgpu: back buffer references outstanding")
)

// translate maps HAL results onto device sentinels, keeping the HAL error
// in the chain.
func translate(err error) error {
	var sentinel error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrDeviceLost):
		sentinel = device.ErrDeviceRemoved
	case errors.Is(err, hal.ErrSurfaceLost):
		sentinel = device.ErrDeviceReset
	case errors.Is(err, hal.ErrSurfaceOutdated):
		sentinel = device.ErrModeChangeInProgress
	case errors.Is(err, hal.ErrZeroArea):
		sentinel = device.ErrOccluded
	case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady):
		sentinel = device.ErrNotCurrentlyAvailable
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
