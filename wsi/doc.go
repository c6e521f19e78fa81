// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wsi defines the window-system surface a swap chain is bound to.
//
// A [Window] is the surface itself: a native handle, its client size and
// visibility. Windows that also deliver resize and activation notifications
// implement [Signals]; every registration returns an unsubscribe function so
// consumers can detach explicitly on teardown. [Dispatcher] is a ready-made
// Signals implementation for window adapters to embed.
//
// Display outputs and their modes are described by [Output] and
// [DisplayMode]. [HostWindow] adapts a gpucontext host (gogpu.App and
// friends) to this package.
package wsi
