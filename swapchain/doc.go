// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package swapchain manages a presentation surface: a native swap chain
// bound to one window, its ring of back buffers and the render-target view
// over back buffer 0.
//
// # States
//
// A [Surface] is either [Windowed] or [FullScreen]. Three flags are
// orthogonal to the mode:
//   - Resizing while back buffers are being rebuilt
//   - ModeTransitioning during EnterFullScreen/ExitFullScreen
//   - StandBy after Present hit a transient condition (occlusion, device
//     loss, a mode change elsewhere); the next Present retries
//
// Present never fails for transient conditions. It fails only for fatal
// driver errors, which match [device.ErrUnrecoverable].
//
// # Window events
//
// When the window implements [wsi.Signals], New attaches a [Coordinator]
// that turns resize and activation signals into surface operations:
// drag-resizes are coalesced until the drag ends, maximize and restore
// resize immediately, and with [WithExitFullScreenOnFocusLoss] the surface
// leaves fullscreen on focus loss and returns to it on focus gain.
//
// # Threading
//
// A Surface is owned by the goroutine that owns its window. It performs no
// internal locking.
package swapchain
