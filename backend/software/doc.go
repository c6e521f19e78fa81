// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides an in-memory reference device.
//
// Color textures are stored as image.RGBA planes, depth-stencil textures as
// float32 depth and uint8 stencil planes. Swap chains present by copying
// (or stretching) back buffer 0 into the frame of a headless [Window].
//
// The device keeps counters of every native call and lets tests script the
// results of swap chain operations, so presentation state machines can be
// driven through device loss, occlusion and mode-change races
// deterministically.
//
// Importing the package registers the "software" backend:
//
//	import _ "github.com/gogpu/present/backend/software"
package software
