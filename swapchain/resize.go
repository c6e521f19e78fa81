// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"fmt"

	"github.com/gogpu/present/device"
)

// ResizeBackBuffers rebuilds the back buffers at width x height.
//
// OnBeforeResize hooks run before the old buffers and view are released;
// OnAfterResize hooks run once the new ones exist. A request for the
// current size is still carried out. When the native resize hits a
// transient condition the surface enters stand-by, keeps its old size and
// returns nil.
func (s *Surface) ResizeBackBuffers(width, height int) error {
	if s.IsDisposed() {
		return ErrDisposed
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %q: width=%d, height=%d", ErrInvalidDimensions, s.params.Name, width, height)
	}

	s.resizing = true
	defer func() { s.resizing = false }()

	s.beforeResize.emit(s)
	s.releaseBuffers()

	count := windowedBufferCount
	if s.mode == FullScreen {
		count = fullScreenBufferCount
	}

	err := s.native.ResizeBuffers(count, width, height, s.format)
	switch device.Classify(err) {
	case device.ClassOK, device.ClassBenign:
		s.width, s.height = width, height
	case device.ClassTransient:
		s.standBy = true
		s.logger().Warn("swapchain: resize deferred",
			"name", s.params.Name, "width", width, "height", height, "err", err)
	default:
		return device.Unrecoverable(s.params.Name, "ResizeBuffers", err)
	}

	s.bufferCount = s.native.BufferCount()
	if err := s.createBuffers(); err != nil {
		return err
	}

	s.logger().Debug("swapchain: back buffers resized",
		"name", s.params.Name, "width", s.width, "height", s.height, "buffers", s.bufferCount)
	s.afterResize.emit(s)
	return nil
}
