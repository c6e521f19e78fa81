// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import "github.com/gogpu/present/device"

// Present shows back buffer 0 with the given sync interval (0 presents
// immediately, n waits for n vertical blanks).
//
// Nothing is presented while a resize or mode transition runs. Transient
// conditions put the surface in stand-by and return nil; the next call
// retries. Any other native failure is returned wrapped in
// device.ErrUnrecoverable.
func (s *Surface) Present(interval int) error {
	if s.IsDisposed() {
		return ErrDisposed
	}
	if s.modeTransitioning || s.resizing {
		return nil
	}

	wasStandBy := s.standBy
	s.standBy = false

	err := s.native.Present(interval, 0)
	switch device.Classify(err) {
	case device.ClassOK, device.ClassBenign:
		if wasStandBy {
			s.logger().Debug("swapchain: stand-by cleared", "name", s.params.Name)
		}
		return nil
	case device.ClassTransient:
		s.standBy = true
		if !wasStandBy {
			s.logger().Warn("swapchain: present deferred", "name", s.params.Name, "err", err)
		}
		return nil
	default:
		return device.Unrecoverable(s.params.Name, "Present", err)
	}
}

// PresentDefault presents with Parameters.PresentInterval.
func (s *Surface) PresentDefault() error {
	return s.Present(s.params.PresentInterval)
}

// Ready reports whether a frame would be shown. Outside stand-by it is
// always true. In stand-by it probes the swap chain without presenting and
// leaves stand-by when the probe succeeds.
func (s *Surface) Ready() bool {
	if s.IsDisposed() {
		return false
	}
	if !s.standBy {
		return true
	}
	if err := s.native.Present(0, device.PresentTest); err != nil {
		return false
	}
	s.standBy = false
	return true
}
