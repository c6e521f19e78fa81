// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"fmt"
)

// Native results. Backends translate their status codes to these so that
// callers can classify them with errors.Is.
var (
	// ErrDeviceRemoved means the GPU was physically removed, the driver was
	// upgraded, or the device hung and was reset by the OS.
	ErrDeviceRemoved = errors.New("device: device removed")

	// ErrDeviceReset means the device was reset and its resources are gone.
	ErrDeviceReset = errors.New("device: device reset")

	// ErrModeChangeInProgress means another fullscreen or mode transition is
	// running.
	ErrModeChangeInProgress = errors.New("device: mode change in progress")

	// ErrOccluded means the window content is not visible and the frame was
	// not shown.
	ErrOccluded = errors.New("device: output occluded")

	// ErrNotCurrentlyAvailable means the resource is temporarily unavailable,
	// typically because another application owns the output exclusively.
	ErrNotCurrentlyAvailable = errors.New("device: resource not currently available")

	// ErrAlreadyCurrent means the requested state is already in effect.
	ErrAlreadyCurrent = errors.New("device: already current")

	// ErrUnsupported means the backend cannot perform the operation.
	ErrUnsupported = errors.New("device: operation not supported")

	// ErrUnrecoverable classifies every native failure that is not one of
	// the transient or benign results above.
	ErrUnrecoverable = errors.New("device: unrecoverable driver error")
)

// Class is the outcome category of a native result.
type Class int

const (
	// ClassOK is a successful result.
	ClassOK Class = iota

	// ClassBenign is a non-error status (ErrAlreadyCurrent).
	ClassBenign

	// ClassTransient is an expected, temporary condition. The operation can
	// be retried later without changing inputs.
	ClassTransient

	// ClassFatal is any other failure.
	ClassFatal
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case ClassOK:
		return "OK"
	case ClassBenign:
		return "Benign"
	case ClassTransient:
		return "Transient"
	case ClassFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Classify sorts a native result into a Class.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassOK
	case errors.Is(err, ErrAlreadyCurrent):
		return ClassBenign
	case IsTransient(err):
		return ClassTransient
	default:
		return ClassFatal
	}
}

// IsTransient reports whether err is a device loss, mode-change race,
// occlusion or temporary unavailability.
func IsTransient(err error) bool {
	return errors.Is(err, ErrDeviceRemoved) ||
		errors.Is(err, ErrDeviceReset) ||
		errors.Is(err, ErrModeChangeInProgress) ||
		errors.Is(err, ErrOccluded) ||
		errors.Is(err, ErrNotCurrentlyAvailable)
}

// IsModeRace reports whether err is one of the conditions a fullscreen
// transition tolerates: another transition in progress or a momentarily
// unavailable output.
func IsModeRace(err error) bool {
	return errors.Is(err, ErrModeChangeInProgress) || errors.Is(err, ErrNotCurrentlyAvailable)
}

// Unrecoverable wraps a fatal native result with the name of the object
// and the operation that produced it. It returns nil for nil.
func Unrecoverable(object, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnrecoverable) {
		return err
	}
	return fmt.Errorf("%w: %s: %s: %w", ErrUnrecoverable, object, op, err)
}
