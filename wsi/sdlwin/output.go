// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sdlwin

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/wsi"
	"github.com/veandco/go-sdl2/sdl"
)

// displaySource enumerates SDL displays.
type displaySource interface {
	Name(index int) (string, error)
	Modes(index int) ([]sdl.DisplayMode, error)
}

type sdlDisplays struct{}

func (sdlDisplays) Name(index int) (string, error) {
	return sdl.GetDisplayName(index)
}

func (sdlDisplays) Modes(index int) ([]sdl.DisplayMode, error) {
	n, err := sdl.GetNumDisplayModes(index)
	if err != nil {
		return nil, err
	}
	modes := make([]sdl.DisplayMode, 0, n)
	for i := 0; i < n; i++ {
		m, err := sdl.GetDisplayMode(index, i)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// surfaceFormats are the swap chain formats a desktop-fullscreen window can
// present in. The compositor converts them to the desktop format, so every
// display mode is offered in each of them.
var surfaceFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatRGBA16Float,
	gputypes.TextureFormatRGB10A2Unorm,
}

// Output returns the display at index as a wsi output. SDL must be
// initialized with the video subsystem.
func Output(index int) (*wsi.StaticOutput, error) {
	return outputFor(sdlDisplays{}, index)
}

func outputFor(src displaySource, index int) (*wsi.StaticOutput, error) {
	name, err := src.Name(index)
	if err != nil {
		return nil, fmt.Errorf("%w: display %d: %w", wsi.ErrNoOutput, index, err)
	}
	sdlModes, err := src.Modes(index)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: display modes of %q: %w", name, err)
	}

	modes := make([]wsi.DisplayMode, 0, len(sdlModes)*len(surfaceFormats))
	for _, m := range sdlModes {
		for _, f := range surfaceFormats {
			modes = append(modes, displayMode(m, f))
		}
	}
	return wsi.NewStaticOutput(name, modes...), nil
}

// displayMode converts an SDL mode. SDL reports integer refresh rates and 0
// when unknown.
func displayMode(m sdl.DisplayMode, f gputypes.TextureFormat) wsi.DisplayMode {
	mode := wsi.DisplayMode{
		Width:  int(m.W),
		Height: int(m.H),
		Format: f,
	}
	if m.RefreshRate > 0 {
		mode.RefreshRate = wsi.Rational{Numerator: uint32(m.RefreshRate), Denominator: 1}
	}
	return mode
}
