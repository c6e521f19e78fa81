package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present/format"
)

// config holds the demo knobs. Every field comes from a PRESENT_*
// environment variable or from a .env file in the working directory.
type config struct {
	Backend    string
	Width      int
	Height     int
	Format     gputypes.TextureFormat
	Frames     int
	Interval   int
	FullScreen bool
	Output     string
	Thumbnail  int
}

var displayFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatRGBA16Float,
	gputypes.TextureFormatRGB10A2Unorm,
}

func loadConfig() (config, error) {
	var (
		cfg config
		err error
	)
	cfg.Backend = envy.Get("PRESENT_BACKEND", "software")
	cfg.Output = envy.Get("PRESENT_OUTPUT", "frame.png")

	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"PRESENT_WIDTH", 800, &cfg.Width},
		{"PRESENT_HEIGHT", 600, &cfg.Height},
		{"PRESENT_FRAMES", 90, &cfg.Frames},
		{"PRESENT_INTERVAL", 1, &cfg.Interval},
		{"PRESENT_THUMBNAIL", 0, &cfg.Thumbnail},
	}
	for _, v := range ints {
		if *v.dst, err = envInt(v.key, v.def); err != nil {
			return config{}, err
		}
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return config{}, fmt.Errorf("PRESENT_WIDTH/PRESENT_HEIGHT: invalid size %dx%d", cfg.Width, cfg.Height)
	}

	if cfg.FullScreen, err = strconv.ParseBool(envy.Get("PRESENT_FULLSCREEN", "true")); err != nil {
		return config{}, fmt.Errorf("PRESENT_FULLSCREEN: %w", err)
	}
	if cfg.Format, err = parseFormat(envy.Get("PRESENT_FORMAT", "BGRA8Unorm")); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	s := envy.Get(key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseFormat(s string) (gputypes.TextureFormat, error) {
	for _, f := range displayFormats {
		if strings.EqualFold(format.Name(f), s) {
			return f, nil
		}
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("PRESENT_FORMAT: %q is not a display format", s)
}
