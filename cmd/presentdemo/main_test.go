package main

import (
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gobuffalo/envy"
	"github.com/gogpu/gputypes"
)

func TestLoadConfig(t *testing.T) {
	envy.Temp(func() {
		envy.Set("PRESENT_WIDTH", "640")
		envy.Set("PRESENT_FORMAT", "rgba8unorm")
		envy.Set("PRESENT_FULLSCREEN", "false")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Width != 640 || cfg.Height != 600 {
			t.Errorf("size = %dx%d, want 640x600", cfg.Width, cfg.Height)
		}
		if cfg.Format != gputypes.TextureFormatRGBA8Unorm {
			t.Errorf("Format = %v, want RGBA8Unorm", cfg.Format)
		}
		if cfg.FullScreen || cfg.Backend != "software" || cfg.Frames != 90 {
			t.Errorf("config = %+v", cfg)
		}
	})
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PRESENT_WIDTH", "wide"},
		{"PRESENT_HEIGHT", "0"},
		{"PRESENT_FORMAT", "Depth32Float"},
		{"PRESENT_FULLSCREEN", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			envy.Temp(func() {
				envy.Set(tt.key, tt.value)
				if _, err := loadConfig(); err == nil {
					t.Errorf("loadConfig() with %s=%q succeeded", tt.key, tt.value)
				}
			})
		})
	}
}

func TestRunSession(t *testing.T) {
	cfg := config{
		Backend:    "software",
		Width:      800,
		Height:     600,
		Format:     gputypes.TextureFormatBGRA8Unorm,
		Frames:     20,
		Interval:   1,
		FullScreen: true,
		Output:     filepath.Join(t.TempDir(), "frame.png"),
		Thumbnail:  256,
	}

	frame, err := run(cfg)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if frame == nil {
		t.Fatal("run() returned no frame")
	}
	if got := frame.Bounds().Size(); got.X != 1024 || got.Y != 768 {
		t.Errorf("frame size = %v, want 1024x768", got)
	}
	if c := frame.RGBAAt(10, 10); c.R != 255 || c.B != 0 {
		t.Errorf("last frame pixel = %v, want orange", c)
	}

	if err := save(frame, cfg); err != nil {
		t.Fatalf("save() error = %v", err)
	}
	img, err := imaging.Open(cfg.Output)
	if err != nil {
		t.Fatalf("imaging.Open() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != 256 {
		t.Errorf("thumbnail width = %d, want 256", got)
	}
}
