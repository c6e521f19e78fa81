// Command presentdemo drives a swap chain through a scripted session on a
// headless window: frames are cleared and presented while the window is
// drag-resized, switched to fullscreen, loses and regains focus and is
// switched back. The last presented frame is saved as an image.
//
// Configuration comes from PRESENT_* environment variables or a .env file:
//
//	PRESENT_BACKEND     device backend (default "software")
//	PRESENT_WIDTH       initial width (default 800)
//	PRESENT_HEIGHT      initial height (default 600)
//	PRESENT_FORMAT      back buffer format (default BGRA8Unorm)
//	PRESENT_FRAMES      frames to present (default 90)
//	PRESENT_INTERVAL    sync interval (default 1)
//	PRESENT_FULLSCREEN  include the fullscreen steps (default true)
//	PRESENT_OUTPUT      image path (default frame.png)
//	PRESENT_THUMBNAIL   resize the saved image to this width (default off)
package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/backend/software"
	"github.com/gogpu/present/device"
	"github.com/gogpu/present/swapchain"
	"github.com/gogpu/present/wsi"
)

func main() {
	present.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	frame, err := run(cfg)
	if err != nil {
		log.Fatalf("presentdemo: %v", err)
	}
	if frame == nil {
		log.Fatal("presentdemo: no frame was presented")
	}
	if err := save(frame, cfg); err != nil {
		log.Fatalf("presentdemo: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d)", cfg.Output, frame.Bounds().Dx(), frame.Bounds().Dy())
}

// step is a scripted window-system action run before a frame.
type step struct {
	name string
	run  func() error
}

// run presents cfg.Frames frames and returns the last one shown.
func run(cfg config) (*image.RGBA, error) {
	dev, err := device.Open(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if c, ok := dev.(interface{ Close() int }); ok {
		defer func() {
			if leaked := c.Close(); leaked > 0 {
				present.Logger().Warn("presentdemo: leaked views", "count", leaked)
			}
		}()
	}

	win := software.NewWindow(software.WindowOptions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Output: software.DefaultOutput(),
	})

	params := swapchain.DefaultParameters(cfg.Width, cfg.Height, cfg.Format)
	params.Name = "presentdemo"
	params.PresentInterval = cfg.Interval
	s, err := swapchain.New(dev, win, params, swapchain.WithExitFullScreenOnFocusLoss(true))
	if err != nil {
		return nil, err
	}
	defer s.Dispose()

	s.OnAfterResize(func(s *swapchain.Surface) {
		present.Logger().Info("presentdemo: back buffers rebuilt",
			"width", s.Width(), "height", s.Height(), "mode", s.Mode().String())
	})

	script := map[int]step{
		cfg.Frames / 5: {"drag", func() error {
			win.Drag([][2]int{{900, 650}, {1000, 720}, {1024, 768}})
			return nil
		}},
	}
	if cfg.FullScreen {
		script[2*cfg.Frames/5] = step{"fullscreen", func() error {
			err := s.EnterFullScreen(wsi.DisplayMode{Width: 1920, Height: 1080, Format: cfg.Format}, nil)
			if errors.Is(err, wsi.ErrModeNotFound) {
				present.Logger().Warn("presentdemo: no fullscreen mode", "format", cfg.Format.String())
				return nil
			}
			return err
		}}
		script[cfg.Frames/2] = step{"focus lost", func() error {
			win.Focus(false)
			return nil
		}}
		script[3*cfg.Frames/5] = step{"focus gained", func() error {
			win.Focus(true)
			return nil
		}}
		script[4*cfg.Frames/5] = step{"windowed", s.ExitFullScreen}
	}

	for i := 0; i < cfg.Frames; i++ {
		if st, ok := script[i]; ok {
			present.Logger().Info("presentdemo: step", "frame", i, "step", st.name)
			if err := st.run(); err != nil {
				return nil, fmt.Errorf("step %s: %w", st.name, err)
			}
		}
		if !s.Ready() {
			continue
		}
		if err := s.BackBuffer().Clear(frameColor(i, cfg.Frames)); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if err := s.PresentDefault(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return win.Snapshot(), nil
}

// frameColor fades from blue to orange over the session.
func frameColor(i, n int) gputypes.Color {
	t := float64(i) / float64(max(n-1, 1))
	return gputypes.Color{R: t, G: 0.2 + 0.3*t, B: 1 - t, A: 1}
}

func save(frame *image.RGBA, cfg config) error {
	var img image.Image = frame
	if cfg.Thumbnail > 0 {
		img = imaging.Resize(frame, cfg.Thumbnail, 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, cfg.Output); err != nil {
		return fmt.Errorf("save %s: %w", cfg.Output, err)
	}
	return nil
}
