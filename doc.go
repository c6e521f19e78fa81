// Package present binds typed views over GPU textures and drives the
// presentation surface (swap chain) of a real-time renderer.
//
// # Overview
//
// The module is split the same way the rendering stack is:
//
//   - [github.com/gogpu/present/format]: pixel-format typing (typeless
//     families, depth/stencil aspects, display capability)
//   - [github.com/gogpu/present/device]: the graphics device contract the
//     core consumes, native result classification, backend registry
//   - [github.com/gogpu/present/wsi]: the window-system contract (client size,
//     resize/activation signals, display outputs and modes)
//   - [github.com/gogpu/present/view]: render-target and depth-stencil views
//     with range validation and clears
//   - [github.com/gogpu/present/swapchain]: the swap chain state machine and
//     its resize coordinator
//
// Backends live under backend/: backend/software is an in-memory reference
// device, backend/wgpu drives a gogpu/wgpu device and surface. Importing
// [github.com/gogpu/present/gpu] links the hardware HAL backends wgpu needs.
// Window adapters: [github.com/gogpu/present/wsi.HostWindow] for gpucontext
// hosts and [github.com/gogpu/present/wsi/sdlwin] for SDL2 windows.
//
// # Quick Start
//
//	dev, _ := device.Open("software")
//	win := software.NewWindow(software.WindowOptions{Width: 800, Height: 600})
//
//	sc, err := swapchain.New(dev, win, swapchain.DefaultParameters(800, 600, gputypes.TextureFormatBGRA8Unorm))
//	if err != nil {
//	    return err
//	}
//	defer sc.Dispose()
//
//	for running {
//	    sc.BackBuffer().Clear(gputypes.ColorBlack)
//	    // draw ...
//	    if err := sc.Present(1); err != nil {
//	        return err // unrecoverable driver error
//	    }
//	}
//
// # Threading
//
// A swap chain belongs to the goroutine that owns its window. Views may be
// disposed from any goroutine; disposal is idempotent.
package present

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
