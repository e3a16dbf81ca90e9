// Package app provides the window and GL context the wrappers run on, and
// drives the application's update and draw calls.
//
// Main must be called from the main goroutine: the package locks it to the
// main OS thread, which GLFW and the GL context require.
//
package app

import (
	"image"
	"runtime"
	"time"

	"github.com/db47h/shaderpipe/app/event"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/loop"
	"github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

// Main creates a window with a GL 3.3 core context, runs a until the window
// is closed, then releases the window.
//
// Init is called once the context is current, Update at a fixed rate, Draw
// once per frame before buffers are swapped, and Terminate when the window
// has been closed. Terminate is not called if Init fails.
//
func Main(a Interface, opts ...WindowOption) error {
	if err := drv.init(a, opts...); err != nil {
		return err
	}
	defer drv.terminate()
	if err := a.Init(drv.window()); err != nil {
		return err
	}
	drv.run(a)
	return a.Terminate()
}

// Window is the application window and its GL context.
//
type Window interface {
	// Context returns the GL context of the window.
	Context() gl.Context
	// Size returns the framebuffer size in pixels.
	Size() image.Point
	// Close asks the main loop to exit after the current frame.
	Close()
	// Native returns the underlying window handle, a *glfw.Window.
	Native() interface{}
}

type driver interface {
	init(Interface, ...WindowOption) error
	terminate()
	run(Interface)
	window() Window
}

// Interface is implemented by applications run by Main.
//
type Interface interface {
	Init(Window) error
	Terminate() error

	Update(dt time.Duration)
	Draw(w Window, frameTime time.Duration)
}

// EventHandler is implemented by applications that want window events.
//
type EventHandler interface {
	OnEvent(w Window, e event.Interface)
}

// WindowOption configures the window created by Main.
//
type WindowOption interface {
	set(*winCfg)
}

type winCfg struct {
	fullScreen bool
	hidden     bool
	vsync      bool
	x, y, w, h int
	title      string
	log        logrus.FieldLogger
	step       time.Duration
}

func defaultConfig() winCfg {
	return winCfg{
		title: "shaderpipe",
		x:     -1,
		y:     -1,
		w:     800,
		h:     600,
		vsync: true,
		log:   logrus.StandardLogger(),
		step:  loop.DefaultDT,
	}
}

type winOption func(*winCfg)

func (f winOption) set(cfg *winCfg) {
	f(cfg)
}

// Title sets the window title.
//
func Title(title string) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.title = title
	})
}

// Pos sets the window position. Negative values let the window manager
// decide.
//
func Pos(x, y int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.x, cfg.y = x, y
	})
}

// Size sets the window size in screen coordinates.
//
func Size(w, h int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.w, cfg.h = w, h
	})
}

// FullScreen creates a full screen window on the primary monitor, in its
// current video mode.
//
func FullScreen(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.fullScreen = b
	})
}

// Visible sets the initial visibility of the window.
//
func Visible(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.hidden = !b
	})
}

// VSync enables or disables synchronization of buffer swaps with the
// monitor refresh. Enabled by default.
//
func VSync(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.vsync = b
	})
}

// Logger sets the logger used by the driver. It defaults to the logrus
// standard logger.
//
func Logger(l logrus.FieldLogger) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.log = l
	})
}

// TimeStep sets the interval between Update calls.
//
func TimeStep(dt time.Duration) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.step = dt
	})
}
