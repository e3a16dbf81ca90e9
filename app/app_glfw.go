package app

import (
	"fmt"
	"image"
	"time"

	"github.com/db47h/shaderpipe/app/event"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/gl/native"
	"github.com/db47h/shaderpipe/loop"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DriverVersion describes the windowing library and the GL implementation
// of w.
//
func DriverVersion(w Window) string {
	v := "unknown GL"
	if c, ok := w.Context().(*native.Context); ok {
		v = c.Version()
	}
	return fmt.Sprintf("GLFW %s - %s", glfw.GetVersionString(), v)
}

var drv driver = new(glfwDriver)

type glfwDriver struct {
	w    *window
	log  logrus.FieldLogger
	step time.Duration
}

func (d *glfwDriver) init(a Interface, opts ...WindowOption) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o.set(&cfg)
	}
	d.log = cfg.log
	d.step = cfg.step

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "init glfw")
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	if err := d.createWindow(&cfg); err != nil {
		glfw.Terminate()
		return err
	}
	if h, ok := a.(EventHandler); ok {
		d.w.onEvent = h
	}
	d.log.WithFields(logrus.Fields{
		"size":   d.w.fb,
		"vsync":  cfg.vsync,
		"driver": DriverVersion(d.w),
	}).Info("window created")
	return nil
}

func (d *glfwDriver) terminate() {
	if d.w != nil {
		d.w.glfw.Destroy()
		d.w = nil
	}
	glfw.Terminate()
}

func (d *glfwDriver) createWindow(cfg *winCfg) error {
	var (
		monitor *glfw.Monitor
		width   = cfg.w
		height  = cfg.h
	)
	if cfg.fullScreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width = mode.Width
		height = mode.Height
	}
	if cfg.hidden || (!cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0) {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}
	w, err := glfw.CreateWindow(width, height, cfg.title, monitor, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	if !cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0 {
		w.SetPos(cfg.x, cfg.y)
		if !cfg.hidden {
			w.Show()
		}
	}

	w.MakeContextCurrent()
	ctx, err := native.Init(glfw.GetProcAddress)
	if err != nil {
		w.Destroy()
		return err
	}
	if cfg.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fw, fh := w.GetFramebufferSize()
	d.w = &window{glfw: w, ctx: ctx, fb: image.Pt(fw, fh)}
	ctx.Viewport(0, 0, int32(fw), int32(fh))
	w.SetFramebufferSizeCallback(d.w.frameBufferSizeCallback)
	w.SetKeyCallback(d.w.keyCallback)
	w.SetCloseCallback(d.w.closeCallback)
	return nil
}

func (d *glfwDriver) run(a Interface) {
	var (
		w  = d.w
		l  = loop.FixedStep{DT: d.step}
		ft loop.FrameTimer
	)
	glfw.PollEvents()
	l.Start(time.Now())
	for !w.glfw.ShouldClose() {
		frameTime := l.Step(time.Now(), a.Update)
		ft.Add(frameTime)
		a.Draw(w, frameTime)
		if err := gl.Check(w.ctx); err != nil {
			d.log.WithError(err).Warn("draw")
		}
		w.glfw.SwapBuffers()
		glfw.PollEvents()
	}
	d.log.WithField("fps", fmt.Sprintf("%.1f", ft.PerSecond())).Debug("main loop exit")
}

func (d *glfwDriver) window() Window {
	return d.w
}

type window struct {
	glfw    *glfw.Window
	ctx     *native.Context
	fb      image.Point
	onEvent EventHandler
}

func (w *window) Context() gl.Context {
	return w.ctx
}

func (w *window) Size() image.Point {
	return w.fb
}

func (w *window) Close() {
	w.glfw.SetShouldClose(true)
}

func (w *window) Native() interface{} {
	return w.glfw
}

func (w *window) send(e event.Interface) {
	if w.onEvent != nil {
		w.onEvent.OnEvent(w, e)
	}
}

func (w *window) frameBufferSizeCallback(_ *glfw.Window, width int, height int) {
	w.fb = image.Pt(width, height)
	w.ctx.Viewport(0, 0, int32(width), int32(height))
	w.send(event.FrameBufferSize{Width: width, Height: height})
}

func (w *window) closeCallback(_ *glfw.Window) {
	w.send(event.WindowClose{})
}

var keys = map[glfw.Key]event.Key{
	glfw.KeyEscape:     event.KeyEscape,
	glfw.KeySpace:      event.KeySpace,
	glfw.KeyEnter:      event.KeyEnter,
	glfw.KeyKPEnter:    event.KeyEnter,
	glfw.KeyUp:         event.KeyUp,
	glfw.KeyDown:       event.KeyDown,
	glfw.KeyLeft:       event.KeyLeft,
	glfw.KeyRight:      event.KeyRight,
	glfw.KeyEqual:      event.KeyPlus,
	glfw.KeyKPAdd:      event.KeyPlus,
	glfw.KeyMinus:      event.KeyMinus,
	glfw.KeyKPSubtract: event.KeyMinus,
}

func (w *window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := keys[key]
	switch action {
	case glfw.Press, glfw.Repeat:
		w.send(event.KeyDown{Key: k, Repeat: action == glfw.Repeat})
	case glfw.Release:
		w.send(event.KeyUp{Key: k})
		if k == event.KeyEscape {
			w.Close()
		}
	}
}
