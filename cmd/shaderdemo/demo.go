package main

import (
	"time"

	"github.com/db47h/ofs"
	"github.com/db47h/shaderpipe/app"
	"github.com/db47h/shaderpipe/app/event"
	"github.com/db47h/shaderpipe/assets"
	"github.com/db47h/shaderpipe/internal/logging"
	"github.com/db47h/shaderpipe/internal/scene"
	"github.com/db47h/shaderpipe/loop"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// statsInterval is the interval between frame statistics log entries.
const statsInterval = 5 * time.Second

var triangleCmd = &cobra.Command{
	Use:   "triangle",
	Short: "Draw a rotating triangle with per-vertex colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(scene.Triangle())
	},
}

var quadCmd = &cobra.Command{
	Use:   "quad",
	Short: "Draw a textured quad and a frame rate label",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(scene.Quad(cfg.Demo.Texture, logging.Get()))
	},
}

var sierpinskiCmd = &cobra.Command{
	Use:   "sierpinski",
	Short: "Draw a Sierpinski triangle, + and - change the depth",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(scene.Sierpinski(cfg.Demo.Depth, logging.Get()))
	},
}

func init() {
	quadCmd.Flags().String("texture", "", "texture asset drawn on the quad (default checkerboard)")
	sierpinskiCmd.Flags().Int("depth", 3, "initial subdivision depth")
	if err := v.BindPFlag("demo.texture", quadCmd.Flags().Lookup("texture")); err != nil {
		panic(err)
	}
	if err := v.BindPFlag("demo.depth", sierpinskiCmd.Flags().Lookup("depth")); err != nil {
		panic(err)
	}
}

// newLoader returns a loader reading user assets from dir, if not empty,
// before the built-in ones.
//
func newLoader(dir string) (*assets.Loader, error) {
	if dir == "" {
		return scene.NewLoader(nil), nil
	}
	var ovl ofs.Overlay
	if err := ovl.Add(true, dir); err != nil {
		return nil, errors.Wrapf(err, "assets directory %s", dir)
	}
	return scene.NewLoader(&ovl), nil
}

func windowOptions(log logrus.FieldLogger) []app.WindowOption {
	return []app.WindowOption{
		app.Title(cfg.Window.Title),
		app.Size(cfg.Window.Width, cfg.Window.Height),
		app.VSync(cfg.Window.VSync),
		app.FullScreen(cfg.Window.FullScreen),
		app.Logger(log),
	}
}

func run(s scene.Scene) error {
	log := logging.Get()
	l, err := newLoader(cfg.Assets.Dir)
	if err != nil {
		return err
	}
	return app.Main(&runner{scene: s, loader: l, log: log}, windowOptions(log)...)
}

// runner drives a scene from the app main loop.
type runner struct {
	scene  scene.Scene
	loader *assets.Loader
	log    logrus.FieldLogger
	timer  loop.FrameTimer
	since  time.Duration
}

func (r *runner) Init(w app.Window) error {
	if err := r.scene.Setup(w.Context(), r.loader); err != nil {
		return errors.Wrap(err, "scene setup")
	}
	return nil
}

func (r *runner) Update(dt time.Duration) {
	r.scene.Update(dt)
}

func (r *runner) Draw(w app.Window, frameTime time.Duration) {
	r.timer.Add(frameTime)
	if r.since += frameTime; r.since >= statsInterval {
		r.since = 0
		r.log.WithFields(logrus.Fields{
			"fps":   int(r.timer.PerSecond() + 0.5),
			"frame": r.timer.Average().Round(time.Microsecond),
		}).Info("frame stats")
	}
	r.scene.Draw(w.Context(), w.Size(), frameTime)
}

func (r *runner) Terminate() error {
	r.scene.Release()
	return nil
}

func (r *runner) OnEvent(w app.Window, e event.Interface) {
	switch e := e.(type) {
	case event.KeyDown:
		if h, ok := r.scene.(scene.KeyHandler); ok {
			h.Key(w.Context(), e.Key)
		}
	case event.FrameBufferSize:
		r.log.WithFields(logrus.Fields{"width": e.Width, "height": e.Height}).Debug("framebuffer resized")
	case event.WindowClose:
		r.log.Debug("window closed")
	}
}
