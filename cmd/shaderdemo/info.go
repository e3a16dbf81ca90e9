package main

import (
	"fmt"
	"io"
	"time"

	"github.com/db47h/shaderpipe/app"
	"github.com/db47h/shaderpipe/gl"
	"github.com/db47h/shaderpipe/internal/logging"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the GL driver version and limits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.Get()
		opts := append(windowOptions(log), app.Visible(false), app.FullScreen(false))
		return app.Main(&info{out: cmd.OutOrStdout()}, opts...)
	},
}

// info prints driver information from Init and closes the window.
type info struct {
	out io.Writer
}

var limits = []struct {
	name  string
	pname gl.Enum
}{
	{"max texture size", gl.MAX_TEXTURE_SIZE},
	{"max texture image units", gl.MAX_TEXTURE_IMAGE_UNITS},
	{"max combined texture image units", gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS},
	{"max vertex attribs", gl.MAX_VERTEX_ATTRIBS},
}

func (i *info) Init(w app.Window) error {
	ctx := w.Context()
	fmt.Fprintln(i.out, app.DriverVersion(w))
	fmt.Fprintf(i.out, "renderer: %s\n", ctx.GetString(gl.RENDERER))
	for _, l := range limits {
		fmt.Fprintf(i.out, "%s: %d\n", l.name, ctx.GetInteger(l.pname))
	}
	w.Close()
	return gl.Check(ctx)
}

func (*info) Update(time.Duration) {}
func (*info) Draw(app.Window, time.Duration) {}
func (*info) Terminate() error { return nil }
