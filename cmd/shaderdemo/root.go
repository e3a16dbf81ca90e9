package main

import (
	"github.com/db47h/shaderpipe/internal/config"
	"github.com/db47h/shaderpipe/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "shaderdemo",
	Short: "Draw simple scenes with GL 3.3 core",
	Long: `shaderdemo opens a window and draws one of its built-in scenes.

Shaders and textures are looked up in the assets directory first, under
shaders/ and textures/, then among the built-in assets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		if err = logging.Init(cfg.Log.Level, cfg.Log.File, true); err != nil {
			return err
		}
		if f := v.ConfigFileUsed(); f != "" {
			logging.Get().WithField("file", f).Debug("config loaded")
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./shaderdemo.yaml)")
	pf.Int("width", 800, "window width")
	pf.Int("height", 600, "window height")
	pf.String("title", "shaderdemo", "window title")
	pf.Bool("vsync", true, "synchronize buffer swaps with the monitor refresh")
	pf.Bool("fullscreen", false, "full screen window")
	pf.String("assets", "", "user assets directory")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.String("log-file", "", "append logs to this file")

	for key, flag := range map[string]string{
		"window.width":      "width",
		"window.height":     "height",
		"window.title":      "title",
		"window.vsync":      "vsync",
		"window.fullscreen": "fullscreen",
		"assets.dir":        "assets",
		"log.level":         "log-level",
		"log.file":          "log-file",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(triangleCmd, quadCmd, sierpinskiCmd, infoCmd)
}
