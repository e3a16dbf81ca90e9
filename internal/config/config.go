// Package config loads the shaderdemo configuration from defaults, an
// optional YAML file, SHADERDEMO_* environment variables and command line
// flags, in increasing order of precedence.
//
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/shaderpipe/internal/geom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
// Dots in keys become underscores: window.width is SHADERDEMO_WINDOW_WIDTH.
//
const EnvPrefix = "SHADERDEMO"

// Config is the demo configuration.
//
type Config struct {
	Window WindowConfig `mapstructure:"window"`
	Assets AssetsConfig `mapstructure:"assets"`
	Log    LogConfig    `mapstructure:"log"`
	Demo   DemoConfig   `mapstructure:"demo"`
}

type WindowConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	VSync      bool   `mapstructure:"vsync"`
	FullScreen bool   `mapstructure:"fullscreen"`
}

// AssetsConfig locates user assets. Files found under Dir, in shaders/ and
// textures/, take precedence over the built-in ones.
//
type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DemoConfig struct {
	Depth   int    `mapstructure:"depth"`
	Texture string `mapstructure:"texture"`
}

// Default returns the configuration used when nothing overrides it.
//
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "shaderdemo",
			VSync:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Demo: DemoConfig{
			Depth: 3,
		},
	}
}

// SetDefaults registers the default value of every key with v. Keys unknown
// to v are not looked up in the environment.
//
func SetDefaults(v *viper.Viper) {
	cfg := Default()
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.vsync", cfg.Window.VSync)
	v.SetDefault("window.fullscreen", cfg.Window.FullScreen)

	v.SetDefault("assets.dir", cfg.Assets.Dir)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetDefault("demo.depth", cfg.Demo.Depth)
	v.SetDefault("demo.texture", cfg.Demo.Texture)
}

// Load reads the configuration into a new Config. If file is empty,
// shaderdemo.yaml is searched in the working directory and may be missing.
// Flags must have been bound to v beforehand.
//
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("shaderdemo")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.Assets.Dir = expandPath(cfg.Assets.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks value ranges.
//
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if c.Demo.Depth < 0 || c.Demo.Depth > geom.MaxDepth {
		return errors.Errorf("demo.depth %d out of range [0:%d]", c.Demo.Depth, geom.MaxDepth)
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
