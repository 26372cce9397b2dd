// Package config loads viewer settings from defaults, an optional file and SHOWROOM_* env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SHOWROOM_WINDOW_WIDTH.
const EnvPrefix = "SHOWROOM"

// DefaultName is the config file searched for when no path is given.
const DefaultName = "showroom"

// DotenvPath is loaded into the process environment before env overrides are read.
const DotenvPath = ".env"

// Window holds the window settings.
type Window struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	FPS        int    `mapstructure:"fps"`
	Fullscreen bool   `mapstructure:"fullscreen"`
}

// Device selects the form factor. Compact is auto, true or false.
type Device struct {
	Compact         string `mapstructure:"compact"`
	CompactMaxWidth int    `mapstructure:"compactMaxWidth"`
}

// Animation holds transition lengths.
type Animation struct {
	DoorDuration time.Duration `mapstructure:"doorDuration"`
	ViewDuration time.Duration `mapstructure:"viewDuration"`
}

// Effects holds the delays and shake applied after the doors open.
type Effects struct {
	LightDelay    time.Duration `mapstructure:"lightDelay"`
	EngineDelay   time.Duration `mapstructure:"engineDelay"`
	ShakeStrength float32       `mapstructure:"shakeStrength"`
	ShakeDuration time.Duration `mapstructure:"shakeDuration"`
}

// Audio selects the cue backend and files.
type Audio struct {
	Backend      string  `mapstructure:"backend"`
	Whoosh       string  `mapstructure:"whoosh"`
	Engine       string  `mapstructure:"engine"`
	WhooshVolume float32 `mapstructure:"whooshVolume"`
	EngineVolume float32 `mapstructure:"engineVolume"`
}

// Scene holds the model settings.
type Scene struct {
	Manifest string `mapstructure:"manifest"`
	Grid     bool   `mapstructure:"grid"`
}

// Debug toggles overlays.
type Debug struct {
	ShowFPS      bool `mapstructure:"showFPS"`
	ShowState    bool `mapstructure:"showState"`
	ShowMemAlloc bool `mapstructure:"showMemAlloc"`
}

// Viewer is the full configuration.
type Viewer struct {
	LogLevel  string    `mapstructure:"logLevel"`
	LogFile   string    `mapstructure:"logFile"`
	Window    Window    `mapstructure:"window"`
	Device    Device    `mapstructure:"device"`
	Animation Animation `mapstructure:"animation"`
	Effects   Effects   `mapstructure:"effects"`
	Audio     Audio     `mapstructure:"audio"`
	Scene     Scene     `mapstructure:"scene"`
	Debug     Debug     `mapstructure:"debug"`
}

// CompactOverride reports the forced form factor. ok is false for auto.
func (c Viewer) CompactOverride() (compact, ok bool) {
	switch strings.ToLower(c.Device.Compact) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

// SetDefaults installs every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "logs/viewer.txt")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "showroom")
	v.SetDefault("window.fps", 60)
	v.SetDefault("window.fullscreen", false)

	v.SetDefault("device.compact", "auto")
	v.SetDefault("device.compactMaxWidth", 768)

	v.SetDefault("animation.doorDuration", "500ms")
	v.SetDefault("animation.viewDuration", "500ms")

	v.SetDefault("effects.lightDelay", "380ms")
	v.SetDefault("effects.engineDelay", "350ms")
	v.SetDefault("effects.shakeStrength", 0.3)
	v.SetDefault("effects.shakeDuration", "400ms")

	v.SetDefault("audio.backend", "raylib")
	v.SetDefault("audio.whoosh", "assets/sounds/whoosh.wav")
	v.SetDefault("audio.engine", "assets/sounds/engine.wav")
	v.SetDefault("audio.whooshVolume", 0.7)
	v.SetDefault("audio.engineVolume", 1.0)

	v.SetDefault("scene.manifest", "")
	v.SetDefault("scene.grid", true)

	v.SetDefault("debug.showFPS", false)
	v.SetDefault("debug.showState", false)
	v.SetDefault("debug.showMemAlloc", false)
}

// New returns a viper instance with defaults and env overrides wired, but no file read.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration. With an empty path it searches for showroom.{yaml,json,toml} in
// the working directory and ./config, and a missing file is fine. An explicit path must exist.
// flags maps config keys to command-line flags; a flag the user set beats every other source.
func Load(path string, flags map[string]*pflag.Flag) (*viper.Viper, Viewer, error) {
	if err := LoadDotenv(DotenvPath); err != nil {
		return nil, Viewer{}, err
	}

	v := New()
	for key, f := range flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, Viewer{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, Viewer{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, Viewer{}, err
	}
	return v, cfg, nil
}

// Decode unmarshals v into a Viewer.
func Decode(v *viper.Viper) (Viewer, error) {
	var cfg Viewer
	if err := v.Unmarshal(&cfg); err != nil {
		return Viewer{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadDotenv reads KEY=VALUE lines from path into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, key := range dv.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, dv.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
