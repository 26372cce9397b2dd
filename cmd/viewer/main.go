// showroom - interactive 3D car showroom.
//
// Controls:
//
//	Mouse drag  - Orbit the camera
//	Scroll      - Dolly in/out
//	D           - Open/close the doors
//	V           - Switch front/rear view
//	C           - Snap the doors shut
//	1-6         - Paint presets
//	Esc         - Quit
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"showroom/internal/audio"
	"showroom/internal/commands"
	"showroom/internal/config"
	"showroom/internal/debug"
	"showroom/internal/doors"
	"showroom/internal/effects"
	"showroom/internal/graphics"
	"showroom/internal/input"
	"showroom/internal/logger"
	"showroom/internal/manifest"
	"showroom/internal/paint"
	"showroom/internal/profile"
	"showroom/internal/scene"
	"showroom/internal/tween"
	"showroom/internal/viewer"
)

var (
	configPath string
	script     bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "showroom",
		Short: "Interactive 3D car showroom",
		Long: `showroom - interactive 3D car showroom

Open the doors, walk the camera round the back and repaint the body.

Controls:
  Mouse drag  - Orbit
  Scroll      - Dolly
  D           - Doors
  V           - Front/rear view
  C           - Snap doors shut
  1-6         - Paint presets
  Esc         - Quit`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: ./showroom.yaml or ./config/showroom.yaml)")
	cmd.Flags().String("compact", "", "Form factor: true, false or auto")
	cmd.Flags().String("manifest", "", "Scene manifest YAML (default: built-in)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("audio", "", "Audio backend: raylib, beep or none")
	cmd.Flags().BoolVar(&script, "script", false, "Read commands (doors, view, close, paint) from stdin")

	cmd.AddCommand(profileCommand(), fetchCommand())

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command) error {
	fl := cmd.Flags()
	_, cfg, err := config.Load(configPath, map[string]*pflag.Flag{
		"device.compact": fl.Lookup("compact"),
		"scene.manifest": fl.Lookup("manifest"),
		"logLevel":       fl.Lookup("log-level"),
		"audio.backend":  fl.Lookup("audio"),
	})
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Close()

	man, err := manifest.Load(cfg.Scene.Manifest)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Scene.Manifest).Msg("manifest")
		return err
	}

	win := &graphics.Window{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		FPS:        cfg.Window.FPS,
		Fullscreen: cfg.Window.Fullscreen,
	}
	win.Open()
	defer win.Close()

	compact, forced := cfg.CompactOverride()
	if !forced {
		compact = graphics.Compact(cfg.Device.CompactMaxWidth)
	}
	prof := profile.Resolve(compact)

	v := viewer.New(prof, viewer.Options{
		Doors: doors.Options{
			Duration:    cfg.Animation.DoorDuration,
			LightDelay:  cfg.Effects.LightDelay,
			EngineDelay: cfg.Effects.EngineDelay,
			Shake: effects.Shake{
				Strength: cfg.Effects.ShakeStrength,
				Duration: cfg.Effects.ShakeDuration,
			},
		},
		ViewDuration: cfg.Animation.ViewDuration,
		FPS:          cfg.Window.FPS,
	}, tween.SystemClock{}, log.Logger)
	v.ResolveInitialCameraPose(prof)

	scn, err := scene.Load(man, v.Rig(), log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("scene")
		return err
	}
	defer scn.Unload()
	scn.SetGridVisible(cfg.Scene.Grid)

	parts, err := scn.Assembly(man)
	if err != nil {
		return err
	}
	body, err := paint.Parse(man.Color)
	if err != nil {
		return err
	}

	sounds, err := audio.Open(audio.Config{
		Backend:      cfg.Audio.Backend,
		Whoosh:       cfg.Audio.Whoosh,
		Engine:       cfg.Audio.Engine,
		WhooshVolume: cfg.Audio.WhooshVolume,
		EngineVolume: cfg.Audio.EngineVolume,
	}, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, continuing silent")
		sounds, _ = audio.Open(audio.Config{Backend: audio.BackendNone}, log.Logger)
	}
	defer sounds.Close()

	dbg := debug.New()
	dbg.ShowFPS = cfg.Debug.ShowFPS
	dbg.ShowState = cfg.Debug.ShowState
	dbg.ShowMemAlloc = cfg.Debug.ShowMemAlloc
	dbg.State = v.Describe
	dbg.Log = log.Lines

	err = v.Bind(viewer.Binding{
		Parts:    parts,
		Paint:    paint.NewSurfaceSet(body, scn.PaintTargets(man)...),
		Renderer: overlay{scn, dbg},
		Lights:   scn.Lights(),
		Cues:     sounds.Cues(),
	})
	if err != nil {
		log.Error().Err(err).Msg("bind")
		return err
	}

	if script {
		go readScript(os.Stdin, commands.Standard(v, os.Stdout), log)
	}

	keys := input.New(commands.Standard(v, os.Stdout), v.Rig(), v.CameraBusy, log.Logger)
	log.Info().Bool("compact", compact).Str("assets", man.Assets).Msg("showroom ready")
	return v.RunFrameLoop(frameLoop{win: win, before: keys.Update})
}

// readScript runs one command per line until r is exhausted.
func readScript(r io.Reader, reg *commands.Registry, log *logger.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := reg.Run(sc.Text()); err != nil {
			log.Warn().Err(err).Str("line", sc.Text()).Msg("script")
		}
	}
	if err := sc.Err(); err != nil {
		log.Error().Err(err).Msg("script input")
	}
}

// overlay draws the scene and then the debug overlays on top.
type overlay struct {
	scene *scene.Scene
	debug *debug.Debug
}

func (o overlay) Render() {
	o.scene.Render()
	o.debug.Draw()
}

// frameLoop runs input before each viewer update.
type frameLoop struct {
	win    *graphics.Window
	before func()
}

func (l frameLoop) Run(update, draw func()) {
	l.win.Run(func() {
		l.before()
		update()
	}, draw)
}
