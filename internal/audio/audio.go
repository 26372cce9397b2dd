// Package audio provides the whoosh and engine cues on one of two backends: raylib's audio
// device, or beep's speaker. Missing files fall back to synthesized clips.
package audio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"showroom/internal/audio/clip"
	"showroom/internal/effects"
)

// Backend names accepted by Open.
const (
	BackendRaylib = "raylib"
	BackendBeep   = "beep"
	BackendNone   = "none"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown audio backend")

// Synthesized fallback lengths.
const (
	whooshLength = 700 * time.Millisecond
	engineLength = 1800 * time.Millisecond
)

// Config selects the backend and the cue files.
type Config struct {
	Backend      string
	Whoosh       string
	Engine       string
	WhooshVolume float32
	EngineVolume float32
}

// Set is an opened backend with its cues.
type Set struct {
	cues  map[string]effects.Cue
	close func()
}

// Cues returns the cues by name, ready for viewer.Binding. Empty for the none backend.
func (s *Set) Cues() map[string]effects.Cue {
	return s.cues
}

// Close releases the cues and the device.
func (s *Set) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// Open starts the configured backend. The raylib backend must be opened after the window.
func Open(cfg Config, log zerolog.Logger) (*Set, error) {
	log = log.With().Str("component", "audio").Str("backend", cfg.Backend).Logger()
	switch strings.ToLower(cfg.Backend) {
	case BackendRaylib, "":
		return openRaylib(cfg, log)
	case BackendBeep:
		return openBeep(cfg, log)
	case BackendNone:
		log.Info().Msg("audio disabled")
		return &Set{cues: map[string]effects.Cue{}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

type source struct {
	name   string
	path   string
	volume float32
	synth  func() *beep.Buffer
}

func sources(cfg Config) []source {
	return []source{
		{name: effects.CueWhoosh, path: cfg.Whoosh, volume: cfg.WhooshVolume, synth: func() *beep.Buffer {
			return clip.Render(clip.Whoosh(whooshLength, uint64(time.Now().UnixNano())))
		}},
		{name: effects.CueEngine, path: cfg.Engine, volume: cfg.EngineVolume, synth: func() *beep.Buffer {
			return clip.Render(clip.Engine(engineLength))
		}},
	}
}

// load returns the file's clip, or the synthesized one if the file cannot be read.
func (src source) load(log zerolog.Logger) *beep.Buffer {
	if src.path != "" {
		buf, err := clip.LoadWAV(src.path)
		if err == nil {
			return buf
		}
		log.Warn().Err(err).Str("cue", src.name).Msg("cue file unreadable, using synthesized clip")
	}
	return src.synth()
}
