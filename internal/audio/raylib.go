package audio

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"showroom/internal/audio/clip"
	"showroom/internal/effects"
)

func openRaylib(cfg Config, log zerolog.Logger) (*Set, error) {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		log.Warn().Msg("no audio device, cues are silent")
		return &Set{cues: map[string]effects.Cue{}}, nil
	}

	var sounds []rl.Sound
	cues := map[string]effects.Cue{}
	for _, src := range sources(cfg) {
		snd, ok := loadSound(src, log)
		if !ok {
			continue
		}
		if src.volume > 0 {
			rl.SetSoundVolume(snd, src.volume)
		}
		sounds = append(sounds, snd)
		cues[src.name] = soundCue{snd}
	}
	log.Info().Int("cues", len(cues)).Msg("audio ready")

	return &Set{cues: cues, close: func() {
		for _, s := range sounds {
			rl.UnloadSound(s)
		}
		rl.CloseAudioDevice()
	}}, nil
}

// loadSound loads src's file directly, letting raylib decode mp3/ogg/wav/flac. Without a
// file the synthesized clip is uploaded as a 16-bit wave.
func loadSound(src source, log zerolog.Logger) (rl.Sound, bool) {
	if src.path != "" {
		snd := rl.LoadSound(src.path)
		if rl.IsSoundValid(snd) {
			return snd, true
		}
		log.Warn().Str("cue", src.name).Str("path", src.path).Msg("cue file unreadable, using synthesized clip")
	}
	buf := src.synth()
	pcm := clip.PCM16(buf)
	wave := rl.NewWave(uint32(buf.Len()), uint32(clip.SampleRate), 16, 2, pcm)
	snd := rl.LoadSoundFromWave(wave)
	if !rl.IsSoundValid(snd) {
		log.Warn().Str("cue", src.name).Msg("cue could not be loaded")
		return rl.Sound{}, false
	}
	return snd, true
}

// soundCue is a raylib sound used as a cue.
type soundCue struct {
	snd rl.Sound
}

func (c soundCue) Play()           { rl.PlaySound(c.snd) }
func (c soundCue) Stop()           { rl.StopSound(c.snd) }
func (c soundCue) IsPlaying() bool { return rl.IsSoundPlaying(c.snd) }
