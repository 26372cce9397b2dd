package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	beepfx "github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"showroom/internal/audio/clip"
	"showroom/internal/effects"
)

// speakerBuffer is the speaker latency.
const speakerBuffer = 50 * time.Millisecond

var speakerOnce struct {
	sync.Once
	err error
}

func openBeep(cfg Config, log zerolog.Logger) (*Set, error) {
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(clip.SampleRate, clip.SampleRate.N(speakerBuffer))
	})
	if speakerOnce.err != nil {
		return nil, speakerOnce.err
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	cues := map[string]effects.Cue{}
	for _, src := range sources(cfg) {
		cues[src.name] = &beepCue{mixer: mixer, buf: src.load(log), volume: src.volume}
	}
	log.Info().Int("cues", len(cues)).Msg("audio ready")

	return &Set{cues: cues, close: func() {
		speaker.Lock()
		mixer.Clear()
		speaker.Unlock()
	}}, nil
}

// beepCue plays one buffered clip through the shared mixer. Each Play starts a fresh
// streamer; Stop pauses it for good.
type beepCue struct {
	mixer  *beep.Mixer
	buf    *beep.Buffer
	volume float32

	ctrl    *beep.Ctrl
	gen     atomic.Uint64
	playing atomic.Bool
}

func (c *beepCue) Play() {
	g := c.gen.Add(1)
	vol := &beepfx.Volume{
		Streamer: c.buf.Streamer(0, c.buf.Len()),
		Base:     2,
		Volume:   gain(c.volume),
		Silent:   c.volume <= 0,
	}
	done := beep.Callback(func() {
		if c.gen.Load() == g {
			c.playing.Store(false)
		}
	})
	ctrl := &beep.Ctrl{Streamer: beep.Seq(vol, done)}

	speaker.Lock()
	c.ctrl = ctrl
	c.playing.Store(true)
	c.mixer.Add(ctrl)
	speaker.Unlock()
}

func (c *beepCue) Stop() {
	speaker.Lock()
	if c.ctrl != nil {
		c.ctrl.Paused = true
		c.ctrl.Streamer = nil
		c.ctrl = nil
	}
	c.gen.Add(1)
	c.playing.Store(false)
	speaker.Unlock()
}

func (c *beepCue) IsPlaying() bool {
	return c.playing.Load()
}

// gain converts a linear volume to beep's base-2 exponent.
func gain(v float32) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(float64(v))
}
