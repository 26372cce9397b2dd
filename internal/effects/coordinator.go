package effects

import (
	"time"

	"github.com/rs/zerolog"
)

// Cue names used by the controllers.
const (
	CueWhoosh = "whoosh"
	CueEngine = "engine"
)

// Cue is a playable audio clip. Implementations live in the audio package.
type Cue interface {
	Play()
	Stop()
	IsPlaying() bool
}

// Light is a switchable light source in the scene.
type Light interface {
	SetVisible(bool)
}

// Visibility is the light change an Effect requests.
type Visibility int

const (
	LightsUnchanged Visibility = iota
	LightsOn
	LightsOff
)

// Effect is a bundle of side effects applied together.
type Effect struct {
	Lights Visibility
	// Cue is started, after stopping any playback from the same source.
	Cue string
	// StopCue is stopped.
	StopCue string
	Shake   Shake
	// StopShake cancels a running camera shake.
	StopShake bool
}

type phaseKind int

const (
	immediate phaseKind = iota
	delayed
	onInterrupt
)

// Phase says when an Effect is applied relative to the transition that fires it.
type Phase struct {
	kind  phaseKind
	delay time.Duration
}

var (
	// Immediate applies the effect now.
	Immediate = Phase{kind: immediate}
	// OnInterrupt applies the effect only if the current transition is superseded.
	OnInterrupt = Phase{kind: onInterrupt}
)

// Delayed applies the effect d from now, unless the coordinator is invalidated first.
func Delayed(d time.Duration) Phase {
	if d <= 0 {
		return Immediate
	}
	return Phase{kind: delayed, delay: d}
}

// Coordinator maps transition phases to light and audio side effects. It never blocks the
// door or camera controllers: a missing cue or light is a silent no-op.
type Coordinator struct {
	timers      *Timers
	shaker      *Shaker
	cues        map[string]Cue
	lights      []Light
	lightsOn    bool
	interrupted []Effect
	log         zerolog.Logger
}

// NewCoordinator returns a coordinator deferring through timers.
func NewCoordinator(timers *Timers, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		timers: timers,
		cues:   make(map[string]Cue),
		log:    log.With().Str("component", "effects").Logger(),
	}
}

// SetCue registers (or with nil, removes) the cue for name. Cues may arrive late, after
// their asset finishes loading.
func (c *Coordinator) SetCue(name string, cue Cue) {
	if cue == nil {
		delete(c.cues, name)
		return
	}
	c.cues[name] = cue
}

// SetLights replaces the set of lights the coordinator toggles.
func (c *Coordinator) SetLights(lights ...Light) {
	c.lights = c.lights[:0]
	for _, l := range lights {
		if l != nil {
			c.lights = append(c.lights, l)
		}
	}
}

// SetShaker installs the camera shaker. Without one, shake requests are ignored.
func (c *Coordinator) SetShaker(s *Shaker) {
	c.shaker = s
}

// LightsVisible reports the last visibility applied to the lights.
func (c *Coordinator) LightsVisible() bool {
	return c.lightsOn
}

// Fire applies e at the given phase. Only delayed effects return a valid Handle.
func (c *Coordinator) Fire(p Phase, e Effect) Handle {
	switch p.kind {
	case delayed:
		return c.timers.After(p.delay, func() { c.apply(e) })
	case onInterrupt:
		c.interrupted = append(c.interrupted, e)
	default:
		c.apply(e)
	}
	return Handle{}
}

// Play starts cue name immediately.
func (c *Coordinator) Play(name string) {
	c.apply(Effect{Cue: name})
}

// Invalidate drops pending delayed effects and forgets on-interrupt effects. Called when a
// new toggle starts after the previous one settled.
func (c *Coordinator) Invalidate() {
	c.timers.Invalidate()
	clear(c.interrupted)
	c.interrupted = c.interrupted[:0]
}

// Interrupt runs the on-interrupt effects registered by the superseded transition, then
// invalidates everything it scheduled.
func (c *Coordinator) Interrupt() {
	pending := append([]Effect(nil), c.interrupted...)
	c.Invalidate()
	for _, e := range pending {
		c.apply(e)
	}
}

func (c *Coordinator) apply(e Effect) {
	switch e.Lights {
	case LightsOn:
		c.setLights(true)
	case LightsOff:
		c.setLights(false)
	}
	if e.StopCue != "" {
		if cue := c.cue(e.StopCue); cue != nil {
			cue.Stop()
		}
	}
	if e.Cue != "" {
		if cue := c.cue(e.Cue); cue != nil {
			// Restart from the top rather than overlap.
			cue.Stop()
			cue.Play()
		}
	}
	if e.StopShake {
		c.shaker.Stop()
	}
	if e.Shake.Strength > 0 {
		c.shaker.Start(e.Shake)
	}
}

func (c *Coordinator) setLights(on bool) {
	c.lightsOn = on
	if len(c.lights) == 0 {
		c.log.Debug().Bool("visible", on).Msg("no lights bound")
		return
	}
	for _, l := range c.lights {
		l.SetVisible(on)
	}
}

func (c *Coordinator) cue(name string) Cue {
	cue, ok := c.cues[name]
	if !ok {
		c.log.Debug().Str("cue", name).Msg("cue not loaded, skipping")
		return nil
	}
	return cue
}
