// Package clip loads and synthesizes the short audio clips used as cues. It only depends on
// beep's core, so it works without an audio device.
package clip

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the rate every clip is stored at.
const SampleRate = beep.SampleRate(48000)

// Format is the buffer format of every clip.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// resampleQuality trades CPU for fidelity when a file's rate differs from SampleRate.
const resampleQuality = 4

// LoadWAV decodes a wav file fully into memory at SampleRate.
func LoadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != SampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, SampleRate, s)
	}
	buf := beep.NewBuffer(Format)
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// Render buffers a finite generator.
func Render(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return buf
}

// Whoosh synthesizes the camera move cue: band-limited noise swept up then down with a
// smooth envelope.
func Whoosh(d time.Duration, seed uint64) beep.Streamer {
	n := SampleRate.N(d)
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var low float64
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			x := float64(pos) / float64(n)
			env := math.Sin(math.Pi * x)
			// Sweep the one-pole filter cutoff so the noise brightens mid-move.
			alpha := 0.02 + 0.25*env
			low += alpha * (rnd.Float64()*2 - 1 - low)
			v := 0.6 * env * env * low
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}

// Engine synthesizes the engine rev: a low sawtooth with harmonics that rises in pitch and
// decays away.
func Engine(d time.Duration) beep.Streamer {
	n := SampleRate.N(d)
	var phase float64
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			x := float64(pos) / float64(n)
			freq := 45 + 70*math.Sin(math.Pi*math.Min(x*1.6, 1))
			phase += freq / float64(SampleRate)
			phase -= math.Floor(phase)
			saw := 2*phase - 1
			v := 0.5*saw + 0.25*math.Sin(2*math.Pi*2*phase) + 0.12*math.Sin(2*math.Pi*3*phase)
			attack := math.Min(float64(pos)/float64(SampleRate.N(20*time.Millisecond)), 1)
			v *= 0.35 * attack * math.Exp(-3*x) * (1 - x)
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}

// Peak returns the largest absolute sample in buf.
func Peak(buf *beep.Buffer) float64 {
	s := buf.Streamer(0, buf.Len())
	var peak float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for _, smp := range chunk[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		if !ok {
			return peak
		}
	}
}

// PCM16 interleaves buf as little-endian signed 16-bit stereo frames.
func PCM16(buf *beep.Buffer) []byte {
	out := make([]byte, 0, buf.Len()*4)
	s := buf.Streamer(0, buf.Len())
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for _, smp := range chunk[:n] {
			for _, v := range smp {
				q := int16(math.Round(math.Max(-1, math.Min(1, v)) * math.MaxInt16))
				out = binary.LittleEndian.AppendUint16(out, uint16(q))
			}
		}
		if !ok {
			return out
		}
	}
}
