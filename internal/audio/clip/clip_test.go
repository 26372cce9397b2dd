package clip

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizedCuesHaveExpectedLength(t *testing.T) {
	w := Render(Whoosh(600*time.Millisecond, 1))
	assert.Equal(t, SampleRate.N(600*time.Millisecond), w.Len())
	assert.Greater(t, Peak(w), 0.0)
	assert.LessOrEqual(t, Peak(w), 1.0)

	e := Render(Engine(1500 * time.Millisecond))
	assert.Equal(t, SampleRate.N(1500*time.Millisecond), e.Len())
	assert.Greater(t, Peak(e), 0.01)
	assert.LessOrEqual(t, Peak(e), 1.0)
}

func TestEngineFadesOut(t *testing.T) {
	e := Render(Engine(time.Second))
	tail := beep.NewBuffer(Format)
	tail.Append(e.Streamer(e.Len()-SampleRate.N(10*time.Millisecond), e.Len()))
	assert.Less(t, Peak(tail), 0.01)
}

func TestLoadWAVResamples(t *testing.T) {
	src := beep.Format{SampleRate: 24000, NumChannels: 2, Precision: 2}
	path := filepath.Join(t.TempDir(), "cue.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, beep.Take(24000/2, Engine(time.Second)), src))
	require.NoError(t, f.Close())

	buf, err := LoadWAV(path)
	require.NoError(t, err)
	assert.InDelta(t, SampleRate.N(500*time.Millisecond), buf.Len(), 64)
}

func TestLoadWAVMissing(t *testing.T) {
	_, err := LoadWAV(filepath.Join(t.TempDir(), "nope.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPCM16(t *testing.T) {
	buf := beep.NewBuffer(Format)
	sent := false
	buf.Append(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if sent {
			return 0, false
		}
		sent = true
		samples[0] = [2]float64{1, -1}
		samples[1] = [2]float64{0, 2}
		return 2, true
	}))
	pcm := PCM16(buf)
	require.Len(t, pcm, 8)
	assert.Equal(t, []byte{0xff, 0x7f, 0x01, 0x80, 0, 0, 0xff, 0x7f}, pcm)
}
