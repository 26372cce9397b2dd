package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTriggers struct {
	calls  []string
	colors []string
}

func (f *fakeTriggers) RequestToggleDoors() error { f.calls = append(f.calls, "doors"); return nil }
func (f *fakeTriggers) RequestSwitchView() error  { f.calls = append(f.calls, "view"); return nil }
func (f *fakeTriggers) RequestCloseNow() error    { f.calls = append(f.calls, "close"); return nil }
func (f *fakeTriggers) RequestRecolor(c string) error {
	f.calls = append(f.calls, "paint")
	f.colors = append(f.colors, c)
	return nil
}

func TestStandardCommands(t *testing.T) {
	ft := &fakeTriggers{}
	var out bytes.Buffer
	r := Standard(ft, &out)

	for _, line := range []string{"doors", "view", "close", "paint --color #ff0000", "paint 00ff00", "paint -c #00f"} {
		require.NoError(t, r.Run(line), line)
	}
	assert.Equal(t, []string{"doors", "view", "close", "paint", "paint", "paint"}, ft.calls)
	assert.Equal(t, []string{"#ff0000", "00ff00", "#00f"}, ft.colors)

	assert.ErrorIs(t, r.Run("paint"), ErrMissingColor)

	require.NoError(t, r.Run("help"))
	assert.Contains(t, out.String(), "doors")
	assert.Contains(t, out.String(), "--color")
}
