package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoorStatePredicates(t *testing.T) {
	tests := []struct {
		state        DoorState
		inTransition bool
		targetOpen   bool
	}{
		{Closed, false, false},
		{Opening, true, true},
		{Open, false, true},
		{Closing, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.inTransition, tt.state.InTransition())
			assert.Equal(t, tt.targetOpen, tt.state.TargetOpen())
		})
	}
}

func TestViewFlip(t *testing.T) {
	assert.Equal(t, Rear, Front.Flip())
	assert.Equal(t, Front, Rear.Flip())
}

func TestValidate(t *testing.T) {
	app := New()
	assert.True(t, app.DoorTriggerEnabled)
	assert.NoError(t, app.Validate())

	app.View = Rear
	assert.NoError(t, app.Validate())

	app.Door = Opening
	assert.Error(t, app.Validate())
}
