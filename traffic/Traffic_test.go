package traffic

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/smartcab/space"
)

func TestTurns(t *testing.T) {
	turns := []struct {
		from, left, right Heading
	}{
		{East, North, South},
		{North, West, East},
		{West, South, North},
		{South, East, West},
	}

	for _, turn := range turns {
		if h := turn.from.TurnLeft(); h != turn.left {
			t.Errorf("turnLeft from %v: want %v, have %v", turn.from,
				turn.left, h)
		}
		if h := turn.from.TurnRight(); h != turn.right {
			t.Errorf("turnRight from %v: want %v, have %v", turn.from,
				turn.right, h)
		}
	}
}

func TestDistance(t *testing.T) {
	a, b := Location{1, 1}, Location{4, 6}
	if d := a.Distance(b); d != 8 {
		t.Errorf("distance: want 8, have %v", d)
	}
}

func TestStateSpaceSize(t *testing.T) {
	if n := StateSchema.NumStates(); n != 4*4*4*2 {
		t.Errorf("numStates: want 128, have %v", n)
	}
}

func TestDiscretize(t *testing.T) {
	obs := Observation{
		Inputs: Inputs{
			Light:    Red,
			Oncoming: Left,
			Left:     Forward,
			Right:    Right,
		},
		NextWaypoint: Forward,
	}

	state, err := Discretize(obs)
	if err != nil {
		t.Fatal(err)
	}

	want := space.State{
		NextWaypointAttr: Forward,
		OncomingAttr:     Left,
		LeftAttr:         Forward,
		LightAttr:        Red,
	}
	if !state.Equal(want) {
		t.Errorf("discretize: want %v, have %v", want, state)
	}

	obs.Light = "yellow"
	if _, err := Discretize(obs); !errors.Is(err, space.ErrInvalidState) {
		t.Errorf("discretize: invalid light should be rejected, have %v", err)
	}
}
