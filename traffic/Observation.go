package traffic

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/space"
)

// State attributes
const (
	NextWaypointAttr = "next_waypoint"
	OncomingAttr     = "oncoming"
	LeftAttr         = "left"
	LightAttr        = "light"
)

// StateSchema is the schema of the discretized state a learning car
// acts on: the route planner's hint, the intended moves of oncoming
// traffic and of traffic from the left, and the light colour. Traffic
// from the right never has right of way over the car and is not part
// of the state.
var StateSchema = space.Schema{
	NextWaypointAttr: Actions,
	OncomingAttr:     Actions,
	LeftAttr:         Actions,
	LightAttr:        Lights,
}

// Inputs are the sensor readings of a car at an intersection: the
// light colour facing the car, and the intended moves of other cars
// approaching the intersection from each direction.
type Inputs struct {
	Light    string
	Oncoming string
	Left     string
	Right    string
}

// NoTraffic returns the Inputs at an intersection with a light of the
// argument colour and no other cars
func NoTraffic(light string) Inputs {
	return Inputs{Light: light, Oncoming: None, Left: None, Right: None}
}

// String returns the Inputs as a string
func (i Inputs) String() string {
	return fmt.Sprintf("{light: %v, oncoming: %v, left: %v, right: %v}",
		i.Light, i.Oncoming, i.Left, i.Right)
}

// Observation is a raw observation of the world from a car's
// perspective: its sensor readings together with the next waypoint
// suggested by its route planner
type Observation struct {
	Inputs
	NextWaypoint string
}

// Discretize converts a raw observation into the canonical state
// described by StateSchema
func Discretize(o Observation) (space.State, error) {
	state := space.State{
		NextWaypointAttr: o.NextWaypoint,
		OncomingAttr:     o.Oncoming,
		LeftAttr:         o.Left,
		LightAttr:        o.Light,
	}

	if err := StateSchema.Validate(state); err != nil {
		return nil, fmt.Errorf("discretize: %w", err)
	}
	return state, nil
}
