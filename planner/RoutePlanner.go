// Package planner implements a route planner that suggests the next
// move towards a destination on the road grid
package planner

import (
	"github.com/samuelfneumann/smartcab/traffic"
)

// RoutePlanner suggests waypoints towards a destination. East-west
// differences are resolved before north-south differences, and a car
// facing away from its destination is sent right to begin a long
// U-turn around the block.
type RoutePlanner struct {
	destination traffic.Location
	routed      bool
}

// New returns a new RoutePlanner with no destination
func New() *RoutePlanner {
	return &RoutePlanner{}
}

// RouteTo sets the destination of the planner
func (r *RoutePlanner) RouteTo(destination traffic.Location) {
	r.destination = destination
	r.routed = true
}

// Destination returns the current destination and whether one has
// been set
func (r *RoutePlanner) Destination() (traffic.Location, bool) {
	return r.destination, r.routed
}

// NextWaypoint returns the suggested action for a car at location
// travelling with heading. If no destination has been set or the car
// is already at its destination, traffic.None is returned.
func (r *RoutePlanner) NextWaypoint(location traffic.Location,
	heading traffic.Heading) string {
	if !r.routed {
		return traffic.None
	}

	dx := r.destination.X - location.X
	dy := r.destination.Y - location.Y

	switch {
	case dx == 0 && dy == 0:
		return traffic.None

	case dx != 0:
		switch {
		case dx*heading.X > 0:
			return traffic.Forward
		case dx*heading.X < 0:
			return traffic.Right
		case dx*heading.Y > 0:
			return traffic.Left
		default:
			return traffic.Right
		}

	default:
		switch {
		case dy*heading.Y > 0:
			return traffic.Forward
		case dy*heading.Y < 0:
			return traffic.Right
		case dy*heading.X > 0:
			return traffic.Right
		default:
			return traffic.Left
		}
	}
}
