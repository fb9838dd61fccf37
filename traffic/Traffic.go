// Package traffic defines the vocabulary of the smartcab world: the
// actions a car may take, traffic lights, headings and locations on
// the road grid, and the sensor readings a car receives at an
// intersection.
package traffic

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/space"
	"github.com/samuelfneumann/smartcab/utils/intutils"
)

// Actions a car can take at an intersection. None is also used as the
// sensed value when no car is present in some direction.
const (
	None    = "none"
	Forward = "forward"
	Left    = "left"
	Right   = "right"
)

// Traffic light colours
const (
	Green = "green"
	Red   = "red"
)

// Actions is the ordered action vocabulary of every car
var Actions = space.Actions{None, Forward, Left, Right}

// Lights is the domain of traffic light colours
var Lights = []string{Green, Red}

// Heading is a unit direction of travel on the grid. The y axis points
// south, so that North is (0, -1).
type Heading struct {
	X, Y int
}

// Valid headings
var (
	East  = Heading{1, 0}
	North = Heading{0, -1}
	West  = Heading{-1, 0}
	South = Heading{0, 1}
)

// Headings lists all valid headings
var Headings = []Heading{East, North, West, South}

// TurnLeft returns the heading after a left turn
func (h Heading) TurnLeft() Heading {
	return Heading{h.Y, -h.X}
}

// TurnRight returns the heading after a right turn
func (h Heading) TurnRight() Heading {
	return Heading{-h.Y, h.X}
}

// Dot returns the dot product of two headings
func (h Heading) Dot(other Heading) int {
	return h.X*other.X + h.Y*other.Y
}

// String returns the heading as a string
func (h Heading) String() string {
	switch h {
	case East:
		return "E"
	case North:
		return "N"
	case West:
		return "W"
	case South:
		return "S"
	}
	return fmt.Sprintf("(%d, %d)", h.X, h.Y)
}

// Location is an intersection on the grid
type Location struct {
	X, Y int
}

// Distance returns the Manhattan distance between two locations
func (l Location) Distance(other Location) int {
	return intutils.Abs(l.X-other.X) + intutils.Abs(l.Y-other.Y)
}

// String returns the location as a string
func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}
