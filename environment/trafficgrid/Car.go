package trafficgrid

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/traffic"
	"k8s.io/klog/v2"
)

// Car is a vehicle on the grid. The Waypoint of a car is the move it
// intends to make next, which other cars at the same intersection can
// sense.
type Car struct {
	Location traffic.Location
	Heading  traffic.Heading
	Waypoint string
	Colour   string
}

func (c Car) String() string {
	return fmt.Sprintf("%v car at %v heading %v", c.Colour, c.Location,
		c.Heading)
}

// cars returns every car in the world, the primary car first
func (w *World) cars() []*Car {
	return append([]*Car{w.primary}, w.dummies...)
}

// waypoint returns the intended move of car. The primary car intends
// whatever the route planner suggests.
func (w *World) waypoint(car *Car) string {
	if car == w.primary {
		return w.planner.NextWaypoint(car.Location, car.Heading)
	}
	return car.Waypoint
}

// sense returns the inputs of car: the light facing it and the
// intended moves of cars approaching its intersection. Cars travelling
// in the same direction are not sensed. An oncoming car turning left
// and traffic from the left going forward are never overridden by
// later cars, nor is traffic from the right going forward or left.
func (w *World) sense(car *Car) traffic.Inputs {
	heading := car.Heading
	inputs := traffic.NoTraffic(w.LightAt(car.Location).Colour(heading))

	for _, other := range w.cars() {
		if other == car || other.Location != car.Location ||
			other.Heading == heading {
			continue
		}

		intent := w.waypoint(other)
		switch {
		case heading.Dot(other.Heading) == -1:
			if inputs.Oncoming != traffic.Left {
				inputs.Oncoming = intent
			}

		case heading.Y == other.Heading.X && -heading.X == other.Heading.Y:
			if inputs.Right != traffic.Forward && inputs.Right != traffic.Left {
				inputs.Right = intent
			}

		default:
			if inputs.Left != traffic.Forward {
				inputs.Left = intent
			}
		}
	}

	return inputs
}

// act performs action for car and returns the reward. Illegal moves
// leave the car in place. The primary car is rewarded for following
// the route planner and receives a bonus for reaching its destination
// before the deadline expires.
func (w *World) act(car *Car, action string) float64 {
	inputs := w.sense(car)
	waypoint := w.waypoint(car)
	heading := car.Heading
	green := inputs.Light == traffic.Green

	legal := true
	switch action {
	case traffic.Forward:
		legal = green

	case traffic.Left:
		if green && (inputs.Oncoming == traffic.None ||
			inputs.Oncoming == traffic.Left) {
			heading = heading.TurnLeft()
		} else {
			legal = false
		}

	case traffic.Right:
		if green || inputs.Left != traffic.Forward {
			heading = heading.TurnRight()
		} else {
			legal = false
		}
	}

	var reward float64
	switch {
	case !legal:
		reward = IllegalMoveReward

	case action == traffic.None:
		reward = NoMoveReward

	default:
		car.Location = w.move(car.Location, heading)
		car.Heading = heading
		if action == waypoint {
			reward = CorrectMoveReward
		} else {
			reward = IncorrectMoveReward
		}
	}

	if car == w.primary && car.Location == w.destination {
		if w.deadline >= 0 {
			reward += ArrivalBonus
		}
		w.arrived = true
		klog.V(1).InfoS("Primary car reached destination",
			"destination", w.destination, "deadline", w.deadline)
	}

	return reward
}

// drive lets a dummy car follow its waypoint if the traffic rules
// allow it. After moving, the car picks a new random waypoint.
func (w *World) drive(car *Car) {
	inputs := w.sense(car)
	red := inputs.Light == traffic.Red

	okay := true
	switch car.Waypoint {
	case traffic.Right:
		okay = !(red && inputs.Left == traffic.Forward)

	case traffic.Forward:
		okay = !red

	case traffic.Left:
		okay = !red && inputs.Oncoming != traffic.Forward &&
			inputs.Oncoming != traffic.Right
	}

	action := traffic.None
	if okay {
		action = car.Waypoint
		car.Waypoint = w.randomWaypoint()
	}
	w.act(car, action)
}

// move returns the location one block from l along heading, wrapping
// around the edges of the grid
func (w *World) move(l traffic.Location, heading traffic.Heading) traffic.Location {
	return traffic.Location{
		X: wrap(l.X+heading.X, w.cols),
		Y: wrap(l.Y+heading.Y, w.rows),
	}
}

// wrap maps v into 1..n
func wrap(v, n int) int {
	return ((v-1)%n+n)%n + 1
}
