package trafficgrid

import (
	"github.com/samuelfneumann/smartcab/traffic"
)

// Possible periods of a traffic light, in time steps
var periods = []int{3, 4, 5}

// TrafficLight is the light at an intersection. Travel is allowed in
// exactly one axis at a time: north-south while the light is in its
// north-south phase, east-west otherwise. The phase flips every period
// time steps.
type TrafficLight struct {
	northSouth  bool
	period      int
	lastUpdated int
}

// NewTrafficLight returns a new TrafficLight in the argument phase
// which flips every period time steps
func NewTrafficLight(northSouth bool, period int) *TrafficLight {
	return &TrafficLight{northSouth: northSouth, period: period}
}

// Reset sets the phase of the light and restarts its period
func (l *TrafficLight) Reset(northSouth bool) {
	l.northSouth = northSouth
	l.lastUpdated = 0
}

// Update flips the phase of the light if at least one period has
// passed since it last flipped
func (l *TrafficLight) Update(t int) {
	if t-l.lastUpdated >= l.period {
		l.northSouth = !l.northSouth
		l.lastUpdated = t
	}
}

// NorthSouth returns whether the light is in its north-south phase
func (l *TrafficLight) NorthSouth() bool {
	return l.northSouth
}

// Period returns the period of the light
func (l *TrafficLight) Period() int {
	return l.period
}

// Colour returns the colour of the light facing a car travelling with
// the argument heading
func (l *TrafficLight) Colour(h traffic.Heading) string {
	if (l.northSouth && h.Y != 0) || (!l.northSouth && h.X != 0) {
		return traffic.Green
	}
	return traffic.Red
}
