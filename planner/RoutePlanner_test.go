package planner

import (
	"testing"

	"github.com/samuelfneumann/smartcab/traffic"
)

func TestNextWaypoint(t *testing.T) {
	destination := traffic.Location{X: 5, Y: 3}

	tests := []struct {
		name     string
		location traffic.Location
		heading  traffic.Heading
		want     string
	}{
		{"arrived", traffic.Location{X: 5, Y: 3}, traffic.East, traffic.None},
		{"eastbound towards", traffic.Location{X: 2, Y: 3}, traffic.East,
			traffic.Forward},
		{"westbound away", traffic.Location{X: 2, Y: 3}, traffic.West,
			traffic.Right},
		{"northbound needs east", traffic.Location{X: 2, Y: 3}, traffic.North,
			traffic.Right},
		{"southbound needs east", traffic.Location{X: 2, Y: 3}, traffic.South,
			traffic.Left},
		{"southbound towards", traffic.Location{X: 5, Y: 1}, traffic.South,
			traffic.Forward},
		{"northbound away", traffic.Location{X: 5, Y: 1}, traffic.North,
			traffic.Right},
		{"eastbound needs south", traffic.Location{X: 5, Y: 1}, traffic.East,
			traffic.Right},
		{"westbound needs south", traffic.Location{X: 5, Y: 1}, traffic.West,
			traffic.Left},
		{"eastbound needs north", traffic.Location{X: 5, Y: 6}, traffic.East,
			traffic.Left},
		{"east-west first", traffic.Location{X: 1, Y: 1}, traffic.South,
			traffic.Left},
	}

	p := New()
	p.RouteTo(destination)
	for _, test := range tests {
		have := p.NextWaypoint(test.location, test.heading)
		if have != test.want {
			t.Errorf("%v: want %v, have %v", test.name, test.want, have)
		}
	}
}

func TestNoDestination(t *testing.T) {
	p := New()
	if _, ok := p.Destination(); ok {
		t.Errorf("destination: new planner should have no destination")
	}
	if have := p.NextWaypoint(traffic.Location{X: 1, Y: 1},
		traffic.East); have != traffic.None {
		t.Errorf("nextWaypoint: want none without a destination, have %v",
			have)
	}
}
