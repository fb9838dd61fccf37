package trafficgrid

import "github.com/samuelfneumann/smartcab/traffic"

// Light is the state of the traffic light at an intersection
type Light struct {
	Location   traffic.Location
	NorthSouth bool
}

// Snapshot is a copy of the state of the World at one point in time,
// used for display
type Snapshot struct {
	Rows, Cols  int
	T           int
	Deadline    int
	Lights      []Light
	Primary     Car
	Dummies     []Car
	Destination traffic.Location
}

// Snapshot returns a copy of the current state of the World
func (w *World) Snapshot() Snapshot {
	lights := make([]Light, len(w.lights))
	for i, light := range w.lights {
		lights[i] = Light{
			Location:   traffic.Location{X: i%w.cols + 1, Y: i/w.cols + 1},
			NorthSouth: light.NorthSouth(),
		}
	}

	dummies := make([]Car, len(w.dummies))
	for i, dummy := range w.dummies {
		dummies[i] = *dummy
	}

	return Snapshot{
		Rows:        w.rows,
		Cols:        w.cols,
		T:           w.t,
		Deadline:    w.deadline,
		Lights:      lights,
		Primary:     w.Primary(),
		Dummies:     dummies,
		Destination: w.destination,
	}
}
