package environment

import "github.com/samuelfneumann/smartcab/timestep"

// Deadline implements the Ender interface to end episodes once the
// deadline of the primary car drops below some floor
type Deadline struct {
	floor int
}

// NewDeadline creates and returns a new Deadline ender which ends
// episodes once the remaining deadline is below floor. A floor of 0
// enforces the deadline; a negative floor acts as a hard time limit
// past the deadline.
func NewDeadline(floor int) Deadline {
	return Deadline{floor}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is timestep.Timeout.
func (d Deadline) End(t *timestep.TimeStep) bool {
	if t.Deadline < d.floor {
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
