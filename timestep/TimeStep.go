// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/traffic"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes how an episode ended
type EndType int

const (
	// Running indicates that the episode has not ended
	Running EndType = iota

	// TerminalStateReached indicates that the car reached its destination
	TerminalStateReached

	// Timeout indicates that the deadline ran out
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Running"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// Observation is the observation of the primary car after the step,
// Action is the action that led to the step (traffic.None on the
// first step), and Deadline is the number of steps left before the
// deadline expires.
type TimeStep struct {
	StepType
	Reward      float64
	Deadline    int
	Action      string
	Observation traffic.Observation
	Number      int

	end EndType
}

// New returns a new TimeStep
func New(t StepType, r float64, deadline int, o traffic.Observation,
	n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Deadline:    deadline,
		Action:      traffic.None,
		Observation: o,
		Number:      n,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last of its episode, ended in the
// manner described by e
func (t *TimeStep) SetEnd(e EndType) {
	t.StepType = Last
	t.end = e
}

// EndType returns how the episode ended, or Running if the TimeStep is
// not the last in its episode
func (t *TimeStep) EndType() EndType {
	if !t.Last() {
		return Running
	}
	return t.end
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Deadline: %d  |  " +
		"Action: %v  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Deadline, t.Action,
		t.Number)
}
