// Package environment outlines the interfaces and structs needed to
// implement concrete traffic environments
package environment

import (
	"github.com/samuelfneumann/smartcab/timestep"
	"github.com/samuelfneumann/smartcab/traffic"
)

// Start describes where the primary car begins an episode and where it
// must drive to
type Start struct {
	Location    traffic.Location
	Heading     traffic.Heading
	Destination traffic.Location
}

// Starter implements a distribution of episode starts
type Starter interface {
	Start() Start
}

// Ender determines when an episode should end. If the episode should
// be ended, End modifies the timestep so that it is the last of its
// episode and records how the episode ended.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated traffic environment in which a
// single primary car is driven by an agent.
//
// Each step, the host reads the primary car's current observation with
// Observe, chooses an action, and submits it with Step. The TimeStep
// returned by Step holds the reward for the action and the primary
// car's observation immediately after acting.
type Environment interface {
	// Reset starts a new episode, returning its first TimeStep and the
	// destination of the primary car
	Reset() (timestep.TimeStep, traffic.Location)

	// Observe returns the current observation of the primary car
	Observe() traffic.Observation

	// Step performs an action for the primary car and advances the
	// world by one time step. The returned boolean reports whether the
	// episode has ended.
	Step(action string) (timestep.TimeStep, bool, error)

	// CurrentTimeStep returns the most recent TimeStep
	CurrentTimeStep() timestep.TimeStep
}
