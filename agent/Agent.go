// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/smartcab/traffic"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns from the outcome of
// each action, and a Policy which chooses actions in each state. The
// Policy chooses which actions are taken, and the Learner uses the
// outcomes of these actions to update the Policy.
//
// Each time step is a full round trip: the Policy is asked for an
// action with Step, the host submits that action to the environment,
// and the Learner is then told the outcome with ObserveOutcome.
type Agent interface {
	Learner
	Policy

	// StartEpisode prepares the agent for a new episode. The
	// destination of the episode is informational only.
	StartEpisode(destination traffic.Location)

	// CumulativeReward returns the reward accumulated in the
	// current episode
	CumulativeReward() float64
}

// Learner implements a learning algorithm that defines how the values
// an agent acts on are updated.
type Learner interface {
	// ObserveOutcome records that the action chosen by the most recent
	// call to Step received reward and led to the observation next.
	// The argument t is the index of the time step within the episode
	// on which the action was taken.
	ObserveOutcome(reward float64, next traffic.Observation, t int) error
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions.
type Policy interface {
	// Step selects an action given an observation and the number of
	// steps left before the deadline.
	Step(obs traffic.Observation, deadline int) (string, error)
}
