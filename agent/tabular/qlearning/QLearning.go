// Package qlearning implements a tabular Q-Learning agent for the
// smartcab world.
//
// The agent discretizes each raw observation into a traffic.StateSchema
// state, selects actions with an ε-greedy policy whose ε decays once
// per episode, and performs one Q-learning update per time step with
// the harmonic learning rate 1/(t+1), where t is the index of the time
// step within the episode.
package qlearning

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/smartcab/agent/tabular/policy"
	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/space"
	"github.com/samuelfneumann/smartcab/traffic"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"
)

// ErrNoPendingStep is returned when an outcome is observed before an
// action has been selected
var ErrNoPendingStep = errors.New("no pending step")

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	q         *qtable.QTable
	behaviour *policy.DecayingEGreedy
	actions   space.Actions

	cumulativeReward float64
	episodes         int

	// The most recent decision, waiting for its outcome
	state   space.State
	action  string
	pending bool
}

// New creates a new QLearning agent from config, using seed to seed
// all random number generation
func New(config Config, seed uint64) (*QLearning, error) {
	return NewWithSource(config, rand.NewSource(seed))
}

// NewWithSource creates a new QLearning agent from config, drawing all
// randomness from src. Both the exploration coin flip and any random
// action selection use src.
func NewWithSource(config Config, src rand.Source) (*QLearning, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	q, err := qtable.New(traffic.StateSchema, traffic.Actions,
		config.Discount, src)
	if err != nil {
		return nil, fmt.Errorf("new: could not create value table: %w", err)
	}

	behaviour, err := policy.NewDecayingEGreedy(q, config.InitialExploration,
		config.ExplorationDecay, src)
	if err != nil {
		return nil, fmt.Errorf("new: could not create policy: %w", err)
	}

	return &QLearning{
		q:         q,
		behaviour: behaviour,
		actions:   traffic.Actions,
	}, nil
}

// StartEpisode resets the cumulative reward and decays the exploration
// intensity. The destination is ignored by the learner.
func (l *QLearning) StartEpisode(destination traffic.Location) {
	l.cumulativeReward = 0
	l.behaviour.Decay()
	l.pending = false
	l.episodes++

	klog.V(1).InfoS("Starting episode", "episode", l.episodes,
		"destination", destination, "exploration", l.behaviour.Epsilon())
}

// Step discretizes the observation and selects an action: the greedy
// action with probability 1 - ε, otherwise a uniformly random action.
// The selected state-action pair is recorded for the following call to
// ObserveOutcome. The deadline is informational only.
func (l *QLearning) Step(obs traffic.Observation,
	deadline int) (string, error) {
	state, err := traffic.Discretize(obs)
	if err != nil {
		return "", fmt.Errorf("step: %w", err)
	}

	action, err := l.behaviour.SelectAction(state)
	if err != nil {
		return "", fmt.Errorf("step: %w", err)
	}

	l.state = state
	l.action = action
	l.pending = true

	return action, nil
}

// ObserveOutcome updates the value table with the outcome of the
// pending decision, using a learning rate of 1/(t+1), and accumulates
// the reward.
func (l *QLearning) ObserveOutcome(reward float64, next traffic.Observation,
	t int) error {
	if !l.pending {
		return fmt.Errorf("observeOutcome: %w", ErrNoPendingStep)
	}
	if t < 0 {
		return fmt.Errorf("observeOutcome: %w: negative time step %v",
			qtable.ErrInvalidArgument, t)
	}

	nextState, err := traffic.Discretize(next)
	if err != nil {
		return fmt.Errorf("observeOutcome: %w", err)
	}

	learningRate := 1.0 / float64(t+1)
	err = l.q.Update(l.state, l.action, reward, nextState, learningRate)
	if err != nil {
		return fmt.Errorf("observeOutcome: %w", err)
	}

	l.cumulativeReward += reward
	l.pending = false
	return nil
}

// Pending returns the state and action of the decision awaiting its
// outcome, if any
func (l *QLearning) Pending() (space.State, string, bool) {
	if !l.pending {
		return nil, "", false
	}
	return l.state.Clone(), l.action, true
}

// CumulativeReward returns the reward accumulated in the current
// episode
func (l *QLearning) CumulativeReward() float64 {
	return l.cumulativeReward
}

// Exploration returns the current exploration intensity
func (l *QLearning) Exploration() float64 {
	return l.behaviour.Epsilon()
}

// Actions returns the action vocabulary of the agent
func (l *QLearning) Actions() space.Actions {
	return l.actions
}

// TableSize returns the number of materialized entries in the value
// table
func (l *QLearning) TableSize() int {
	return l.q.Len()
}

// QTable returns the value table of the agent
func (l *QLearning) QTable() *qtable.QTable {
	return l.q
}
