// Package qtable implements a tabular action-value function over
// discrete state and action vocabularies.
//
// Entries of a QTable are created lazily: any (state, action) pair not
// yet observed is treated as having a value of 0.0, and that default is
// written into the table the first time the pair is touched. A state
// for which some action has never been touched is considered
// unexplored, and greedy action selection in such a state falls back
// to a uniformly random action.
package qtable

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/smartcab/space"
	"github.com/samuelfneumann/smartcab/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"k8s.io/klog/v2"
)

// ErrInvalidArgument is returned when an argument to a QTable is
// outside of its valid range
var ErrInvalidArgument = errors.New("invalid argument")

// QTable implements a tabular action-value function
type QTable struct {
	schema   space.Schema
	actions  space.Actions
	discount float64
	table    map[space.Key]float64

	// random samples uniformly from the action vocabulary
	random distuv.Categorical
}

// New returns a new, empty QTable over the states described by schema
// and the ordered action vocabulary actions. The discount factor must
// be in [0, 1]. The source src is used whenever a uniformly random
// action is required.
func New(schema space.Schema, actions space.Actions, discount float64,
	src rand.Source) (*QTable, error) {
	if !floatutils.InUnit(discount) {
		return nil, fmt.Errorf("new: %w: discount %v not in [0, 1]",
			ErrInvalidArgument, discount)
	}
	if actions.Len() == 0 {
		return nil, fmt.Errorf("new: %w: empty action vocabulary",
			ErrInvalidArgument)
	}
	if len(schema) == 0 {
		return nil, fmt.Errorf("new: %w: empty state schema",
			ErrInvalidArgument)
	}

	weights := make([]float64, actions.Len())
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	q := &QTable{
		schema:   schema,
		actions:  actions,
		discount: discount,
		table:    make(map[space.Key]float64),
		random:   distuv.NewCategorical(weights, src),
	}

	klog.InfoS("Q-Learner created", "states", q.NumStates(),
		"actions", q.NumActions())

	return q, nil
}

// NumStates returns the total number of addressable states
func (q *QTable) NumStates() int {
	return q.schema.NumStates()
}

// NumActions returns the number of actions in the action vocabulary
func (q *QTable) NumActions() int {
	return q.actions.Len()
}

// Discount returns the discount factor
func (q *QTable) Discount() float64 {
	return q.discount
}

// Actions returns the action vocabulary of the QTable
func (q *QTable) Actions() space.Actions {
	return q.actions
}

// Len returns the number of materialized entries in the table
func (q *QTable) Len() int {
	return len(q.table)
}

// Known returns whether an entry for (state, action) exists. Known
// never creates an entry.
func (q *QTable) Known(state space.State, action string) bool {
	_, ok := q.table[space.NewKey(state, action)]
	return ok
}

// Entries returns a copy of all materialized entries
func (q *QTable) Entries() map[space.Key]float64 {
	entries := make(map[space.Key]float64, len(q.table))
	for key, value := range q.table {
		entries[key] = value
	}
	return entries
}

// Value returns the value of (state, action). If no entry exists for
// the pair, an entry of 0.0 is written into the table and returned.
func (q *QTable) Value(state space.State, action string) (float64, error) {
	if err := q.validate(state, action); err != nil {
		return 0, fmt.Errorf("value: %w", err)
	}
	return q.value(space.NewKey(state, action)), nil
}

// value is the get-or-insert-default accessor of the table
func (q *QTable) value(key space.Key) float64 {
	v, ok := q.table[key]
	if !ok {
		q.table[key] = 0.0
	}
	return v
}

// BestAction returns the action with the largest value in state. Ties
// are broken by the declared order of the action vocabulary, the first
// maximizing action winning.
//
// If any action in state has no entry in the table, the state is
// treated as unexplored and a uniformly random action is returned
// instead, regardless of the values of the actions that do have
// entries. No entries are created by BestAction.
func (q *QTable) BestAction(state space.State) (string, error) {
	if err := q.schema.Validate(state); err != nil {
		return "", fmt.Errorf("bestAction: %w", err)
	}

	tuple := state.Tuple()
	values := make([]float64, q.actions.Len())
	for i, action := range q.actions {
		v, ok := q.table[space.Key{State: tuple, Action: action}]
		if !ok {
			return q.RandomAction(), nil
		}
		values[i] = v
	}

	return q.actions[floatutils.ArgMax(values)], nil
}

// RandomAction returns an action sampled uniformly from the action
// vocabulary
func (q *QTable) RandomAction() string {
	return q.actions[int(q.random.Rand())]
}

// Update performs the one-step Q-learning update
//
//	Q(s, a) ← α[r + γ max_a' Q(s', a')] + (1 - α) Q(s, a)
//
// where α is the learning rate, which must be in [0, 1]. Any of the
// entries Q(s, a) or Q(s', ·) that do not exist are created with a
// value of 0.0 before the update is performed. If the learning rate is
// invalid, an error wrapping ErrInvalidArgument is returned and the
// table is left untouched.
func (q *QTable) Update(state space.State, action string, reward float64,
	nextState space.State, learningRate float64) error {
	if !floatutils.InUnit(learningRate) {
		return fmt.Errorf("update: %w: learning rate %v not in [0, 1]",
			ErrInvalidArgument, learningRate)
	}
	if err := q.validate(state, action); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := q.schema.Validate(nextState); err != nil {
		return fmt.Errorf("update: next state: %w", err)
	}

	key := space.NewKey(state, action)
	current := q.value(key)

	// Calculate the action values in the next state
	nextTuple := nextState.Tuple()
	nextValues := make([]float64, q.actions.Len())
	for i, nextAction := range q.actions {
		nextValues[i] = q.value(space.Key{State: nextTuple, Action: nextAction})
	}
	maxNext, _ := floatutils.MaxSlice(nextValues)

	target := reward + q.discount*maxNext
	q.table[key] = learningRate*target + (1-learningRate)*current

	klog.V(5).InfoS("Q-Learner update", "key", key, "value", q.table[key])
	return nil
}

// validate ensures state and action are valid for the QTable
func (q *QTable) validate(state space.State, action string) error {
	if err := q.schema.Validate(state); err != nil {
		return err
	}
	if !q.actions.Contains(action) {
		return fmt.Errorf("%w: action %q not in vocabulary",
			ErrInvalidArgument, action)
	}
	return nil
}
