// Package policy implements behaviour policies over tabular action-value
// functions
package policy

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/space"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DecayingEGreedy implements an ε-greedy policy whose ε decays
// multiplicatively each time Decay is called. With probability ε a
// uniformly random action is selected; otherwise the greedy action of
// the underlying QTable is selected.
type DecayingEGreedy struct {
	q       *qtable.QTable
	epsilon float64
	decay   float64

	coin   distuv.Uniform     // Coin flip in [0, 1)
	random distuv.Categorical // Uniform distribution over actions
}

// NewDecayingEGreedy returns a new DecayingEGreedy policy selecting
// greedy actions from q. The initial exploration intensity e must be in
// (0, 1] and the decay factor must be in (0, 1]. All randomness is drawn
// from src.
func NewDecayingEGreedy(q *qtable.QTable, e, decay float64,
	src rand.Source) (*DecayingEGreedy, error) {
	if e <= 0 || e > 1 {
		return nil, fmt.Errorf("newDecayingEGreedy: epsilon %v not in (0, 1]",
			e)
	}
	if decay <= 0 || decay > 1 {
		return nil, fmt.Errorf("newDecayingEGreedy: decay %v not in (0, 1]",
			decay)
	}

	numActions := q.Actions().Len()
	weights := make([]float64, numActions)
	for i := range weights {
		weights[i] = 1.0 / float64(numActions)
	}

	return &DecayingEGreedy{
		q:       q,
		epsilon: e,
		decay:   decay,
		coin:    distuv.Uniform{Min: 0, Max: 1, Src: src},
		random:  distuv.NewCategorical(weights, src),
	}, nil
}

// Epsilon returns the current exploration intensity
func (p *DecayingEGreedy) Epsilon() float64 {
	return p.epsilon
}

// Decay multiplies the exploration intensity by the decay factor
func (p *DecayingEGreedy) Decay() {
	p.epsilon *= p.decay
}

// Explore flips a coin and returns whether the next action should be
// chosen at random. A uniform number in [0, 1) is drawn, and the policy
// exploits only if it exceeds the current exploration intensity.
func (p *DecayingEGreedy) Explore() bool {
	return !(p.coin.Rand() > p.epsilon)
}

// SelectAction selects an action in state from the ε-greedy policy
func (p *DecayingEGreedy) SelectAction(state space.State) (string, error) {
	if p.Explore() {
		return p.RandomAction(), nil
	}

	action, err := p.q.BestAction(state)
	if err != nil {
		return "", fmt.Errorf("selectAction: %w", err)
	}
	return action, nil
}

// RandomAction returns an action sampled uniformly from the action
// vocabulary
func (p *DecayingEGreedy) RandomAction() string {
	return p.q.Actions()[int(p.random.Rand())]
}
