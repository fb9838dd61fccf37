package policy

import (
	"math"
	"testing"

	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/space"
	"golang.org/x/exp/rand"
)

// constSource is a rand.Source which always produces the same value,
// so that rand.Float64 always returns approximately f.
type constSource struct {
	value uint64
}

func newConstSource(f float64) *constSource {
	return &constSource{uint64(f * (1 << 53))}
}

func (c *constSource) Uint64() uint64 { return c.value }
func (c *constSource) Seed(uint64)    {}

var actions = space.Actions{"none", "forward", "left", "right"}

func knownTable(t *testing.T) (*qtable.QTable, space.State) {
	t.Helper()
	schema := space.Schema{"light": {"green", "red"}}
	q, err := qtable.New(schema, actions, 0.8, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	s := space.State{"light": "green"}
	next := space.State{"light": "red"}
	if err := q.Update(s, "forward", 10, next, 1.0); err != nil {
		t.Fatal(err)
	}
	for _, a := range actions {
		if _, err := q.Value(s, a); err != nil {
			t.Fatal(err)
		}
	}
	return q, s
}

func TestSelectActionExploits(t *testing.T) {
	q, s := knownTable(t)

	p, err := NewDecayingEGreedy(q, 0.5, 0.9, newConstSource(0.9))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if p.Explore() {
			t.Fatalf("explore: coin of 0.9 > ε = 0.5 should exploit")
		}
		a, err := p.SelectAction(s)
		if err != nil {
			t.Fatal(err)
		}
		if a != "forward" {
			t.Errorf("selectAction: want greedy action forward, have %v", a)
		}
	}
}

func TestSelectActionExplores(t *testing.T) {
	q, s := knownTable(t)

	p, err := NewDecayingEGreedy(q, 0.5, 0.9, newConstSource(0.1))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Explore() {
		t.Errorf("explore: coin of 0.1 <= ε = 0.5 should explore")
	}

	// With ε = 1 every action is random, so non-greedy actions must
	// eventually be selected
	p, err = NewDecayingEGreedy(q, 1.0, 0.9, rand.NewSource(42))
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]int)
	for i := 0; i < 400; i++ {
		a, err := p.SelectAction(s)
		if err != nil {
			t.Fatal(err)
		}
		seen[a]++
	}
	for _, a := range actions {
		if seen[a] == 0 {
			t.Errorf("selectAction: action %v never selected under ε = 1", a)
		}
	}
}

func TestDecayMonotonic(t *testing.T) {
	q, _ := knownTable(t)

	const (
		initial = 1.0
		decay   = 0.8
	)
	p, err := NewDecayingEGreedy(q, initial, decay, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	previous := p.Epsilon()
	for n := 1; n <= 200; n++ {
		p.Decay()
		want := initial * math.Pow(decay, float64(n))
		if math.Abs(p.Epsilon()-want) > 1e-12*want {
			t.Errorf("decay %d: want %v, have %v", n, want, p.Epsilon())
		}
		if p.Epsilon() >= previous || p.Epsilon() <= 0 {
			t.Errorf("decay %d: ε should strictly decrease and stay "+
				"positive: %v -> %v", n, previous, p.Epsilon())
		}
		previous = p.Epsilon()
	}
}

func TestNewDecayingEGreedyInvalid(t *testing.T) {
	q, _ := knownTable(t)

	for _, c := range []struct{ e, decay float64 }{
		{0, 0.5}, {1.5, 0.5}, {0.5, 0}, {0.5, 1.1},
	} {
		if _, err := NewDecayingEGreedy(q, c.e, c.decay,
			rand.NewSource(1)); err == nil {
			t.Errorf("new: ε = %v, decay = %v should be rejected", c.e,
				c.decay)
		}
	}
}
