package qlearning

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/smartcab/agent"
)

// Default hyperparameters
const (
	DefaultInitialExploration = 1.0
	DefaultExplorationDecay   = 0.8
	DefaultDiscount           = 0.8
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.EGreedyQLearningTabular, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	InitialExploration []float64
	ExplorationDecay   []float64
	Discount           []float64
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be JSON serialized/deserialized without
// knowing the underlying concrete type.
func NewConfigList(initialExploration, explorationDecay,
	discount []float64) agent.TypedConfigList {
	config := ConfigList{
		InitialExploration: initialExploration,
		ExplorationDecay:   explorationDecay,
		Discount:           discount,
	}
	return agent.NewTypedConfigList(config)
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of agent that can be constructed by Config's
// stored by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.InitialExploration) * len(c.ExplorationDecay) *
		len(c.Discount)
}

// Config represents a configuration for the QLearning agent
type Config struct {
	InitialExploration float64 // initial ε of the behaviour policy
	ExplorationDecay   float64 // multiplicative decay of ε per episode
	Discount           float64
}

// DefaultConfig returns the default QLearning configuration
func DefaultConfig() Config {
	return Config{
		InitialExploration: DefaultInitialExploration,
		ExplorationDecay:   DefaultExplorationDecay,
		Discount:           DefaultDiscount,
	}
}

// CreateAgent creates the agent from the Config. Agent values are
// always initialized lazily to zero.
func (c Config) CreateAgent(seed uint64) (agent.Agent, error) {
	return New(c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.InitialExploration <= 0 || c.InitialExploration > 1 {
		return fmt.Errorf("initial exploration must be in (0, 1]")
	}
	if c.ExplorationDecay <= 0 || c.ExplorationDecay > 1 {
		return fmt.Errorf("exploration decay must be in (0, 1]")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1]")
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}
