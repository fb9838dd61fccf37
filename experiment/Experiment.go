// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samuelfneumann/smartcab/agent"
	"github.com/samuelfneumann/smartcab/agent/tabular/qlearning"
	"github.com/samuelfneumann/smartcab/environment/trafficgrid"
	"github.com/samuelfneumann/smartcab/experiment/tracker"
	ts "github.com/samuelfneumann/smartcab/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments will track environment TimeSteps, caching each TimeStep
// in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all trials until the trial limit is reached or the context is
// cancelled. The RunEpisode() function will run a single trial.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments will
// send each TimeStep to Trackers using the Tracker's Track() method.
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() function.
type Experiment interface {
	Run(ctx context.Context) error

	// Returns whether or not all trials have finished
	RunEpisode(ctx context.Context) (bool, error)

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

// Type is the type of an experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment. Configs are
// JSON serializable.
type Config struct {
	Type
	Trials      int
	Seed        uint64
	UpdateDelay float64 // Seconds to wait between steps
	EnvConf     trafficgrid.Config
	AgentConf   agent.TypedConfigList
	ConfigIndex int // Index of the agent Config in AgentConf
}

// DefaultConfig returns the default experiment: 100 trials of the
// default Q-learning agent on the default traffic grid
func DefaultConfig() Config {
	defaults := qlearning.DefaultConfig()
	return Config{
		Type:        OnlineExp,
		Trials:      100,
		Seed:        0,
		UpdateDelay: 0,
		EnvConf:     trafficgrid.DefaultConfig(),
		AgentConf: qlearning.NewConfigList(
			[]float64{defaults.InitialExploration},
			[]float64{defaults.ExplorationDecay},
			[]float64{defaults.Discount},
		),
		ConfigIndex: 0,
	}
}

// Validate returns an error if the Config does not describe a runnable
// experiment
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %v", c.Type)
	}
	if c.Trials < 1 {
		return fmt.Errorf("validate: at least one trial required, have %v",
			c.Trials)
	}
	if c.UpdateDelay < 0 {
		return fmt.Errorf("validate: update delay must be non-negative, "+
			"have %v", c.UpdateDelay)
	}
	if c.AgentConf.ConfigList == nil {
		return fmt.Errorf("validate: no agent configuration")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// AgentSeed returns the seed of the agent, which differs from the
// environment's seed so that the two never share a random stream
func (c Config) AgentSeed() uint64 {
	return c.Seed + 1
}

// CreateExp creates the experiment described by the Config. Metrics
// are registered with reg, and t are the Trackers of the experiment.
func (c Config) CreateExp(reg prometheus.Registerer,
	t ...tracker.Tracker) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	env, err := c.EnvConf.Create(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %w",
			err)
	}

	agentConf, err := c.AgentConf.At(c.ConfigIndex)
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}
	if err := agentConf.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: invalid agent config: %w", err)
	}

	agent, err := agentConf.CreateAgent(c.AgentSeed())
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	delay := time.Duration(c.UpdateDelay * float64(time.Second))
	return NewOnline(env, agent, c.Trials, delay, reg, t...), nil
}
