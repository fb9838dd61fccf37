package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samuelfneumann/smartcab/agent"
	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/experiment/tracker"
	ts "github.com/samuelfneumann/smartcab/timestep"
	"k8s.io/klog/v2"
)

// Result summarizes a finished trial
type Result struct {
	Trial       int
	Steps       int
	Return      float64
	Deadline    int // Deadline remaining when the trial ended
	End         ts.EndType
	Exploration float64
}

// Success returns whether the primary car reached its destination
func (r Result) Success() bool {
	return r.End == ts.TerminalStateReached
}

// StepHook is called after every step of a trial
type StepHook func(trial int, step ts.TimeStep) error

// TrialHook is called after every finished trial
type TrialHook func(Result)

// explorer is implemented by agents which expose their exploration
// intensity
type explorer interface {
	Exploration() float64
}

// sizer is implemented by agents which expose the size of their value
// table
type sizer interface {
	TableSize() int
}

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	trials       int
	currentTrial int
	updateDelay  time.Duration
	trackers     []tracker.Tracker
	stepHooks    []StepHook
	trialHooks   []TrialHook
	metrics      *metrics
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The trials parameter determines how
// many trials the experiment is run for, delay is the time waited
// after each step, and t is a slice of tracker.Tracker which determine
// what data is saved. Metrics are registered with reg if it is not
// nil.
func NewOnline(e env.Environment, a agent.Agent, trials int,
	delay time.Duration, reg prometheus.Registerer,
	t ...tracker.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		trials:      trials,
		updateDelay: delay,
		trackers:    t,
		metrics:     newMetrics(reg),
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// OnStep registers a function to be called after every step
func (o *Online) OnStep(h StepHook) {
	o.stepHooks = append(o.stepHooks, h)
}

// OnTrial registers a function to be called after every trial
func (o *Online) OnTrial(h TrialHook) {
	o.trialHooks = append(o.trialHooks, h)
}

// CurrentTrial returns the number of finished trials
func (o *Online) CurrentTrial() int {
	return o.currentTrial
}

// RunEpisode runs a single trial of the experiment. Each step, the
// agent selects an action from the current observation, the
// environment performs it, and the agent observes the outcome.
// RunEpisode returns whether all trials have finished.
//
// If ctx is cancelled, RunEpisode returns between steps with the
// context's error. The agent is never left between selecting an action
// and observing its outcome.
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	if o.currentTrial >= o.trials {
		return true, nil
	}

	step, destination := o.Environment.Reset()
	o.Agent.StartEpisode(destination)
	o.track(step)

	klog.V(1).InfoS("Starting trial", "trial", o.currentTrial,
		"destination", destination, "deadline", step.Deadline)

	for !step.Last() {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		obs := o.Environment.Observe()
		action, err := o.Agent.Step(obs, step.Deadline)
		if err != nil {
			return false, fmt.Errorf("runEpisode: could not select action: %w",
				err)
		}

		next, _, err := o.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: could not step "+
				"environment: %w", err)
		}

		err = o.Agent.ObserveOutcome(next.Reward, next.Observation, step.Number)
		if err != nil {
			return false, fmt.Errorf("runEpisode: could not observe "+
				"outcome: %w", err)
		}

		klog.V(2).InfoS("Agent update", "deadline", step.Deadline,
			"inputs", obs.Inputs, "action", action, "reward", next.Reward)

		step = next
		o.track(step)
		o.metrics.steps.Inc()

		for _, hook := range o.stepHooks {
			if err := hook(o.currentTrial, step); err != nil {
				return false, fmt.Errorf("runEpisode: %w", err)
			}
		}

		if o.updateDelay > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(o.updateDelay):
			}
		}
	}

	result := Result{
		Trial:    o.currentTrial,
		Steps:    step.Number,
		Return:   o.Agent.CumulativeReward(),
		Deadline: step.Deadline,
		End:      step.EndType(),
	}
	if e, ok := o.Agent.(explorer); ok {
		result.Exploration = e.Exploration()
	}
	o.observe(result)

	o.currentTrial++
	return o.currentTrial >= o.trials, nil
}

// Run runs the experiment until all trials have finished or ctx is
// cancelled
func (o *Online) Run(ctx context.Context) error {
	for {
		ended, err := o.RunEpisode(ctx)
		if err != nil {
			return err
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each
// Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// observe records a finished trial in the logs, the metrics, and every
// trial hook
func (o *Online) observe(r Result) {
	klog.InfoS("Trial finished", "trial", r.Trial, "steps", r.Steps,
		"return", r.Return, "deadline", r.Deadline, "end", r.End)

	o.metrics.trials.Inc()
	if r.Success() {
		o.metrics.successes.Inc()
	}
	o.metrics.trialReturn.Set(r.Return)
	o.metrics.trialLength.Set(float64(r.Steps))
	o.metrics.exploration.Set(r.Exploration)
	if s, ok := o.Agent.(sizer); ok {
		o.metrics.tableSize.Set(float64(s.TableSize()))
	}

	for _, hook := range o.trialHooks {
		hook(r)
	}
}
