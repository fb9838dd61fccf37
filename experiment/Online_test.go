package experiment

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samuelfneumann/smartcab/agent/tabular/qlearning"
	"github.com/samuelfneumann/smartcab/experiment/tracker"
	ts "github.com/samuelfneumann/smartcab/timestep"
	"github.com/samuelfneumann/smartcab/traffic"
)

// metricValue returns the value of the counter or gauge name in reg
func metricValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		metric := family.GetMetric()[0]
		if counter := metric.GetCounter(); counter != nil {
			return counter.GetValue()
		}
		return metric.GetGauge().GetValue()
	}

	t.Fatalf("metric %v not registered", name)
	return 0
}

func TestRun(t *testing.T) {
	const trials = 6

	config := DefaultConfig()
	config.Trials = trials
	config.Seed = 3

	reg := prometheus.NewRegistry()
	ret := tracker.NewReturn("")
	length := tracker.NewEpisodeLength("")
	success := tracker.NewSuccess("")

	o, err := config.CreateExp(reg, ret, length)
	if err != nil {
		t.Fatal(err)
	}
	o.Register(success)

	var results []Result
	o.OnTrial(func(r Result) { results = append(results, r) })

	steps := 0
	o.OnStep(func(trial int, step ts.TimeStep) error {
		if trial != len(results) {
			t.Errorf("onStep: want trial %v, have %v", len(results), trial)
		}
		steps++
		return nil
	})

	if err := o.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(results) != trials || o.CurrentTrial() != trials {
		t.Fatalf("run: want %v trials, have %v", trials, len(results))
	}

	returns := ret.Data()
	lengths := length.Data()
	totalSteps, successes := 0, 0.0
	for i, r := range results {
		if r.Trial != i {
			t.Errorf("result: want trial %v, have %v", i, r.Trial)
		}
		if r.End == ts.Running {
			t.Errorf("result: trial %v did not end", i)
		}
		if math.Abs(r.Return-returns[i]) > 1e-9 {
			t.Errorf("result: agent return %v does not match tracked "+
				"return %v", r.Return, returns[i])
		}
		if float64(r.Steps) != lengths[i] {
			t.Errorf("result: want %v steps, have %v", lengths[i], r.Steps)
		}
		want := math.Pow(0.8, float64(i+1))
		if math.Abs(r.Exploration-want) > 1e-12 {
			t.Errorf("result: want exploration %v, have %v", want,
				r.Exploration)
		}
		totalSteps += r.Steps
		if r.Success() {
			successes++
		}
	}

	if steps != totalSteps {
		t.Errorf("onStep: want %v calls, have %v", totalSteps, steps)
	}
	if metricValue(t, reg, "smartcab_trials_total") != trials {
		t.Errorf("metrics: want %v trials", trials)
	}
	if metricValue(t, reg, "smartcab_steps_total") != float64(totalSteps) {
		t.Errorf("metrics: want %v steps", totalSteps)
	}
	if metricValue(t, reg, "smartcab_successes_total") != successes {
		t.Errorf("metrics: want %v successes", successes)
	}
	if metricValue(t, reg, "smartcab_trial_return") != results[trials-1].Return {
		t.Errorf("metrics: trial return should be that of the last trial")
	}
	if metricValue(t, reg, "smartcab_table_entries") == 0 {
		t.Errorf("metrics: table should have entries after training")
	}
	if math.Abs(success.Rate()*trials-successes) > 1e-9 {
		t.Errorf("success: want %v successes, have rate %v", successes,
			success.Rate())
	}

	ended, err := o.RunEpisode(context.Background())
	if !ended || err != nil {
		t.Errorf("runEpisode: want no more trials, have %v, %v", ended, err)
	}
	if err := o.Save(); err != nil {
		t.Errorf("save: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	config := DefaultConfig()
	o, err := config.CreateExp(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := o.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("run: want context.Canceled, have %v", err)
	}
	if o.CurrentTrial() != 0 {
		t.Errorf("run: no trial should finish after cancellation")
	}
}

func TestRunDelay(t *testing.T) {
	config := DefaultConfig()
	config.UpdateDelay = 10

	o, err := config.CreateExp(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = o.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("run: want context.DeadlineExceeded, have %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("run: cancellation should interrupt the update delay")
	}
}

func TestStepHookError(t *testing.T) {
	o, err := DefaultConfig().CreateExp(nil)
	if err != nil {
		t.Fatal(err)
	}

	stop := errors.New("stop")
	o.OnStep(func(int, ts.TimeStep) error { return stop })
	if _, err := o.RunEpisode(context.Background()); !errors.Is(err, stop) {
		t.Errorf("runEpisode: want hook error, have %v", err)
	}
}

func TestConfigJSON(t *testing.T) {
	config := DefaultConfig()
	config.Trials = 3
	config.UpdateDelay = 0.05
	config.EnvConf.NumDummies = 5

	data, err := json.Marshal(config)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Config
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config, decoded); diff != "" {
		t.Errorf("unmarshal: mismatch (-want +have):\n%s", diff)
	}

	if _, err := decoded.CreateExp(nil); err != nil {
		t.Errorf("createExp: %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	noTrials := DefaultConfig()
	noTrials.Trials = 0

	badIndex := DefaultConfig()
	badIndex.ConfigIndex = 1

	badType := DefaultConfig()
	badType.Type = "OfflineExperiment"

	badEnv := DefaultConfig()
	badEnv.EnvConf.Rows = 0

	negativeDelay := DefaultConfig()
	negativeDelay.UpdateDelay = -1

	for name, c := range map[string]Config{
		"no trials":      noTrials,
		"bad index":      badIndex,
		"bad type":       badType,
		"bad env":        badEnv,
		"negative delay": negativeDelay,
	} {
		if _, err := c.CreateExp(nil); err == nil {
			t.Errorf("createExp: %v should be rejected", name)
		}
	}
}

func TestAgentSeed(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 11
	if config.AgentSeed() == config.Seed {
		t.Fatalf("agentSeed: agent and environment should not share seed %v",
			config.Seed)
	}

	o, err := config.CreateExp(nil)
	if err != nil {
		t.Fatal(err)
	}
	created, ok := o.Agent.(*qlearning.QLearning)
	if !ok {
		t.Fatalf("createExp: want *qlearning.QLearning, have %T", o.Agent)
	}

	agentConf, err := config.AgentConf.At(config.ConfigIndex)
	if err != nil {
		t.Fatal(err)
	}
	want, err := qlearning.New(agentConf.(qlearning.Config), config.AgentSeed())
	if err != nil {
		t.Fatal(err)
	}

	// With ε = 1 every action is random, so equal action sequences mean
	// equal random streams
	obs := traffic.Observation{
		Inputs:       traffic.NoTraffic(traffic.Green),
		NextWaypoint: traffic.Forward,
	}
	for i := 0; i < 50; i++ {
		haveAction, err := created.Step(obs, 10)
		if err != nil {
			t.Fatal(err)
		}
		wantAction, err := want.Step(obs, 10)
		if err != nil {
			t.Fatal(err)
		}
		if haveAction != wantAction {
			t.Fatalf("step %v: agent should be seeded with %v", i,
				config.AgentSeed())
		}
	}
}
