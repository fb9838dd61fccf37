// Package trafficgrid implements a grid world of intersections with
// traffic lights, in which a primary car driven by an agent shares the
// roads with dummy cars.
//
// Roads wrap around the edges of the grid. Each step the primary car
// acts first, then each dummy car, after which the deadline of the
// primary car is decremented and the traffic lights are updated.
package trafficgrid

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/planner"
	"github.com/samuelfneumann/smartcab/timestep"
	"github.com/samuelfneumann/smartcab/traffic"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"k8s.io/klog/v2"
)

const (
	// MinDistance is the minimum Manhattan distance between the start
	// and destination of the primary car
	MinDistance = 4

	// DeadlineFactor is the number of time steps allowed per unit of
	// distance between start and destination
	DeadlineFactor = 5

	// HardTimeLimit is the deadline below which an episode always ends,
	// whether or not the deadline is enforced
	HardTimeLimit = -100
)

// Rewards
const (
	CorrectMoveReward   = 2.0
	IncorrectMoveReward = -0.5
	NoMoveReward        = 0.0
	IllegalMoveReward   = -1.0
	ArrivalBonus        = 10.0
)

var (
	// ErrEpisodeEnded is returned when stepping an episode which has
	// already ended
	ErrEpisodeEnded = errors.New("episode has ended")

	// ErrInvalidAction is returned when stepping with an action outside
	// the action vocabulary
	ErrInvalidAction = errors.New("invalid action")
)

// Colours of dummy cars
var dummyColours = []string{"blue", "cyan", "magenta", "orange"}

// World is the traffic grid environment. It implements the
// environment.Environment interface.
type World struct {
	rows, cols int
	lights     []*TrafficLight

	primary *Car
	dummies []*Car

	destination traffic.Location
	deadline    int
	t           int
	arrived     bool

	planner *planner.RoutePlanner
	starter *environment.UniformStarter
	enders  []environment.Ender

	lightPhase    distuv.Bernoulli
	dummyWaypoint distuv.Categorical

	currentStep timestep.TimeStep
}

// New creates a new World from config, using seed to seed all random
// number generation. The returned World has been reset and is ready
// to use.
func New(config Config, seed uint64) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}
	src := rand.NewSource(seed)

	starter, err := environment.NewUniformStarter(config.Rows, config.Cols,
		MinDistance, src)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	w := &World{
		rows:          config.Rows,
		cols:          config.Cols,
		primary:       &Car{Colour: "red"},
		planner:       planner.New(),
		starter:       starter,
		lightPhase:    distuv.Bernoulli{P: 0.5, Src: src},
		dummyWaypoint: uniform(len(traffic.Actions)-1, src),
	}

	period := uniform(len(periods), src)
	w.lights = make([]*TrafficLight, config.Rows*config.Cols)
	for i := range w.lights {
		w.lights[i] = NewTrafficLight(w.lightPhase.Rand() == 1,
			periods[int(period.Rand())])
	}

	colour := uniform(len(dummyColours), src)
	w.dummies = make([]*Car, config.NumDummies)
	for i := range w.dummies {
		w.dummies[i] = &Car{
			Waypoint: w.randomWaypoint(),
			Colour:   dummyColours[int(colour.Rand())],
		}
	}

	// Arrival takes precedence over running out of time
	arrival := environment.NewFunctionEnder(
		func(*timestep.TimeStep) bool { return w.arrived },
		timestep.TerminalStateReached,
	)
	w.enders = []environment.Ender{arrival}
	if config.EnforceDeadline {
		w.enders = append(w.enders, environment.NewDeadline(0))
	}
	w.enders = append(w.enders, environment.NewDeadline(HardTimeLimit))

	w.Reset()
	return w, nil
}

// Reset starts a new episode: the lights are given new random phases,
// the primary car a new start and destination, and every dummy car a
// new random location and heading. Reset returns the first TimeStep of
// the episode and the destination of the primary car.
func (w *World) Reset() (timestep.TimeStep, traffic.Location) {
	w.t = 0
	w.arrived = false

	for _, light := range w.lights {
		light.Reset(w.lightPhase.Rand() == 1)
	}

	start := w.starter.Start()
	w.primary.Location = start.Location
	w.primary.Heading = start.Heading
	w.destination = start.Destination
	w.deadline = start.Location.Distance(start.Destination) * DeadlineFactor
	w.planner.RouteTo(w.destination)

	for _, dummy := range w.dummies {
		dummy.Location = w.starter.Location()
		dummy.Heading = w.starter.Heading()
	}

	klog.V(1).InfoS("Environment reset", "start", start.Location,
		"heading", start.Heading, "destination", w.destination,
		"deadline", w.deadline)

	w.currentStep = timestep.New(timestep.First, 0, w.deadline, w.Observe(),
		0)
	return w.currentStep, w.destination
}

// Observe returns the current observation of the primary car: its
// sensed inputs and the next waypoint suggested by the route planner
func (w *World) Observe() traffic.Observation {
	return traffic.Observation{
		Inputs:       w.sense(w.primary),
		NextWaypoint: w.waypoint(w.primary),
	}
}

// Step performs action for the primary car, then lets each dummy car
// act and advances time. The returned TimeStep holds the reward for
// the action and the observation of the primary car immediately after
// acting.
func (w *World) Step(action string) (timestep.TimeStep, bool, error) {
	if w.currentStep.Last() {
		return w.currentStep, true, fmt.Errorf("step: %w", ErrEpisodeEnded)
	}
	if !traffic.Actions.Contains(action) {
		return w.currentStep, false, fmt.Errorf("step: %w %q",
			ErrInvalidAction, action)
	}

	reward := w.act(w.primary, action)
	obs := w.Observe()

	for _, dummy := range w.dummies {
		w.drive(dummy)
	}

	w.t++
	w.deadline--

	step := timestep.New(timestep.Mid, reward, w.deadline, obs,
		w.currentStep.Number+1)
	step.Action = action
	for _, ender := range w.enders {
		if ender.End(&step) {
			break
		}
	}

	for _, light := range w.lights {
		light.Update(w.t)
	}

	w.currentStep = step
	return step, step.Last(), nil
}

// CurrentTimeStep returns the most recent TimeStep
func (w *World) CurrentTimeStep() timestep.TimeStep {
	return w.currentStep
}

// Destination returns the destination of the primary car
func (w *World) Destination() traffic.Location {
	return w.destination
}

// Deadline returns the number of time steps left before the deadline
// of the primary car expires
func (w *World) Deadline() int {
	return w.deadline
}

// T returns the number of time steps taken in the current episode
func (w *World) T() int {
	return w.t
}

// Dims returns the number of rows and columns of the grid
func (w *World) Dims() (rows, cols int) {
	return w.rows, w.cols
}

// Primary returns a copy of the primary car
func (w *World) Primary() Car {
	car := *w.primary
	car.Waypoint = w.waypoint(w.primary)
	return car
}

// LightAt returns the traffic light at location l
func (w *World) LightAt(l traffic.Location) *TrafficLight {
	return w.lights[(l.Y-1)*w.cols+(l.X-1)]
}

// randomWaypoint returns a uniformly random move other than
// traffic.None
func (w *World) randomWaypoint() string {
	return traffic.Actions[1+int(w.dummyWaypoint.Rand())]
}

// uniform returns a uniform categorical distribution over
// (0, 1, 2, ... n-1)
func uniform(n int, src rand.Source) distuv.Categorical {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return distuv.NewCategorical(weights, src)
}
