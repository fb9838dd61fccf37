package tracker

import (
	"github.com/samuelfneumann/smartcab/timestep"
	"gonum.org/v1/gonum/stat"
)

// Success tracks whether each episode ended with the primary car at
// its destination, recording 1 for a success and 0 otherwise.
type Success struct {
	successes []float64
	filename  string
}

// NewSuccess returns a new Success tracker which will save its data at
// the specified location filename
func NewSuccess(filename string) *Success {
	var tracker Success
	tracker.filename = filename
	return &tracker
}

// Track records the outcome of an episode when passed its last
// timestep
func (s *Success) Track(t timestep.TimeStep) {
	if !t.Last() {
		return
	}

	if t.EndType() == timestep.TerminalStateReached {
		s.successes = append(s.successes, 1)
	} else {
		s.successes = append(s.successes, 0)
	}
}

// Rate returns the fraction of finished episodes which were successful,
// or 0 if no episode has finished
func (s *Success) Rate() float64 {
	if len(s.successes) == 0 {
		return 0
	}
	return stat.Mean(s.successes, nil)
}

// Data returns the outcomes of all finished episodes
func (s *Success) Data() []float64 {
	return append([]float64(nil), s.successes...)
}

// Save saves the data tracked by the Success Tracker to disk.
func (s *Success) Save() error {
	return save(s.filename, s.successes)
}
