package environment

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/traffic"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformStarter samples episode starts uniformly over the
// intersections of a grid with columns 1..cols and rows 1..rows. The
// start and destination are resampled until they are at least some
// Manhattan distance apart, and the start heading is uniform over
// traffic.Headings.
type UniformStarter struct {
	rows, cols  int
	minDistance int

	intersection distuv.Categorical
	heading      distuv.Categorical
}

// NewUniformStarter returns a new UniformStarter drawing from src
func NewUniformStarter(rows, cols, minDistance int,
	src rand.Source) (*UniformStarter, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("newUniformStarter: grid must have at least "+
			"one intersection, have %v×%v", cols, rows)
	}
	if maxDistance := (rows - 1) + (cols - 1); minDistance > maxDistance {
		return nil, fmt.Errorf("newUniformStarter: minimum distance %v "+
			"exceeds largest distance %v on the grid", minDistance,
			maxDistance)
	}

	return &UniformStarter{
		rows:         rows,
		cols:         cols,
		minDistance:  minDistance,
		intersection: uniform(rows*cols, src),
		heading:      uniform(len(traffic.Headings), src),
	}, nil
}

// Start returns a new episode start
func (u *UniformStarter) Start() Start {
	start := u.Location()
	destination := u.Location()
	for start.Distance(destination) < u.minDistance {
		start = u.Location()
		destination = u.Location()
	}

	return Start{
		Location:    start,
		Heading:     u.Heading(),
		Destination: destination,
	}
}

// Location returns a uniformly random intersection
func (u *UniformStarter) Location() traffic.Location {
	i := int(u.intersection.Rand())
	return traffic.Location{X: i%u.cols + 1, Y: i/u.cols + 1}
}

// Heading returns a uniformly random heading
func (u *UniformStarter) Heading() traffic.Heading {
	return traffic.Headings[int(u.heading.Rand())]
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
