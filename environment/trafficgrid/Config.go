package trafficgrid

import (
	"fmt"
)

// Config implements a configuration of the traffic grid. Configs are
// JSON serializable.
type Config struct {
	Rows            int
	Cols            int
	NumDummies      int
	EnforceDeadline bool
}

// DefaultConfig returns the default traffic grid: 8 columns and 6 rows
// of intersections with 3 dummy cars and an enforced deadline
func DefaultConfig() Config {
	return Config{
		Rows:            6,
		Cols:            8,
		NumDummies:      3,
		EnforceDeadline: true,
	}
}

// Validate returns an error if the Config cannot describe a world
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("grid must have at least one intersection, have "+
			"%v×%v", c.Cols, c.Rows)
	}
	if (c.Rows-1)+(c.Cols-1) < MinDistance {
		return fmt.Errorf("grid %v×%v too small for start and destination "+
			"%v apart", c.Cols, c.Rows, MinDistance)
	}
	if c.NumDummies < 0 {
		return fmt.Errorf("number of dummies must be non-negative, have %v",
			c.NumDummies)
	}
	return nil
}

// Create returns the World described by the Config, ready to use
func (c Config) Create(seed uint64) (*World, error) {
	return New(c, seed)
}
