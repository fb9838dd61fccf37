package agent

import (
	"fmt"
	"reflect"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config constructs
	Type() Type
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, a
// ConfigList stores a slice of values for each field of the Config and
// represents every combination of these field values.
//
// Each field of a concrete ConfigList must be a slice whose name and
// element type match a field of the Config returned by Config().
type ConfigList interface {
	// Config returns an empty Config of the type stored by the list
	Config() Config

	// Type returns the type of agent the stored Configs construct
	Type() Type

	// NumFields returns the number of settable fields
	NumFields() int

	// Len returns the number of Configs stored by the list
	Len() int
}

// ConfigAt returns the Config at index i in the ConfigList. Configs
// are enumerated with the first field of the ConfigList varying
// fastest.
func ConfigAt(i int, c ConfigList) (Config, error) {
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("configAt: index %v out of range [0, %v)", i,
			c.Len())
	}

	list := reflect.ValueOf(c)
	config := reflect.New(reflect.TypeOf(c.Config())).Elem()

	for f := 0; f < list.NumField(); f++ {
		values := list.Field(f)
		name := list.Type().Field(f).Name

		field := config.FieldByName(name)
		if !field.IsValid() {
			return nil, fmt.Errorf("configAt: config has no field %v", name)
		}

		n := values.Len()
		field.Set(values.Index(i % n))
		i /= n
	}

	return config.Interface().(Config), nil
}
