package space

import (
	"fmt"
	"sort"
	"strings"
)

// separator joins attribute values in a state tuple. It is a control
// character so that it never collides with a domain value.
const separator = "\x1f"

// State is a discretized snapshot of named attributes. Two States are
// equal when they hold identical attribute -> value pairs, regardless
// of the order in which they were constructed.
type State map[string]string

// Tuple returns the canonical tuple of the State: its attribute values
// listed in lexicographic attribute-name order.
func (s State) Tuple() string {
	attributes := make([]string, 0, len(s))
	for attribute := range s {
		attributes = append(attributes, attribute)
	}
	sort.Strings(attributes)

	values := make([]string, len(attributes))
	for i, attribute := range attributes {
		values[i] = s[attribute]
	}
	return strings.Join(values, separator)
}

// Equal returns whether two States hold the same attribute -> value
// pairs
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for attribute, value := range s {
		if otherValue, ok := other[attribute]; !ok || otherValue != value {
			return false
		}
	}
	return true
}

// Clone returns a copy of the State
func (s State) Clone() State {
	clone := make(State, len(s))
	for attribute, value := range s {
		clone[attribute] = value
	}
	return clone
}

// String returns the State as a string
func (s State) String() string {
	attributes := make([]string, 0, len(s))
	for attribute := range s {
		attributes = append(attributes, attribute)
	}
	sort.Strings(attributes)

	pairs := make([]string, len(attributes))
	for i, attribute := range attributes {
		pairs[i] = fmt.Sprintf("%v: %v", attribute, s[attribute])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Key is the canonical composite key of a (state, action) pair. Keys
// are comparable and can be used directly to index a map.
type Key struct {
	State  string // canonical state tuple
	Action string
}

// NewKey returns the canonical Key of a (state, action) pair
func NewKey(state State, action string) Key {
	return Key{State: state.Tuple(), Action: action}
}

// String returns the Key as a string
func (k Key) String() string {
	values := strings.Split(k.State, separator)
	values = append(values, k.Action)
	return "(" + strings.Join(values, ", ") + ")"
}
