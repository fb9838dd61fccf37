// Package space implements the discrete state and action vocabularies
// that tabular learners are defined over.
//
// A Schema describes every attribute a State may hold together with the
// finite domain of values that attribute can take. States are plain
// attribute -> value mappings, and are converted into canonical,
// comparable Keys before being used to index a value table.
package space

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samuelfneumann/smartcab/utils/intutils"
)

// ErrInvalidState is returned when a State does not conform to a Schema
var ErrInvalidState = errors.New("state does not conform to schema")

// Schema maps attribute names to the finite, ordered domain of values
// that each attribute may take
type Schema map[string][]string

// Attributes returns the attribute names of the Schema in lexicographic
// order. This is the order in which attribute values appear in a
// canonical state tuple.
func (s Schema) Attributes() []string {
	attributes := make([]string, 0, len(s))
	for attribute := range s {
		attributes = append(attributes, attribute)
	}
	sort.Strings(attributes)

	return attributes
}

// NumStates returns the number of distinct states addressable by the
// Schema, the product of the sizes of each attribute's domain
func (s Schema) NumStates() int {
	if len(s) == 0 {
		return 0
	}

	sizes := make([]int, 0, len(s))
	for _, domain := range s {
		sizes = append(sizes, len(domain))
	}
	return intutils.Prod(sizes...)
}

// Validate returns an error wrapping ErrInvalidState if the argument
// State is missing an attribute of the Schema, holds an attribute not
// in the Schema, or holds a value outside an attribute's domain.
func (s Schema) Validate(state State) error {
	if len(state) != len(s) {
		return fmt.Errorf("validate: %w: want %d attributes, have %d",
			ErrInvalidState, len(s), len(state))
	}

	for attribute, value := range state {
		domain, ok := s[attribute]
		if !ok {
			return fmt.Errorf("validate: %w: unknown attribute %q",
				ErrInvalidState, attribute)
		}
		if !contains(domain, value) {
			return fmt.Errorf("validate: %w: value %q not in domain of %q",
				ErrInvalidState, value, attribute)
		}
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
