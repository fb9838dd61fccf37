package space

import (
	"errors"
	"testing"
)

func testSchema() Schema {
	actions := []string{"none", "forward", "left", "right"}
	return Schema{
		"next_waypoint": actions,
		"oncoming":      actions,
		"left":          actions,
		"light":         {"green", "red"},
	}
}

func TestSchemaNumStates(t *testing.T) {
	if n := testSchema().NumStates(); n != 128 {
		t.Errorf("numStates: want 128, have %v", n)
	}

	if n := (Schema{}).NumStates(); n != 0 {
		t.Errorf("numStates: empty schema should have 0 states, have %v", n)
	}
}

func TestSchemaAttributesSorted(t *testing.T) {
	want := []string{"left", "light", "next_waypoint", "oncoming"}
	have := testSchema().Attributes()

	if len(have) != len(want) {
		t.Fatalf("attributes: want %v, have %v", want, have)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("attributes: want %v, have %v", want, have)
		}
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := testSchema()

	valid := State{
		"next_waypoint": "forward",
		"oncoming":      "none",
		"left":          "left",
		"light":         "red",
	}
	if err := schema.Validate(valid); err != nil {
		t.Errorf("validate: valid state rejected: %v", err)
	}

	missing := valid.Clone()
	delete(missing, "light")

	extra := valid.Clone()
	extra["right"] = "none"

	outOfDomain := valid.Clone()
	outOfDomain["light"] = "yellow"

	renamed := valid.Clone()
	delete(renamed, "left")
	renamed["right"] = "none"

	for name, state := range map[string]State{
		"missing":     missing,
		"extra":       extra,
		"outOfDomain": outOfDomain,
		"renamed":     renamed,
	} {
		err := schema.Validate(state)
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("validate %v: want ErrInvalidState, have %v", name, err)
		}
	}
}

func TestKeyIsStructural(t *testing.T) {
	a := State{}
	a["light"] = "green"
	a["left"] = "none"
	a["oncoming"] = "right"
	a["next_waypoint"] = "left"

	b := State{
		"next_waypoint": "left",
		"oncoming":      "right",
		"left":          "none",
		"light":         "green",
	}

	if !a.Equal(b) {
		t.Errorf("equal: states with identical pairs should be equal")
	}
	if NewKey(a, "forward") != NewKey(b, "forward") {
		t.Errorf("key: keys of equal states differ: %v != %v",
			NewKey(a, "forward"), NewKey(b, "forward"))
	}
	if NewKey(a, "forward") == NewKey(b, "left") {
		t.Errorf("key: keys with different actions should differ")
	}

	table := map[Key]float64{NewKey(a, "none"): 1.5}
	if table[NewKey(b, "none")] != 1.5 {
		t.Errorf("key: lookup with structurally equal state failed")
	}
}

func TestKeyString(t *testing.T) {
	state := State{
		"next_waypoint": "left",
		"oncoming":      "right",
		"left":          "none",
		"light":         "green",
	}

	want := "(none, green, left, right, forward)"
	if have := NewKey(state, "forward").String(); have != want {
		t.Errorf("string: want %v, have %v", want, have)
	}
}

func TestActionsIndex(t *testing.T) {
	actions := Actions{"none", "forward", "left", "right"}

	if i := actions.Index("left"); i != 2 {
		t.Errorf("index: want 2, have %v", i)
	}
	if actions.Contains("reverse") {
		t.Errorf("contains: reverse should not be in vocabulary")
	}
}
