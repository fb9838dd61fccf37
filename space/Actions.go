package space

// Actions is a finite, ordered action vocabulary. The declared order
// of the vocabulary is significant: it determines tie-breaking when
// selecting greedy actions.
type Actions []string

// Len returns the number of actions in the vocabulary
func (a Actions) Len() int {
	return len(a)
}

// Index returns the index of action in the vocabulary, or -1 if the
// action is not in the vocabulary
func (a Actions) Index(action string) int {
	for i, act := range a {
		if act == action {
			return i
		}
	}
	return -1
}

// Contains returns whether action is in the vocabulary
func (a Actions) Contains(action string) bool {
	return a.Index(action) >= 0
}
