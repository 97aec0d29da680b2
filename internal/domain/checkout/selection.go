package checkout

// AutoSelectNewLines is the selection policy for lines that newly appear in
// the cart: they start selected, so the checkout total reflects the full
// cart unless the user deliberately deselects something.
const AutoSelectNewLines = true

// SelectionSet is the subset of cart-line ids the user intends to check
// out. It is pure UI state with no server counterpart and must stay a
// subset of the current cart-line ids; Reconcile enforces that on every
// cart change.
type SelectionSet map[int64]struct{}

// NewSelectionSet creates an empty selection set
func NewSelectionSet() SelectionSet {
	return make(SelectionSet)
}

// Contains reports whether the line id is selected
func (s SelectionSet) Contains(lineID int64) bool {
	_, ok := s[lineID]
	return ok
}

// Toggle flips the selection state of a line id and returns the new state
func (s SelectionSet) Toggle(lineID int64) bool {
	if s.Contains(lineID) {
		delete(s, lineID)
		return false
	}
	s[lineID] = struct{}{}
	return true
}

// SelectAll replaces the selection with all of the given line ids
func (s SelectionSet) SelectAll(lineIDs []int64) {
	for id := range s {
		delete(s, id)
	}
	for _, id := range lineIDs {
		s[id] = struct{}{}
	}
}

// Current returns a copy of the selected line ids
func (s SelectionSet) Current() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of selected line ids
func (s SelectionSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the selection set
func (s SelectionSet) Clone() SelectionSet {
	out := make(SelectionSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Reconcile intersects the selection with the given cart lines and, when
// autoSelectNew is set, selects any line id not seen before. It is a pure
// synchronous reconciliation with no I/O. previous holds the line ids of
// the cart state the selection was last reconciled against, so that only
// genuinely new lines are auto-selected.
func (s SelectionSet) Reconcile(lines []CartLine, previous []int64, autoSelectNew bool) {
	current := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		current[line.LineID] = struct{}{}
	}

	// Removed lines drop out silently
	for id := range s {
		if _, ok := current[id]; !ok {
			delete(s, id)
		}
	}

	if !autoSelectNew {
		return
	}

	known := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		known[id] = struct{}{}
	}
	for id := range current {
		if _, seen := known[id]; !seen {
			s[id] = struct{}{}
		}
	}
}
