package domain

// EntryState is a data entry's lifecycle state, derived by folding its events.
type EntryState string

const (
	StateDraft     EntryState = "draft"
	StateSubmitted EntryState = "submitted"
	StateConfirmed EntryState = "confirmed"
	StateRejected  EntryState = "rejected"
	StateCorrected EntryState = "corrected"
	StateCancelled EntryState = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s EntryState) Valid() bool {
	switch s {
	case StateDraft, StateSubmitted, StateConfirmed, StateRejected, StateCorrected, StateCancelled:
		return true
	}
	return false
}

// Terminal reports whether the state has no outgoing transitions.
func (s EntryState) Terminal() bool {
	return s == StateCancelled
}
