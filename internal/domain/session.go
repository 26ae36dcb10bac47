package domain

// SessionState is the lifecycle state of one cart session
type SessionState string

const (
	SessionEmpty     SessionState = "EMPTY"
	SessionBuilding  SessionState = "BUILDING"
	SessionCommitted SessionState = "COMMITTED"
)

func (s SessionState) IsTerminal() bool {
	return s == SessionCommitted
}

// String representation (for logging)
func (s SessionState) String() string {
	return string(s)
}

// CanTransitionTo reports whether the session may move from s to next.
// Cancelling a building cart moves it back to EMPTY.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	switch s {
	case SessionEmpty:
		return next == SessionBuilding
	case SessionBuilding:
		return next == SessionBuilding || next == SessionEmpty || next == SessionCommitted
	default:
		return false
	}
}

// CancelOutcome tells the caller what a cancel request did
type CancelOutcome string

const (
	CancelOutcomeCancelled       CancelOutcome = "CANCELLED"
	CancelOutcomeNothingToCancel CancelOutcome = "NOTHING_TO_CANCEL"
)
