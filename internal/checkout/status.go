package checkout

type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusSubmitting Status = "SUBMITTING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
)

// IsTerminal reports whether no further transitions leave this status.
// Failed is not terminal: a failed session returns to Idle and may be
// resubmitted with the same data.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the submission machine allows the edge
// from -> to.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusIdle:
		return to == StatusSubmitting
	case StatusSubmitting:
		return to == StatusSuccess || to == StatusFailed
	case StatusFailed:
		return to == StatusIdle
	default:
		return false
	}
}

// FailureReason says why a submission attempt failed. Failure reasons are
// data for the presentation layer, not faults.
type FailureReason string

const (
	ReasonServerRejected     FailureReason = "SERVER_REJECTED"
	ReasonNetworkUnavailable FailureReason = "NETWORK_UNAVAILABLE"
	ReasonTimeout            FailureReason = "TIMEOUT"
)
