package controller

// Outcome is the branch an operation took.
type Outcome int

const (
	// OutcomeSucceeded means the remote accepted the request.
	OutcomeSucceeded Outcome = iota
	// OutcomeFailed means the request failed or the remote reported failure.
	OutcomeFailed
	// OutcomeRejected means local validation refused the input. No request
	// was sent and no notice shown.
	OutcomeRejected
	// OutcomeDeclined means the user did not confirm a delete.
	OutcomeDeclined
	// OutcomeBusy means the same form already had a request in flight.
	OutcomeBusy
	// OutcomeSuperseded means an ordered reload finished after a newer one
	// and its result was discarded.
	OutcomeSuperseded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeDeclined:
		return "declined"
	case OutcomeBusy:
		return "busy"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// RequestSent reports whether the outcome involved a remote request.
func (o Outcome) RequestSent() bool {
	return o == OutcomeSucceeded || o == OutcomeFailed || o == OutcomeSuperseded
}
