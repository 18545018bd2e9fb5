package models

// Outcome is the result of a mutating operation: either it succeeded, or it
// failed with an ordered, non-empty list of human-readable reasons. Soft
// business failures (duplicate username, constraint violations) travel as
// failed Outcomes; infrastructure failures travel as errors.
type Outcome struct {
	Succeeded bool
	Reasons   []string
}

// OutcomeOK returns a succeeded Outcome.
func OutcomeOK() Outcome {
	return Outcome{Succeeded: true}
}

// OutcomeFailed returns a failed Outcome carrying the given reasons.
func OutcomeFailed(reasons ...string) Outcome {
	return Outcome{Reasons: reasons}
}
