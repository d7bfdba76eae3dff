package repository

// UpdateOutcome classifies a partial update or status transition in a
// single repository call, so callers never have to race a separate
// existence check against the update statement.
type UpdateOutcome int

const (
	// OutcomeUpdated means the statement changed a row
	OutcomeUpdated UpdateOutcome = iota
	// OutcomeUnchanged means the row exists but nothing was (or needed to be) written
	OutcomeUnchanged
	// OutcomeNotFound means no row exists for this tenant and id
	OutcomeNotFound
)
