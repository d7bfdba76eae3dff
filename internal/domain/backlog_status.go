package domain

// BacklogStatus is the enumerated backlog lifecycle state
type BacklogStatus string

const (
	StatusPending BacklogStatus = "pending"
	StatusDone    BacklogStatus = "done"
	StatusDeleted BacklogStatus = "deleted"
)

// ParseBacklogStatus validates a client-supplied status string
func ParseBacklogStatus(s string) (BacklogStatus, bool) {
	switch BacklogStatus(s) {
	case StatusPending, StatusDone, StatusDeleted:
		return BacklogStatus(s), true
	}
	return "", false
}

// transitionSources lists the states a target status may be reached from.
// The machine is forward-only: deleted is terminal.
var transitionSources = map[BacklogStatus][]BacklogStatus{
	StatusDone:    {StatusPending},
	StatusDeleted: {StatusPending, StatusDone},
}

// IsTransitionTarget reports whether target is a state a transition may
// request at all (creation is the only way into pending)
func IsTransitionTarget(target BacklogStatus) bool {
	_, ok := transitionSources[target]
	return ok
}

// TransitionSources returns the states target is reachable from
func TransitionSources(target BacklogStatus) []BacklogStatus {
	return transitionSources[target]
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to BacklogStatus) bool {
	for _, s := range transitionSources[to] {
		if s == from {
			return true
		}
	}
	return false
}
