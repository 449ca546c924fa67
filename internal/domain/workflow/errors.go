package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when no edge exists between the two
	// statuses in the transition table
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRoleNotAllowed is returned when an edge exists but the actor's role
	// does not own the report's current stage
	ErrRoleNotAllowed = errors.New("role not allowed for this transition")

	// ErrCommentRequired is returned when a transition that demands a reason
	// (rejection, revision request) is attempted without one
	ErrCommentRequired = errors.New("comment required for this transition")

	// ErrInvalidStatus is returned when a status is not valid
	ErrInvalidStatus = errors.New("invalid status")
)
