package workflow

import (
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
)

// stageRule describes one pending stage: the single role that owns it and the
// forward status it leads to. One role per stage means concurrent approval
// attempts by different roles at the same stage are rejected by the role
// check alone.
type stageRule struct {
	Owner entity.Role
	Next  Status
}

// stages is the forward chain of the approval pipeline. Draft and the
// editable re-entry statuses are handled by Authorize directly since they are
// author-gated rather than role-gated.
var stages = map[Status]stageRule{
	StatusSubmitted:           {Owner: entity.RolePresident, Next: StatusCoordinatorReviewed},
	StatusCoordinatorReviewed: {Owner: entity.RoleAccountant, Next: StatusManagerApproved},
	StatusManagerApproved:     {Owner: entity.RolePastor, Next: StatusFinalApproved},
}

// commentRequired lists target statuses that demand a non-empty reason
var commentRequired = map[Status]bool{
	StatusRejected:          true,
	StatusRevisionRequested: true,
}

// NextForward returns the forward status following a pending stage
func NextForward(from Status) (Status, bool) {
	rule, ok := stages[from]
	if !ok {
		return "", false
	}
	return rule.Next, true
}

// StageOwner returns the single role authorized to act on a pending stage
func StageOwner(from Status) (entity.Role, bool) {
	rule, ok := stages[from]
	if !ok {
		return "", false
	}
	return rule.Owner, true
}

// RequiresComment returns true if transitioning into the target status
// demands a non-empty reason
func RequiresComment(target Status) bool {
	return commentRequired[target]
}

// Authorize validates a requested transition against the transition table.
// It returns nil if the actor's role (or authorship, for submission) permits
// moving a report from from to target. ErrInvalidTransition means no such
// edge exists for any role; ErrRoleNotAllowed means the edge exists but the
// actor does not own it. Authorize never mutates anything; comment presence
// is checked separately via RequiresComment.
func Authorize(from, target Status, role entity.Role, isAuthor bool) error {
	if !from.IsValid() || !target.IsValid() {
		return ErrInvalidStatus
	}

	// Author submission out of draft or an editable re-entry status
	if target == StatusSubmitted {
		if !from.IsEditable() {
			return ErrInvalidTransition
		}
		if !isAuthor {
			return ErrRoleNotAllowed
		}
		return nil
	}

	rule, ok := stages[from]
	if !ok {
		// Terminal or draft: no role-gated edges out
		return ErrInvalidTransition
	}

	switch target {
	case rule.Next:
		if role == rule.Owner || role == entity.RoleSuperAdmin {
			return nil
		}
		return ErrRoleNotAllowed
	case StatusRejected, StatusRevisionRequested:
		// The stage owner sends a report back; super_admin may act at any
		// pending stage
		if role == rule.Owner || role == entity.RoleSuperAdmin {
			return nil
		}
		return ErrRoleNotAllowed
	default:
		return ErrInvalidTransition
	}
}

// PendingStatuses returns the statuses a role must act on. This is how inbox
// views are computed: a filter predicate over the report collection, not a
// separate queue.
func PendingStatuses(role entity.Role) []Status {
	switch role {
	case entity.RolePresident:
		return []Status{StatusSubmitted}
	case entity.RoleAccountant:
		return []Status{StatusCoordinatorReviewed}
	case entity.RolePastor:
		return []Status{StatusManagerApproved}
	case entity.RoleSuperAdmin:
		return []Status{StatusSubmitted, StatusCoordinatorReviewed, StatusManagerApproved}
	default:
		return nil
	}
}
