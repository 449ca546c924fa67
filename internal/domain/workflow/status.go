package workflow

// Status represents a report status in the approval lifecycle
type Status string

const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusCoordinatorReviewed Status = "coordinator_reviewed"
	StatusManagerApproved     Status = "manager_approved"
	StatusFinalApproved       Status = "final_approved"
	StatusRejected            Status = "rejected"
	StatusRevisionRequested   Status = "revision_requested"
)

var validStatuses = map[Status]bool{
	StatusDraft:               true,
	StatusSubmitted:           true,
	StatusCoordinatorReviewed: true,
	StatusManagerApproved:     true,
	StatusFinalApproved:       true,
	StatusRejected:            true,
	StatusRevisionRequested:   true,
}

// terminalStatuses end the approval pipeline. Rejected and
// revision_requested count even though the author may still edit and
// resubmit: re-entry happens through the edit flow, not through a pending
// stage.
var terminalStatuses = map[Status]bool{
	StatusFinalApproved:     true,
	StatusRejected:          true,
	StatusRevisionRequested: true,
}

// editableStatuses are the statuses in which the author may edit and
// resubmit the report. A rejected or revision_requested report re-enters the
// edit flow without a logged transition back to draft; the explicit submit
// out of those statuses is logged.
var editableStatuses = map[Status]bool{
	StatusDraft:             true,
	StatusRejected:          true,
	StatusRevisionRequested: true,
}

// IsValid returns true if the status is a valid report status
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal returns true if the approval pipeline has finished for the
// status
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsEditable returns true if the author may still edit the report content
func (s Status) IsEditable() bool {
	return editableStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}
