package event

// Type identifies the type of domain event
type Type string

const (
	TypeReportCreated     Type = "report.created"
	TypeReportSubmitted   Type = "report.submitted"
	TypeStatusChanged     Type = "report.status_changed"
	TypeReportRejected    Type = "report.rejected"
	TypeRevisionRequested Type = "report.revision_requested"
	TypeReportApproved    Type = "report.final_approved"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeReportCreated,
		TypeReportSubmitted,
		TypeStatusChanged,
		TypeReportRejected,
		TypeRevisionRequested,
		TypeReportApproved:
		return true
	default:
		return false
	}
}
