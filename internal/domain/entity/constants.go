package entity

// Status constants for Report
const (
	StatusDraft               = "draft"
	StatusSubmitted           = "submitted"
	StatusCoordinatorReviewed = "coordinator_reviewed"
	StatusManagerApproved     = "manager_approved"
	StatusFinalApproved       = "final_approved"
	StatusRejected            = "rejected"
	StatusRevisionRequested   = "revision_requested"
)

// Notification status constants
const (
	NotificationStatusPending = "PENDING"
	NotificationStatusSent    = "SENT"
	NotificationStatusFailed  = "FAILED"
)
