package entity

import "time"

// Report represents a weekly department report under approval
type Report struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"department_id"`
	AuthorID     int64     `json:"author_id"`
	ReportDate   time.Time `json:"report_date"`
	Status       string    `json:"status"`

	Content         string  `json:"content"`
	AttendanceCount int     `json:"attendance_count"`
	OfferingAmount  float64 `json:"offering_amount"`

	// Stage timestamps, stamped once per forward transition
	SubmittedAt           *time.Time `json:"submitted_at,omitempty"`
	CoordinatorReviewedAt *time.Time `json:"coordinator_reviewed_at,omitempty"`
	ManagerApprovedAt     *time.Time `json:"manager_approved_at,omitempty"`
	FinalApprovedAt       *time.Time `json:"final_approved_at,omitempty"`
	RejectedAt            *time.Time `json:"rejected_at,omitempty"`

	// Stage comments, one field per stage
	CoordinatorComment string `json:"coordinator_comment,omitempty"`
	ManagerComment     string `json:"manager_comment,omitempty"`
	FinalComment       string `json:"final_comment,omitempty"`
	RejectionReason    string `json:"rejection_reason,omitempty"`
	RevisionReason     string `json:"revision_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
