package entity

import "time"

// ApprovalHistory is the immutable audit record of one status transition.
// Rows are append-only; they are never updated or deleted, and they are never
// used to reconstruct current state (the report's status field is
// authoritative).
type ApprovalHistory struct {
	ID         int64     `json:"id"`
	ReportID   int64     `json:"report_id"`
	ActorID    int64     `json:"actor_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
