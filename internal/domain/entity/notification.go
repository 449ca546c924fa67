package entity

import "time"

// PushNotification records one delivery attempt to the push collaborator.
// Delivery is best-effort: a FAILED row never affects the transition that
// produced it.
type PushNotification struct {
	ID            int64      `json:"id"`
	ReportID      int64      `json:"report_id"`
	TargetUserIDs []int64    `json:"target_user_ids"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Link          string     `json:"link,omitempty"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
