package entity

import "time"

// Department represents an organizational unit that owns reports and users
// via membership. The approval workflow never mutates departments.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
