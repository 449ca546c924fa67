package port

import (
	"context"
	"time"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
)

// ReportFilter narrows report listings. A nil DepartmentIDs slice means no
// department restriction; an empty non-nil slice matches nothing.
type ReportFilter struct {
	DepartmentIDs []int64
	Statuses      []string
	AuthorID      int64
	Limit         int
	Offset        int
}

// StatusUpdate describes one atomic status transition of a report row:
// status, the stage timestamp and the stage comment change together or not
// at all.
type StatusUpdate struct {
	FromStatus string
	ToStatus   string
	Comment    string
	At         time.Time
}

// ReportRepository defines persistence operations for Report
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error

	// GetByID returns nil without error when the report does not exist
	GetByID(ctx context.Context, id int64) (*entity.Report, error)

	// UpdateContent updates the author-editable fields of a report
	UpdateContent(ctx context.Context, report *entity.Report) error

	// UpdateStatus applies a compare-and-swap status transition: the update
	// only takes effect if the stored status still equals update.FromStatus.
	// It returns false when the row was not updated because the status had
	// already moved.
	UpdateStatus(ctx context.Context, id int64, update StatusUpdate) (bool, error)

	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, error)
}

// HistoryRepository defines persistence operations for ApprovalHistory.
// The log is append-only: no update or delete is exposed.
type HistoryRepository interface {
	Create(ctx context.Context, history *entity.ApprovalHistory) error

	// ListByReportID returns history entries newest-first
	ListByReportID(ctx context.Context, reportID int64) ([]*entity.ApprovalHistory, error)
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	// GetByID returns the user with memberships loaded, or nil when absent
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	// ListByRole returns all users holding the given global role
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}

// DepartmentRepository defines persistence operations for Department
type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
}

// NotificationRepository defines persistence operations for PushNotification
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.PushNotification) error
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errorMsg string) error
	ListByReportID(ctx context.Context, reportID int64) ([]*entity.PushNotification, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
