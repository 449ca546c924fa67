package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/dispatcher"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/event"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ApprovalService applies validated status transitions to reports
type ApprovalService interface {
	// ApplyTransition validates a requested transition against the current
	// status and the actor's role, applies it atomically and records exactly
	// one history entry. On failure the report is left wholly intact.
	ApplyTransition(ctx context.Context, reportID int64, actor *entity.User, target workflow.Status, comment string) (*entity.Report, error)

	// Submit moves an editable report to submitted (author only)
	Submit(ctx context.Context, reportID int64, actor *entity.User) (*entity.Report, error)

	// Advance moves a pending report one stage forward for the actor's role
	Advance(ctx context.Context, reportID int64, actor *entity.User, comment string) (*entity.Report, error)

	// Reject sends a pending report to rejected; reason is required
	Reject(ctx context.Context, reportID int64, actor *entity.User, reason string) (*entity.Report, error)

	// RequestRevision sends a pending report back for revision; reason is
	// required
	RequestRevision(ctx context.Context, reportID int64, actor *entity.User, reason string) (*entity.Report, error)

	// PendingReports returns the reports the actor's role must act on
	PendingReports(ctx context.Context, actor *entity.User) ([]*entity.Report, error)
}

type approvalServiceImpl struct {
	reportRepo  port.ReportRepository
	historyRepo port.HistoryRepository
	txManager   port.TransactionManager
	dispatcher  dispatcher.Dispatcher
	logger      Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	reportRepo port.ReportRepository,
	historyRepo port.HistoryRepository,
	txManager port.TransactionManager,
	d dispatcher.Dispatcher,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		reportRepo:  reportRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		dispatcher:  d,
		logger:      logger,
	}
}

// ApplyTransition validates and applies a requested transition
func (s *approvalServiceImpl) ApplyTransition(ctx context.Context, reportID int64, actor *entity.User, target workflow.Status, comment string) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	return s.apply(ctx, report, actor, target, comment)
}

// Submit moves an editable report to submitted
func (s *approvalServiceImpl) Submit(ctx context.Context, reportID int64, actor *entity.User) (*entity.Report, error) {
	return s.ApplyTransition(ctx, reportID, actor, workflow.StatusSubmitted, "")
}

// Advance moves a pending report to its next forward status
func (s *approvalServiceImpl) Advance(ctx context.Context, reportID int64, actor *entity.User, comment string) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	next, ok := workflow.NextForward(workflow.Status(report.Status))
	if !ok {
		return nil, workflow.ErrInvalidTransition
	}

	return s.apply(ctx, report, actor, next, comment)
}

// Reject sends a pending report to rejected with a required reason
func (s *approvalServiceImpl) Reject(ctx context.Context, reportID int64, actor *entity.User, reason string) (*entity.Report, error) {
	return s.ApplyTransition(ctx, reportID, actor, workflow.StatusRejected, reason)
}

// RequestRevision sends a pending report back to the author with a required
// reason
func (s *approvalServiceImpl) RequestRevision(ctx context.Context, reportID int64, actor *entity.User, reason string) (*entity.Report, error) {
	return s.ApplyTransition(ctx, reportID, actor, workflow.StatusRevisionRequested, reason)
}

// apply performs the authorization checks, the compare-and-swap update and
// the history append. Authorization and validation run before any mutation.
func (s *approvalServiceImpl) apply(ctx context.Context, report *entity.Report, actor *entity.User, target workflow.Status, comment string) (*entity.Report, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}

	from := workflow.Status(report.Status)

	if err := workflow.Authorize(from, target, actor.Role, actor.ID == report.AuthorID); err != nil {
		return nil, err
	}

	comment = strings.TrimSpace(comment)
	if workflow.RequiresComment(target) && comment == "" {
		return nil, workflow.ErrCommentRequired
	}

	now := time.Now()

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// Compare-and-swap: the update only lands if the stored status still
		// equals the status read above. A concurrent transition makes this a
		// no-op and the whole call fails with ErrStatusConflict.
		updated, err := s.reportRepo.UpdateStatus(txCtx, report.ID, port.StatusUpdate{
			FromStatus: from.String(),
			ToStatus:   target.String(),
			Comment:    comment,
			At:         now,
		})
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if !updated {
			return ErrStatusConflict
		}

		history := &entity.ApprovalHistory{
			ReportID:   report.ID,
			ActorID:    actor.ID,
			FromStatus: from.String(),
			ToStatus:   target.String(),
			Comment:    comment,
			CreatedAt:  now,
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create history: %w", err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Transition failed",
			"report_id", report.ID,
			"actor_id", actor.ID,
			"from", from.String(),
			"to", target.String(),
			"error", err,
		)
		return nil, err
	}

	stampReport(report, target, comment, now)

	s.logger.Info("Transition applied",
		"report_id", report.ID,
		"actor_id", actor.ID,
		"from", from.String(),
		"to", target.String(),
	)

	// Notification is fire-and-forget: the transition is already committed
	// and a delivery failure must not surface to the actor
	if s.dispatcher != nil {
		evt := event.New(event.TypeStatusChanged, report.ID, actor.ID, map[string]interface{}{
			"from_status": from.String(),
			"to_status":   target.String(),
			"comment":     comment,
		})
		s.dispatcher.DispatchAsync(ctx, evt)
	}

	return report, nil
}

// PendingReports returns the actor's inbox: the reports whose status is owned
// by the actor's role. This is a filter predicate over the report collection,
// not a queue.
func (s *approvalServiceImpl) PendingReports(ctx context.Context, actor *entity.User) ([]*entity.Report, error) {
	if actor == nil {
		return []*entity.Report{}, nil
	}

	statuses := workflow.PendingStatuses(actor.Role)
	if len(statuses) == 0 {
		return []*entity.Report{}, nil
	}

	strs := make([]string, len(statuses))
	for i, st := range statuses {
		strs[i] = st.String()
	}

	reports, err := s.reportRepo.List(ctx, port.ReportFilter{Statuses: strs})
	if err != nil {
		s.logger.Error("Failed to list pending reports", "actor_id", actor.ID, "error", err)
		return nil, err
	}
	return reports, nil
}

// stampReport mirrors the column mapping of the status update onto the
// in-memory copy returned to the caller
func stampReport(report *entity.Report, target workflow.Status, comment string, at time.Time) {
	report.Status = target.String()
	report.UpdatedAt = at

	switch target {
	case workflow.StatusSubmitted:
		report.SubmittedAt = &at
	case workflow.StatusCoordinatorReviewed:
		report.CoordinatorReviewedAt = &at
		report.CoordinatorComment = comment
	case workflow.StatusManagerApproved:
		report.ManagerApprovedAt = &at
		report.ManagerComment = comment
	case workflow.StatusFinalApproved:
		report.FinalApprovedAt = &at
		report.FinalComment = comment
	case workflow.StatusRejected:
		report.RejectedAt = &at
		report.RejectionReason = comment
	case workflow.StatusRevisionRequested:
		report.RevisionReason = comment
	}
}
