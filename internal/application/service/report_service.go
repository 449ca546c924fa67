package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/permission"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/workflow"
)

// CreateReportInput carries the author-editable fields of a new report
type CreateReportInput struct {
	DepartmentID    int64     `json:"department_id"`
	ReportDate      time.Time `json:"report_date"`
	Content         string    `json:"content"`
	AttendanceCount int       `json:"attendance_count"`
	OfferingAmount  float64   `json:"offering_amount"`
}

// UpdateReportInput carries the fields an author may change while the report
// is still editable
type UpdateReportInput struct {
	ReportDate      time.Time `json:"report_date"`
	Content         string    `json:"content"`
	AttendanceCount int       `json:"attendance_count"`
	OfferingAmount  float64   `json:"offering_amount"`
}

// ReportService manages report authoring and visibility-filtered reads
type ReportService interface {
	// CreateDraft creates a new report in draft for the acting author
	CreateDraft(ctx context.Context, actor *entity.User, input CreateReportInput) (*entity.Report, error)

	// UpdateDraft updates an editable report; author only, and only while
	// the status is draft, rejected or revision_requested
	UpdateDraft(ctx context.Context, reportID int64, actor *entity.User, input UpdateReportInput) (*entity.Report, error)

	// GetReport returns the report if the actor may view it
	GetReport(ctx context.Context, reportID int64, actor *entity.User) (*entity.Report, error)

	// ListVisible returns the reports the actor may view, newest-first
	ListVisible(ctx context.Context, actor *entity.User, filter port.ReportFilter) ([]*entity.Report, error)

	// History returns the approval history of a visible report, newest-first
	History(ctx context.Context, reportID int64, actor *entity.User) ([]*entity.ApprovalHistory, error)
}

type reportServiceImpl struct {
	reportRepo     port.ReportRepository
	historyRepo    port.HistoryRepository
	userRepo       port.UserRepository
	departmentRepo port.DepartmentRepository
	logger         Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo port.ReportRepository,
	historyRepo port.HistoryRepository,
	userRepo port.UserRepository,
	departmentRepo port.DepartmentRepository,
	logger Logger,
) ReportService {
	return &reportServiceImpl{
		reportRepo:     reportRepo,
		historyRepo:    historyRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// CreateDraft creates a new report in draft status
func (s *reportServiceImpl) CreateDraft(ctx context.Context, actor *entity.User, input CreateReportInput) (*entity.Report, error) {
	if !permission.CanWriteReport(actor) {
		return nil, ErrPermissionDenied
	}
	if !permission.CanAccessAllDepartments(actor.Role) && actor.MembershipIn(input.DepartmentID) == nil {
		return nil, ErrPermissionDenied
	}

	dept, err := s.departmentRepo.GetByID(ctx, input.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}
	if dept == nil {
		return nil, ErrDepartmentNotFound
	}

	now := time.Now()
	report := &entity.Report{
		DepartmentID:    input.DepartmentID,
		AuthorID:        actor.ID,
		ReportDate:      input.ReportDate,
		Status:          workflow.StatusDraft.String(),
		Content:         input.Content,
		AttendanceCount: input.AttendanceCount,
		OfferingAmount:  input.OfferingAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to create report", "author_id", actor.ID, "error", err)
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("Report created", "report_id", report.ID, "author_id", actor.ID, "department_id", report.DepartmentID)
	return report, nil
}

// UpdateDraft updates the content of an editable report
func (s *reportServiceImpl) UpdateDraft(ctx context.Context, reportID int64, actor *entity.User, input UpdateReportInput) (*entity.Report, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.AuthorID != actor.ID {
		return nil, ErrPermissionDenied
	}
	if !workflow.Status(report.Status).IsEditable() {
		return nil, ErrNotEditable
	}

	report.ReportDate = input.ReportDate
	report.Content = input.Content
	report.AttendanceCount = input.AttendanceCount
	report.OfferingAmount = input.OfferingAmount
	report.UpdatedAt = time.Now()

	if err := s.reportRepo.UpdateContent(ctx, report); err != nil {
		s.logger.Error("Failed to update report", "report_id", reportID, "error", err)
		return nil, fmt.Errorf("update report: %w", err)
	}

	return report, nil
}

// GetReport returns the report if visible to the actor
func (s *reportServiceImpl) GetReport(ctx context.Context, reportID int64, actor *entity.User) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	visible, err := s.canView(ctx, actor, report, map[int64]bool{})
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrPermissionDenied
	}

	return report, nil
}

// ListVisible lists reports the actor may view
func (s *reportServiceImpl) ListVisible(ctx context.Context, actor *entity.User, filter port.ReportFilter) ([]*entity.Report, error) {
	if actor == nil {
		return []*entity.Report{}, nil
	}

	// Scope the query to the actor's departments unless the role sees all
	if !permission.CanAccessAllDepartments(actor.Role) && filter.DepartmentIDs == nil {
		filter.DepartmentIDs = permission.AccessibleDepartmentIDs(actor)
	}

	reports, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list reports", "actor_id", actor.ID, "error", err)
		return nil, err
	}

	// Per-report visibility still applies within the scoped set (drafts,
	// cell-leader ceiling). Author flags are memoized across the page.
	leaderCache := make(map[int64]bool)
	visible := make([]*entity.Report, 0, len(reports))
	for _, report := range reports {
		ok, err := s.canView(ctx, actor, report, leaderCache)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, report)
		}
	}

	return visible, nil
}

// History returns the approval history of a report the actor may view
func (s *reportServiceImpl) History(ctx context.Context, reportID int64, actor *entity.User) ([]*entity.ApprovalHistory, error) {
	if _, err := s.GetReport(ctx, reportID, actor); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByReportID(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to list history", "report_id", reportID, "error", err)
		return nil, err
	}
	return entries, nil
}

// canView resolves the author's team-leader flag and evaluates the
// visibility policy. leaderCache memoizes author flags keyed by author id.
func (s *reportServiceImpl) canView(ctx context.Context, actor *entity.User, report *entity.Report, leaderCache map[int64]bool) (bool, error) {
	authorIsLeader, ok := leaderCache[report.AuthorID]
	if !ok {
		author, err := s.userRepo.GetByID(ctx, report.AuthorID)
		if err != nil {
			return false, fmt.Errorf("get author: %w", err)
		}
		authorIsLeader = author.IsTeamLeaderOf(report.DepartmentID)
		leaderCache[report.AuthorID] = authorIsLeader
	}

	return permission.CanViewReport(actor, report, authorIsLeader), nil
}
