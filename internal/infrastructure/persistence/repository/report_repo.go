package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

const reportColumns = `id, department_id, author_id, report_date, status,
	content, attendance_count, offering_amount,
	submitted_at, coordinator_reviewed_at, manager_approved_at, final_approved_at, rejected_at,
	coordinator_comment, manager_comment, final_comment, rejection_reason, revision_reason,
	created_at, updated_at`

// ReportRepository implements port.ReportRepository
type ReportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB, logger *zap.Logger) port.ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new report
func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (
			department_id, author_id, report_date, status,
			content, attendance_count, offering_amount, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		report.DepartmentID,
		report.AuthorID,
		report.ReportDate,
		report.Status,
		report.Content,
		report.AttendanceCount,
		report.OfferingAmount,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create report", zap.Error(err))
		return fmt.Errorf("failed to create report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	report.ID = id
	return nil
}

// GetByID retrieves a report by ID; returns nil without error when absent
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	row := sqlite.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, id)
	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get report", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// UpdateContent updates the author-editable fields of a report
func (r *ReportRepository) UpdateContent(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE reports
		SET report_date = ?, content = ?, attendance_count = ?, offering_amount = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		report.ReportDate,
		report.Content,
		report.AttendanceCount,
		report.OfferingAmount,
		report.UpdatedAt,
		report.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update report content", zap.Int64("id", report.ID), zap.Error(err))
		return fmt.Errorf("failed to update report content: %w", err)
	}

	return nil
}

// UpdateStatus applies a compare-and-swap status transition. Status, the
// stage timestamp and the stage comment land in one UPDATE; the WHERE clause
// on the expected status makes concurrent same-stage transitions lose with
// zero rows affected.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, update port.StatusUpdate) (bool, error) {
	set := "status = ?, updated_at = ?"
	args := []interface{}{update.ToStatus, update.At}

	switch update.ToStatus {
	case entity.StatusSubmitted:
		set += ", submitted_at = ?"
		args = append(args, update.At)
	case entity.StatusCoordinatorReviewed:
		set += ", coordinator_reviewed_at = ?, coordinator_comment = ?"
		args = append(args, update.At, update.Comment)
	case entity.StatusManagerApproved:
		set += ", manager_approved_at = ?, manager_comment = ?"
		args = append(args, update.At, update.Comment)
	case entity.StatusFinalApproved:
		set += ", final_approved_at = ?, final_comment = ?"
		args = append(args, update.At, update.Comment)
	case entity.StatusRejected:
		set += ", rejected_at = ?, rejection_reason = ?"
		args = append(args, update.At, update.Comment)
	case entity.StatusRevisionRequested:
		set += ", revision_reason = ?"
		args = append(args, update.Comment)
	}

	query := "UPDATE reports SET " + set + " WHERE id = ? AND status = ?"
	args = append(args, id, update.FromStatus)

	result, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update report status",
			zap.Int64("id", id),
			zap.String("to_status", update.ToStatus),
			zap.Error(err))
		return false, fmt.Errorf("failed to update report status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// List retrieves reports matching the filter, newest-first
func (r *ReportRepository) List(ctx context.Context, filter port.ReportFilter) ([]*entity.Report, error) {
	var conditions []string
	var args []interface{}

	if filter.DepartmentIDs != nil {
		if len(filter.DepartmentIDs) == 0 {
			return []*entity.Report{}, nil
		}
		conditions = append(conditions, "department_id IN ("+placeholders(len(filter.DepartmentIDs))+")")
		for _, id := range filter.DepartmentIDs {
			args = append(args, id)
		}
	}

	if len(filter.Statuses) > 0 {
		conditions = append(conditions, "status IN ("+placeholders(len(filter.Statuses))+")")
		for _, st := range filter.Statuses {
			args = append(args, st)
		}
	}

	if filter.AuthorID != 0 {
		conditions = append(conditions, "author_id = ?")
		args = append(args, filter.AuthorID)
	}

	query := `SELECT ` + reportColumns + ` FROM reports`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := sqlite.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list reports", zap.Error(err))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(s scanner) (*entity.Report, error) {
	var report entity.Report
	var submittedAt, coordinatorReviewedAt, managerApprovedAt, finalApprovedAt, rejectedAt sql.NullTime

	err := s.Scan(
		&report.ID,
		&report.DepartmentID,
		&report.AuthorID,
		&report.ReportDate,
		&report.Status,
		&report.Content,
		&report.AttendanceCount,
		&report.OfferingAmount,
		&submittedAt,
		&coordinatorReviewedAt,
		&managerApprovedAt,
		&finalApprovedAt,
		&rejectedAt,
		&report.CoordinatorComment,
		&report.ManagerComment,
		&report.FinalComment,
		&report.RejectionReason,
		&report.RevisionReason,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if submittedAt.Valid {
		report.SubmittedAt = &submittedAt.Time
	}
	if coordinatorReviewedAt.Valid {
		report.CoordinatorReviewedAt = &coordinatorReviewedAt.Time
	}
	if managerApprovedAt.Valid {
		report.ManagerApprovedAt = &managerApprovedAt.Time
	}
	if finalApprovedAt.Valid {
		report.FinalApprovedAt = &finalApprovedAt.Time
	}
	if rejectedAt.Valid {
		report.RejectedAt = &rejectedAt.Time
	}

	return &report, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// Verify interface compliance
var _ port.ReportRepository = (*ReportRepository)(nil)
