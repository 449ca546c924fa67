package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// HistoryRepository implements port.HistoryRepository. The table is
// append-only; no update or delete statement exists here on purpose.
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) port.HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a new history record
func (r *HistoryRepository) Create(ctx context.Context, history *entity.ApprovalHistory) error {
	query := `
		INSERT INTO report_approval_history (
			report_id, actor_id, from_status, to_status, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		history.ReportID,
		history.ActorID,
		history.FromStatus,
		history.ToStatus,
		history.Comment,
		history.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create history record", zap.Error(err))
		return fmt.Errorf("failed to create history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	history.ID = id
	return nil
}

// ListByReportID retrieves all history records for a report, newest-first
func (r *HistoryRepository) ListByReportID(ctx context.Context, reportID int64) ([]*entity.ApprovalHistory, error) {
	query := `
		SELECT id, report_id, actor_id, from_status, to_status, comment, created_at
		FROM report_approval_history
		WHERE report_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := sqlite.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to list history", zap.Int64("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []*entity.ApprovalHistory
	for rows.Next() {
		var record entity.ApprovalHistory
		err := rows.Scan(
			&record.ID,
			&record.ReportID,
			&record.ActorID,
			&record.FromStatus,
			&record.ToStatus,
			&record.Comment,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// Verify interface compliance
var _ port.HistoryRepository = (*HistoryRepository)(nil)
