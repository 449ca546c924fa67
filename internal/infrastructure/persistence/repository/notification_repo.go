package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a new notification attempt
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.PushNotification) error {
	targets, err := json.Marshal(notification.TargetUserIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal target user ids: %w", err)
	}

	query := `
		INSERT INTO notifications (
			report_id, target_user_ids, title, body, link, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		notification.ReportID,
		string(targets),
		notification.Title,
		notification.Body,
		notification.Link,
		notification.Status,
		notification.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create notification", zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	notification.ID = id
	return nil
}

// MarkSent marks a notification as delivered
func (r *NotificationRepository) MarkSent(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET status = ?, sent_at = ? WHERE id = ?`

	_, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		entity.NotificationStatusSent, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to mark notification sent", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed marks a notification as failed with the delivery error
func (r *NotificationRepository) MarkFailed(ctx context.Context, id int64, errorMsg string) error {
	query := `UPDATE notifications SET status = ?, error_message = ? WHERE id = ?`

	_, err := sqlite.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		entity.NotificationStatusFailed, errorMsg, id)
	if err != nil {
		r.logger.Error("Failed to mark notification failed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}
	return nil
}

// ListByReportID retrieves notification records for a report, newest-first
func (r *NotificationRepository) ListByReportID(ctx context.Context, reportID int64) ([]*entity.PushNotification, error) {
	query := `
		SELECT id, report_id, target_user_ids, title, body, link, status, error_message, sent_at, created_at
		FROM notifications
		WHERE report_id = ?
		ORDER BY created_at DESC
	`

	rows, err := sqlite.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Int64("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.PushNotification
	for rows.Next() {
		var n entity.PushNotification
		var targets string
		var errorMsg sql.NullString
		var sentAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.ReportID,
			&targets,
			&n.Title,
			&n.Body,
			&n.Link,
			&n.Status,
			&errorMsg,
			&sentAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if err := json.Unmarshal([]byte(targets), &n.TargetUserIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal target user ids: %w", err)
		}
		if errorMsg.Valid {
			n.ErrorMessage = errorMsg.String
		}
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}

		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
