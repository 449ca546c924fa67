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

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user with memberships loaded; nil without error when
// absent
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT id, name, role, created_at FROM users WHERE id = ?`

	var user entity.User
	err := sqlite.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	memberships, err := r.listMemberships(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Memberships = memberships

	return &user, nil
}

// ListByRole retrieves all users holding the given global role. Memberships
// are not loaded; callers use this for notification targeting only.
func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	query := `SELECT id, name, role, created_at FROM users WHERE role = ? ORDER BY id`

	rows, err := sqlite.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, role.String())
	if err != nil {
		r.logger.Error("Failed to list users by role", zap.String("role", role.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (r *UserRepository) listMemberships(ctx context.Context, userID int64) ([]entity.DepartmentMembership, error) {
	query := `
		SELECT user_id, department_id, is_team_leader
		FROM department_memberships
		WHERE user_id = ?
	`

	rows, err := sqlite.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []entity.DepartmentMembership
	for rows.Next() {
		var m entity.DepartmentMembership
		if err := rows.Scan(&m.UserID, &m.DepartmentID, &m.IsTeamLeader); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
