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

// DepartmentRepository implements port.DepartmentRepository
type DepartmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *sql.DB, logger *zap.Logger) port.DepartmentRepository {
	return &DepartmentRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a department by ID; nil without error when absent
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	query := `SELECT id, name, created_at FROM departments WHERE id = ?`

	var dept entity.Department
	err := sqlite.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&dept.ID,
		&dept.Name,
		&dept.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get department", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &dept, nil
}

// List retrieves all departments
func (r *DepartmentRepository) List(ctx context.Context) ([]*entity.Department, error) {
	query := `SELECT id, name, created_at FROM departments ORDER BY name`

	rows, err := sqlite.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*entity.Department
	for rows.Next() {
		var dept entity.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, &dept)
	}

	return departments, rows.Err()
}

// Verify interface compliance
var _ port.DepartmentRepository = (*DepartmentRepository)(nil)
