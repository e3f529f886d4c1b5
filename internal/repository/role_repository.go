package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/employee-tracker/internal/domain"
)

// RoleRepository manages role persistence.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	List(ctx context.Context) ([]domain.RoleDetail, error)
}

type roleRepository struct {
	db DBTX
}

// NewRoleRepository builds the repository.
func NewRoleRepository(db DBTX) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `
        INSERT INTO role (title, salary, department_id)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		role.Title,
		role.Salary,
		role.DepartmentID,
	).Scan(&role.ID)
}

// List returns every role joined with its department, ordered by id.
func (r *roleRepository) List(ctx context.Context) ([]domain.RoleDetail, error) {
	const query = `
        SELECT role.id, role.title, role.salary, role.department_id, department.name
        FROM role
        JOIN department ON role.department_id = department.id
        ORDER BY role.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoleDetail
	for rows.Next() {
		var role domain.RoleDetail
		if err := rows.Scan(
			&role.ID,
			&role.Title,
			&role.Salary,
			&role.DepartmentID,
			&role.Department,
		); err != nil {
			return nil, fmt.Errorf("decode role row: %w", err)
		}
		result = append(result, role)
	}
	return result, rows.Err()
}
