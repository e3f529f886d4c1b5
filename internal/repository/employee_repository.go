package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-tracker/internal/domain"
)

// EmployeeRepository manages employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	UpdateRole(ctx context.Context, employeeID, roleID int64) error
	List(ctx context.Context) ([]domain.EmployeeDetail, error)
}

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository builds the repository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employee (first_name, last_name, role_id)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.RoleID,
	).Scan(&employee.ID)
}

func (r *employeeRepository) UpdateRole(ctx context.Context, employeeID, roleID int64) error {
	const query = `UPDATE employee SET role_id=$1 WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, roleID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List returns every employee joined with role and department, ordered by id.
func (r *employeeRepository) List(ctx context.Context) ([]domain.EmployeeDetail, error) {
	const query = `
        SELECT employee.id, employee.first_name, employee.last_name, employee.role_id,
               role.title, department.name, role.salary
        FROM employee
        JOIN role ON employee.role_id = role.id
        JOIN department ON role.department_id = department.id
        ORDER BY employee.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmployeeDetail
	for rows.Next() {
		var emp domain.EmployeeDetail
		if err := rows.Scan(
			&emp.ID,
			&emp.FirstName,
			&emp.LastName,
			&emp.RoleID,
			&emp.Title,
			&emp.Department,
			&emp.Salary,
		); err != nil {
			return nil, fmt.Errorf("decode employee row: %w", err)
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}
