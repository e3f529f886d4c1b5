package domain

import "github.com/jackc/pgx/v5/pgtype"

// Role is a job title with a salary, belonging to one department.
type Role struct {
	ID           int64
	Title        string
	Salary       pgtype.Numeric
	DepartmentID int64
}

// RoleDetail is a role joined with its department name.
type RoleDetail struct {
	Role
	Department string
}
