package domain

import "github.com/jackc/pgx/v5/pgtype"

// Employee is a person holding exactly one role.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	RoleID    int64
}

// FullName joins first and last name with a single space.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeDetail is an employee joined with role title, department name and salary.
type EmployeeDetail struct {
	Employee
	Title      string
	Department string
	Salary     pgtype.Numeric
}
