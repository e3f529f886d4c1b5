package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/employee-tracker/internal/domain"
	apperrors "github.com/spec-kit/employee-tracker/pkg/util"
)

func (d *Dispatcher) viewDepartments(ctx context.Context) error {
	depts, err := d.directory.ListDepartments(ctx)
	if err != nil {
		return err
	}
	if len(depts) == 0 {
		fmt.Fprintln(d.out, "No departments found")
		return nil
	}
	renderTable(d.out, []string{"id", "name"}, departmentRows(depts))
	return nil
}

func (d *Dispatcher) viewRoles(ctx context.Context) error {
	roles, err := d.directory.ListRoles(ctx)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		fmt.Fprintln(d.out, "No roles found")
		return nil
	}
	renderTable(d.out, []string{"id", "title", "salary", "department"}, roleRows(roles))
	return nil
}

func (d *Dispatcher) viewEmployees(ctx context.Context) error {
	employees, err := d.directory.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		fmt.Fprintln(d.out, "No employees found")
		return nil
	}
	renderTable(d.out, []string{"id", "first_name", "last_name", "title", "department", "salary"}, employeeRows(employees))
	return nil
}

func (d *Dispatcher) addDepartment(ctx context.Context) error {
	name, err := d.prompter.Input("Enter the name of the department:")
	if err != nil {
		return err
	}
	dept, err := d.directory.AddDepartment(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Department %s added!\n", dept.Name)
	return nil
}

func (d *Dispatcher) addRole(ctx context.Context) error {
	depts, err := d.directory.ListDepartments(ctx)
	if err != nil {
		return err
	}
	choices := make([]Choice, len(depts))
	for i, dept := range depts {
		choices[i] = Choice{Label: dept.Name, Value: dept.ID}
	}
	if len(choices) == 0 {
		return noChoicesError("departments")
	}

	title, err := d.prompter.Input("Enter the title of the role:")
	if err != nil {
		return err
	}
	rawSalary, err := d.prompter.Input("Enter the salary for the role:")
	if err != nil {
		return err
	}
	salary, err := parseSalary(rawSalary)
	if err != nil {
		return err
	}
	departmentID, err := selectChoice(d.prompter, "Select the department for the role:", "departments", choices)
	if err != nil {
		return err
	}

	role, err := d.directory.AddRole(ctx, title, salary, departmentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Role %s added!\n", role.Title)
	return nil
}

func (d *Dispatcher) addEmployee(ctx context.Context) error {
	roles, err := d.roleChoices(ctx)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return noChoicesError("roles")
	}

	firstName, err := d.prompter.Input("Enter the first name of the employee:")
	if err != nil {
		return err
	}
	lastName, err := d.prompter.Input("Enter the last name of the employee:")
	if err != nil {
		return err
	}
	roleID, err := selectChoice(d.prompter, "Select the role of the employee:", "roles", roles)
	if err != nil {
		return err
	}

	emp, err := d.directory.AddEmployee(ctx, firstName, lastName, roleID)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Employee %s added!\n", emp.FullName())
	return nil
}

func (d *Dispatcher) updateEmployeeRole(ctx context.Context) error {
	employees, err := d.directory.ListEmployees(ctx)
	if err != nil {
		return err
	}
	people := make([]Choice, len(employees))
	for i, e := range employees {
		people[i] = Choice{Label: e.FullName(), Value: e.ID}
	}
	roles, err := d.roleChoices(ctx)
	if err != nil {
		return err
	}
	if len(people) == 0 {
		return noChoicesError("employees")
	}
	if len(roles) == 0 {
		return noChoicesError("roles")
	}

	employeeID, err := selectChoice(d.prompter, "Select the employee to update:", "employees", people)
	if err != nil {
		return err
	}
	roleID, err := selectChoice(d.prompter, "Select the new role of the employee:", "roles", roles)
	if err != nil {
		return err
	}

	if err := d.directory.UpdateEmployeeRole(ctx, employeeID, roleID); err != nil {
		return err
	}
	fmt.Fprintln(d.out, "Employee role updated!")
	return nil
}

func (d *Dispatcher) roleChoices(ctx context.Context) ([]Choice, error) {
	roles, err := d.directory.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	choices := make([]Choice, len(roles))
	for i, r := range roles {
		choices[i] = Choice{Label: r.Title, Value: r.ID}
	}
	return choices, nil
}

func parseSalary(raw string) (pgtype.Numeric, error) {
	salary, err := domain.ParseSalary(raw)
	if err != nil {
		return pgtype.Numeric{}, apperrors.NewValidationError("salary must be a number", map[string]any{"salary": raw})
	}
	return salary, nil
}
