package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-tracker/internal/domain"
	"github.com/spec-kit/employee-tracker/internal/events"
	"github.com/spec-kit/employee-tracker/internal/repository"
	apperrors "github.com/spec-kit/employee-tracker/pkg/util"
)

// DirectoryService manages departments, roles and employees.
type DirectoryService struct {
	departments repository.DepartmentRepository
	roles       repository.RoleRepository
	employees   repository.EmployeeRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// DirectoryDependencies encapsulates what the directory service needs.
type DirectoryDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	RoleRepo       repository.RoleRepository
	EmployeeRepo   repository.EmployeeRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{
		departments: deps.DepartmentRepo,
		roles:       deps.RoleRepo,
		employees:   deps.EmployeeRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// ListDepartments returns all departments ordered by id.
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// ListRoles returns all roles with their department name.
func (s *DirectoryService) ListRoles(ctx context.Context) ([]domain.RoleDetail, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}

// ListEmployees returns all employees with title, department and salary.
func (s *DirectoryService) ListEmployees(ctx context.Context) ([]domain.EmployeeDetail, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// AddDepartment inserts a department.
func (s *DirectoryService) AddDepartment(ctx context.Context, name string) (*domain.Department, error) {
	dept := &domain.Department{Name: name}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.New(events.EventDepartmentAdded, dept.ID, events.DepartmentAddedPayload{Name: dept.Name}))
	return dept, nil
}

// AddRole inserts a role under departmentID. A missing department surfaces as CONFLICT.
func (s *DirectoryService) AddRole(ctx context.Context, title string, salary pgtype.Numeric, departmentID int64) (*domain.Role, error) {
	role := &domain.Role{
		Title:        title,
		Salary:       salary,
		DepartmentID: departmentID,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.New(events.EventRoleAdded, role.ID, events.RoleAddedPayload{
		Title:        role.Title,
		Salary:       role.Salary,
		DepartmentID: role.DepartmentID,
	}))
	return role, nil
}

// AddEmployee inserts an employee holding roleID.
func (s *DirectoryService) AddEmployee(ctx context.Context, firstName, lastName string, roleID int64) (*domain.Employee, error) {
	emp := &domain.Employee{
		FirstName: firstName,
		LastName:  lastName,
		RoleID:    roleID,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.New(events.EventEmployeeAdded, emp.ID, events.EmployeeAddedPayload{
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		RoleID:    emp.RoleID,
	}))
	return emp, nil
}

// UpdateEmployeeRole points the employee at a new role. Only role_id changes.
func (s *DirectoryService) UpdateEmployeeRole(ctx context.Context, employeeID, roleID int64) error {
	if err := s.employees.UpdateRole(ctx, employeeID, roleID); err != nil {
		de := apperrors.ToDomainError(err)
		if de.Code == apperrors.CodeNotFound {
			return apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return de
	}
	s.publish(ctx, events.New(events.EventEmployeeRoleUpdated, employeeID, events.EmployeeRoleUpdatedPayload{RoleID: roleID}))
	return nil
}

// publish never fails the caller: the row is already written.
func (s *DirectoryService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("entity_id", event.EntityID),
			zap.Error(err))
	}
}
