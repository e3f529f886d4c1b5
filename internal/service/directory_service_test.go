package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/employee-tracker/internal/domain"
	"github.com/spec-kit/employee-tracker/internal/events"
	apperrors "github.com/spec-kit/employee-tracker/pkg/util"
)

func salary(t *testing.T, raw string) pgtype.Numeric {
	t.Helper()
	n, err := domain.ParseSalary(raw)
	require.NoError(t, err)
	return n
}

type fakeDepartments struct {
	rows    []domain.Department
	nextID  int64
	listErr error
}

func (f *fakeDepartments) Create(_ context.Context, dept *domain.Department) error {
	f.nextID++
	dept.ID = f.nextID
	f.rows = append(f.rows, *dept)
	return nil
}

func (f *fakeDepartments) List(context.Context) ([]domain.Department, error) {
	return f.rows, f.listErr
}

type fakeRoles struct {
	depts  *fakeDepartments
	rows   []domain.Role
	nextID int64
}

func (f *fakeRoles) Create(_ context.Context, role *domain.Role) error {
	if _, ok := f.department(role.DepartmentID); !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "role_department_id_fkey"}
	}
	f.nextID++
	role.ID = f.nextID
	f.rows = append(f.rows, *role)
	return nil
}

func (f *fakeRoles) List(context.Context) ([]domain.RoleDetail, error) {
	var out []domain.RoleDetail
	for _, r := range f.rows {
		dept, _ := f.department(r.DepartmentID)
		out = append(out, domain.RoleDetail{Role: r, Department: dept.Name})
	}
	return out, nil
}

func (f *fakeRoles) department(id int64) (domain.Department, bool) {
	for _, d := range f.depts.rows {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Department{}, false
}

type fakeEmployees struct {
	rows      []domain.Employee
	nextID    int64
	updateErr error
}

func (f *fakeEmployees) Create(_ context.Context, emp *domain.Employee) error {
	f.nextID++
	emp.ID = f.nextID
	f.rows = append(f.rows, *emp)
	return nil
}

func (f *fakeEmployees) UpdateRole(_ context.Context, employeeID, roleID int64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == employeeID {
			f.rows[i].RoleID = roleID
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEmployees) List(context.Context) ([]domain.EmployeeDetail, error) {
	var out []domain.EmployeeDetail
	for _, e := range f.rows {
		out = append(out, domain.EmployeeDetail{Employee: e})
	}
	return out, nil
}

type recordingDispatcher struct {
	published []events.Event
	err       error
}

func (r *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	r.published = append(r.published, e)
	return r.err
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fixture struct {
	svc        *DirectoryService
	depts      *fakeDepartments
	roles      *fakeRoles
	employees  *fakeEmployees
	dispatcher *recordingDispatcher
	logs       *observer.ObservedLogs
}

func newFixture() *fixture {
	depts := &fakeDepartments{}
	roles := &fakeRoles{depts: depts}
	employees := &fakeEmployees{}
	dispatcher := &recordingDispatcher{}
	core, logs := observer.New(zapcore.DebugLevel)

	return &fixture{
		svc: NewDirectoryService(DirectoryDependencies{
			DepartmentRepo: depts,
			RoleRepo:       roles,
			EmployeeRepo:   employees,
			Dispatcher:     dispatcher,
			Logger:         zap.New(core),
		}),
		depts:      depts,
		roles:      roles,
		employees:  employees,
		dispatcher: dispatcher,
		logs:       logs,
	}
}

func TestDirectoryService_AddDepartmentPublishes(t *testing.T) {
	t.Parallel()

	f := newFixture()
	dept, err := f.svc.AddDepartment(context.Background(), "Engineering")

	require.NoError(t, err)
	assert.Equal(t, int64(1), dept.ID)
	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventDepartmentAdded, f.dispatcher.published[0].Type)
	assert.Equal(t, events.DepartmentAddedPayload{Name: "Engineering"}, f.dispatcher.published[0].Payload)
}

func TestDirectoryService_DuplicateDepartmentNamesAreKept(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.AddDepartment(ctx, "Sales")
	require.NoError(t, err)
	_, err = f.svc.AddDepartment(ctx, "Sales")
	require.NoError(t, err)

	depts, err := f.svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, depts, 2)
}

func TestDirectoryService_AddRoleUnknownDepartmentIsConflict(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.svc.AddRole(context.Background(), "Engineer", salary(t, "90000"), 42)

	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, apperrors.CodeConflict, de.Code)
	assert.Empty(t, f.dispatcher.published)
}

func TestDirectoryService_AddRoleStoresSelectedDepartment(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	dept, err := f.svc.AddDepartment(ctx, "Engineering")
	require.NoError(t, err)

	role, err := f.svc.AddRole(ctx, "Engineer", salary(t, "12345678901234567.89"), dept.ID)
	require.NoError(t, err)
	assert.Equal(t, dept.ID, role.DepartmentID)

	roles, err := f.svc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Engineering", roles[0].Department)
	assert.Equal(t, "12345678901234567.89", domain.FormatSalary(roles[0].Salary))

	require.Len(t, f.dispatcher.published, 2)
	payload, ok := f.dispatcher.published[1].Payload.(events.RoleAddedPayload)
	require.True(t, ok)
	assert.Equal(t, "12345678901234567.89", domain.FormatSalary(payload.Salary))
}

func TestDirectoryService_UpdateEmployeeRole(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	emp, err := f.svc.AddEmployee(ctx, "Ada", "Lovelace", 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateEmployeeRole(ctx, emp.ID, 2))

	assert.Equal(t, domain.Employee{ID: emp.ID, FirstName: "Ada", LastName: "Lovelace", RoleID: 2}, f.employees.rows[0])
	last := f.dispatcher.published[len(f.dispatcher.published)-1]
	assert.Equal(t, events.EventEmployeeRoleUpdated, last.Type)
	assert.Equal(t, emp.ID, last.EntityID)
}

func TestDirectoryService_UpdateMissingEmployeeIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	err := f.svc.UpdateEmployeeRole(context.Background(), 99, 1)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeNotFound, de.Code)
	assert.Equal(t, "employee not found", de.Message)
	assert.Equal(t, int64(99), de.Details["employee_id"])
}

func TestDirectoryService_UpdateFailureIsMapped(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.employees.updateErr = &pgconn.PgError{Code: "23503"}

	err := f.svc.UpdateEmployeeRole(context.Background(), 1, 77)

	assert.Equal(t, apperrors.CodeConflict, apperrors.ToDomainError(err).Code)
}

func TestDirectoryService_ListErrorIsInternal(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.depts.listErr = errors.New("conn busy")

	_, err := f.svc.ListDepartments(context.Background())

	assert.Equal(t, apperrors.CodeInternal, apperrors.ToDomainError(err).Code)
}

func TestDirectoryService_PublishFailureOnlyWarns(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.dispatcher.err = errors.New("stream unavailable")

	dept, err := f.svc.AddDepartment(context.Background(), "Ops")

	require.NoError(t, err)
	assert.NotZero(t, dept.ID)
	warnings := f.logs.FilterMessage("event delivery failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
}
