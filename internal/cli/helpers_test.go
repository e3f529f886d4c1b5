package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/employee-tracker/internal/domain"
	"github.com/spec-kit/employee-tracker/internal/observability"
	apperrors "github.com/spec-kit/employee-tracker/pkg/util"
)

type answer struct {
	isSelect bool
	index    int
	text     string
	err      error
}

func menu(a Action) answer {
	for i, candidate := range MenuActions {
		if candidate == a {
			return answer{isSelect: true, index: i}
		}
	}
	panic("unknown action " + string(a))
}

func pick(i int) answer { return answer{isSelect: true, index: i} }

func text(s string) answer { return answer{text: s} }

func selectErr(err error) answer { return answer{isSelect: true, err: err} }

func inputErr(err error) answer { return answer{err: err} }

// scriptedPrompter replays answers in order and reports io.EOF once they run out.
type scriptedPrompter struct {
	t        *testing.T
	answers  []answer
	messages []string
	options  map[string][]string
}

func newScript(t *testing.T, answers ...answer) *scriptedPrompter {
	return &scriptedPrompter{t: t, answers: answers, options: map[string][]string{}}
}

func (p *scriptedPrompter) next(message string, wantSelect bool) (answer, bool) {
	p.messages = append(p.messages, message)
	if len(p.answers) == 0 {
		return answer{}, false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a.isSelect != wantSelect {
		p.t.Fatalf("prompt %q: scripted answer kind mismatch (select=%v)", message, a.isSelect)
	}
	return a, true
}

func (p *scriptedPrompter) Select(message string, options []string) (int, error) {
	p.options[message] = options
	a, ok := p.next(message, true)
	if !ok {
		return 0, io.EOF
	}
	return a.index, a.err
}

func (p *scriptedPrompter) Input(message string) (string, error) {
	a, ok := p.next(message, false)
	if !ok {
		return "", io.EOF
	}
	return a.text, a.err
}

// memoryDirectory mimics the relational store: generated ids, inner joins
// and foreign-key checks.
type memoryDirectory struct {
	depts     []domain.Department
	roles     []domain.Role
	employees []domain.Employee
	listErr   error
	writes    int
}

func (m *memoryDirectory) ListDepartments(context.Context) ([]domain.Department, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Department(nil), m.depts...), nil
}

func (m *memoryDirectory) ListRoles(context.Context) ([]domain.RoleDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.RoleDetail
	for _, r := range m.roles {
		dept, _ := m.department(r.DepartmentID)
		out = append(out, domain.RoleDetail{Role: r, Department: dept.Name})
	}
	return out, nil
}

func (m *memoryDirectory) ListEmployees(context.Context) ([]domain.EmployeeDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.EmployeeDetail
	for _, e := range m.employees {
		role, _ := m.role(e.RoleID)
		dept, _ := m.department(role.DepartmentID)
		out = append(out, domain.EmployeeDetail{
			Employee:   e,
			Title:      role.Title,
			Department: dept.Name,
			Salary:     role.Salary,
		})
	}
	return out, nil
}

func (m *memoryDirectory) AddDepartment(_ context.Context, name string) (*domain.Department, error) {
	m.writes++
	dept := domain.Department{ID: int64(len(m.depts) + 1), Name: name}
	m.depts = append(m.depts, dept)
	return &dept, nil
}

func (m *memoryDirectory) AddRole(_ context.Context, title string, pay pgtype.Numeric, departmentID int64) (*domain.Role, error) {
	m.writes++
	if _, ok := m.department(departmentID); !ok {
		return nil, apperrors.MapError(&pgconn.PgError{Code: "23503", ConstraintName: "role_department_id_fkey"})
	}
	role := domain.Role{ID: int64(len(m.roles) + 1), Title: title, Salary: pay, DepartmentID: departmentID}
	m.roles = append(m.roles, role)
	return &role, nil
}

func (m *memoryDirectory) AddEmployee(_ context.Context, firstName, lastName string, roleID int64) (*domain.Employee, error) {
	m.writes++
	if _, ok := m.role(roleID); !ok {
		return nil, apperrors.MapError(&pgconn.PgError{Code: "23503", ConstraintName: "employee_role_id_fkey"})
	}
	emp := domain.Employee{ID: int64(len(m.employees) + 1), FirstName: firstName, LastName: lastName, RoleID: roleID}
	m.employees = append(m.employees, emp)
	return &emp, nil
}

func (m *memoryDirectory) UpdateEmployeeRole(_ context.Context, employeeID, roleID int64) error {
	m.writes++
	if _, ok := m.role(roleID); !ok {
		return apperrors.MapError(&pgconn.PgError{Code: "23503"})
	}
	for i := range m.employees {
		if m.employees[i].ID == employeeID {
			m.employees[i].RoleID = roleID
			return nil
		}
	}
	return apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
}

func (m *memoryDirectory) department(id int64) (domain.Department, bool) {
	for _, d := range m.depts {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Department{}, false
}

func (m *memoryDirectory) role(id int64) (domain.Role, bool) {
	for _, r := range m.roles {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Role{}, false
}

type harness struct {
	dispatcher *Dispatcher
	directory  *memoryDirectory
	prompter   *scriptedPrompter
	out        *bytes.Buffer
	logs       *observer.ObservedLogs
	metrics    *observability.Metrics
}

func newHarness(t *testing.T, dir *memoryDirectory, answers ...answer) *harness {
	t.Helper()
	if dir == nil {
		dir = &memoryDirectory{}
	}
	core, logs := observer.New(zapcore.DebugLevel)
	out := &bytes.Buffer{}
	prompter := newScript(t, answers...)
	metrics := observability.NewMetrics()

	return &harness{
		dispatcher: NewDispatcher(dir, prompter, out, zap.New(core), metrics),
		directory:  dir,
		prompter:   prompter,
		out:        out,
		logs:       logs,
		metrics:    metrics,
	}
}

func (h *harness) failures() []observer.LoggedEntry {
	return h.logs.FilterMessage("action failed").All()
}

func salary(t *testing.T, raw string) pgtype.Numeric {
	t.Helper()
	n, err := domain.ParseSalary(raw)
	require.NoError(t, err)
	return n
}
