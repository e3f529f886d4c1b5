// Package cli implements the interactive menu that drives the directory.
//
// The dispatcher has a single idle state, "menu". Every action runs to
// completion (or failure) and control returns to the menu; choosing Exit, or
// closing the input at the menu prompt, is the only way out.
package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-tracker/internal/domain"
	"github.com/spec-kit/employee-tracker/internal/observability"
	apperrors "github.com/spec-kit/employee-tracker/pkg/util"
)

// Directory is the set of use cases the menu exposes.
type Directory interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListRoles(ctx context.Context) ([]domain.RoleDetail, error)
	ListEmployees(ctx context.Context) ([]domain.EmployeeDetail, error)
	AddDepartment(ctx context.Context, name string) (*domain.Department, error)
	AddRole(ctx context.Context, title string, salary pgtype.Numeric, departmentID int64) (*domain.Role, error)
	AddEmployee(ctx context.Context, firstName, lastName string, roleID int64) (*domain.Employee, error)
	UpdateEmployeeRole(ctx context.Context, employeeID, roleID int64) error
}

// Action is a menu entry. Its value is the label shown to the user.
type Action string

const (
	ActionViewDepartments    Action = "View all departments"
	ActionViewRoles          Action = "View all roles"
	ActionViewEmployees      Action = "View all employees"
	ActionAddDepartment      Action = "Add a department"
	ActionAddRole            Action = "Add a role"
	ActionAddEmployee        Action = "Add an employee"
	ActionUpdateEmployeeRole Action = "Update an employee role"
	ActionExit               Action = "Exit"
)

// MenuActions is the fixed menu, in display order.
var MenuActions = []Action{
	ActionViewDepartments,
	ActionViewRoles,
	ActionViewEmployees,
	ActionAddDepartment,
	ActionAddRole,
	ActionAddEmployee,
	ActionUpdateEmployeeRole,
	ActionExit,
}

const menuMessage = "What would you like to do?"

// State is the dispatcher's position in its loop.
type State int

const (
	StateMenu State = iota
	StateExit
)

const codeCancelled = "CANCELLED"

type actionFunc func(ctx context.Context) error

// Dispatcher runs the menu loop.
type Dispatcher struct {
	directory Directory
	prompter  Prompter
	out       io.Writer
	logger    *zap.Logger
	metrics   *observability.Metrics
	actions   map[Action]actionFunc
}

// NewDispatcher wires the menu to a directory, a prompter and an output stream.
// metrics may be nil.
func NewDispatcher(directory Directory, prompter Prompter, out io.Writer, logger *zap.Logger, metrics *observability.Metrics) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		directory: directory,
		prompter:  prompter,
		out:       out,
		logger:    logger,
		metrics:   metrics,
	}
	d.actions = map[Action]actionFunc{
		ActionViewDepartments:    d.viewDepartments,
		ActionViewRoles:          d.viewRoles,
		ActionViewEmployees:      d.viewEmployees,
		ActionAddDepartment:      d.addDepartment,
		ActionAddRole:            d.addRole,
		ActionAddEmployee:        d.addEmployee,
		ActionUpdateEmployeeRole: d.updateEmployeeRole,
	}
	return d
}

// Run shows the menu until the user exits, then logs a session summary.
func (d *Dispatcher) Run(ctx context.Context) {
	for state := StateMenu; state != StateExit; {
		state = d.Step(ctx)
	}
	d.logSummary()
}

// Step shows the menu once and performs the chosen action.
func (d *Dispatcher) Step(ctx context.Context) State {
	labels := make([]string, len(MenuActions))
	for i, a := range MenuActions {
		labels[i] = string(a)
	}

	idx, err := d.prompter.Select(menuMessage, labels)
	if err != nil {
		if !errors.Is(err, ErrInterrupted) && !errors.Is(err, io.EOF) {
			d.logger.Error("menu prompt failed", zap.Error(err))
		}
		return StateExit
	}
	if idx < 0 || idx >= len(MenuActions) {
		d.logger.Error("menu selection out of range", zap.Int("index", idx))
		return StateMenu
	}

	action := MenuActions[idx]
	if action == ActionExit {
		return StateExit
	}
	d.Dispatch(ctx, action)
	return StateMenu
}

// Dispatch runs a single action. Failures are logged and swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) {
	run, ok := d.actions[action]
	if !ok {
		d.logger.Error("unknown action", zap.String("action", string(action)))
		return
	}

	start := time.Now()
	err := run(ctx)
	d.metrics.RecordAction(string(action), time.Since(start))
	if err != nil {
		d.fail(action, err)
	}
}

func (d *Dispatcher) fail(action Action, err error) {
	if errors.Is(err, ErrInterrupted) {
		d.metrics.RecordError(string(action), codeCancelled)
		d.logger.Info("action cancelled", zap.String("action", string(action)))
		return
	}

	de := apperrors.ToDomainError(err)
	d.metrics.RecordError(string(action), de.Code)

	fields := []zap.Field{
		zap.String("action", string(action)),
		zap.String("code", de.Code),
		zap.String("reason", de.Message),
	}
	if len(de.Details) > 0 {
		fields = append(fields, zap.Any("details", de.Details))
	}
	if de.Err != nil {
		fields = append(fields, zap.Error(de.Err))
	}
	d.logger.Error("action failed", fields...)
}

func (d *Dispatcher) logSummary() {
	order := make([]string, len(MenuActions))
	for i, a := range MenuActions {
		order[i] = string(a)
	}
	for _, s := range d.metrics.Snapshot(order) {
		d.logger.Debug("session summary",
			zap.String("action", s.Action),
			zap.Int64("runs", s.Runs),
			zap.Int64("failures", s.Failures),
			zap.Duration("elapsed", s.Elapsed))
	}
}
