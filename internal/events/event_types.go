package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentAdded     EventType = "department_added"
	EventRoleAdded           EventType = "role_added"
	EventEmployeeAdded       EventType = "employee_added"
	EventEmployeeRoleUpdated EventType = "employee_role_updated"
)

// AllEventTypes lists every type in publication order.
var AllEventTypes = []EventType{
	EventDepartmentAdded,
	EventRoleAdded,
	EventEmployeeAdded,
	EventEmployeeRoleUpdated,
}

// Event represents a change made through the directory service.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id and the current UTC time.
func New(eventType EventType, entityID int64, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DepartmentAddedPayload payload.
type DepartmentAddedPayload struct {
	Name string `json:"name"`
}

// RoleAddedPayload payload.
type RoleAddedPayload struct {
	Title        string         `json:"title"`
	Salary       pgtype.Numeric `json:"salary"`
	DepartmentID int64          `json:"department_id"`
}

// EmployeeAddedPayload payload.
type EmployeeAddedPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    int64  `json:"role_id"`
}

// EmployeeRoleUpdatedPayload payload.
type EmployeeRoleUpdatedPayload struct {
	RoleID int64 `json:"role_id"`
}
