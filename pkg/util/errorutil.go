package util

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeValidation = "VALIDATION_FAILED"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Details: details,
	}
}

func NewConflict(message string, details map[string]any, cause error) *DomainError {
	de := NewDomainError(CodeConflict, message, details)
	de.Err = cause
	return de
}

func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// ToDomainError converts generic and Postgres errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{Code: CodeNotFound, Message: "record not found", Details: map[string]any{}, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details := map[string]any{"sqlstate": pgErr.Code}
		if pgErr.ConstraintName != "" {
			details["constraint"] = pgErr.ConstraintName
		}
		switch {
		case pgErr.Code == "23503":
			return NewConflict("referenced record does not exist", details, err)
		case pgErr.Code == "23505":
			return NewConflict("record already exists", details, err)
		case pgErr.Code == "23502":
			return NewConflict("required value missing", details, err)
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "22":
			return &DomainError{Code: CodeValidation, Message: "invalid input value", Details: details, Err: err}
		}
	}

	return NewInternalError(err)
}

// MapError converts err to a *DomainError while keeping the error interface.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
