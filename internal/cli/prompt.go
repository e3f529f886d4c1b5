package cli

import (
	"errors"
	"fmt"

	apperrors "github.com/spec-kit/employee-tracker/pkg/util"
)

var (
	// ErrInterrupted is returned by a Prompter when the user aborts a prompt.
	ErrInterrupted = errors.New("prompt interrupted")

	// ErrNoChoices marks a selection that had nothing to offer.
	ErrNoChoices = errors.New("no choices available")
)

// Prompter collects answers from the user.
type Prompter interface {
	// Select presents options and returns the index of the chosen one.
	Select(message string, options []string) (int, error)
	// Input presents a free-text prompt.
	Input(message string) (string, error)
}

// Choice maps a label shown to the user onto a primary key.
type Choice struct {
	Label string
	Value int64
}

// selectChoice asks the user to pick one of choices and returns its value.
// An empty set is a validation error naming what was missing.
func selectChoice(p Prompter, message, noun string, choices []Choice) (int64, error) {
	if len(choices) == 0 {
		return 0, noChoicesError(noun)
	}

	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}

	idx, err := p.Select(message, labels)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(choices) {
		return 0, fmt.Errorf("selection %d out of range", idx)
	}
	return choices[idx].Value, nil
}

func noChoicesError(noun string) error {
	return &apperrors.DomainError{
		Code:    apperrors.CodeValidation,
		Message: fmt.Sprintf("no %s available", noun),
		Details: map[string]any{},
		Err:     ErrNoChoices,
	}
}
