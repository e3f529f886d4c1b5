package domain

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// ErrInvalidSalary is returned for input that is not a finite decimal number.
var ErrInvalidSalary = errors.New("salary must be a finite decimal number")

// ParseSalary reads a decimal salary exactly as typed, without a float round trip.
func ParseSalary(raw string) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(strings.TrimSpace(raw)); err != nil {
		return pgtype.Numeric{}, errors.Join(ErrInvalidSalary, err)
	}
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return pgtype.Numeric{}, ErrInvalidSalary
	}
	return n, nil
}

// FormatSalary renders the numeric in its decimal text form. NULL renders empty.
func FormatSalary(n pgtype.Numeric) string {
	v, err := n.Value()
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
