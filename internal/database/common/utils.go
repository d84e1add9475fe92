package common

import (
	"errors"
	"fmt"
	"regexp"
)

// validIdentifier validates SQL identifiers (table/column/database names)
// that end up interpolated into statements.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var (
	// ErrConnectivity marks connection and authentication failures. They abort
	// the whole run.
	ErrConnectivity = errors.New("database unreachable")

	// ErrConstraintViolation marks integrity errors raised by the store during
	// inserts. They abort the current domain's transaction.
	ErrConstraintViolation = errors.New("constraint violation")
)

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// CheckIdentifiers returns an error naming the first invalid identifier.
func CheckIdentifiers(names ...string) error {
	for _, name := range names {
		if !IsValidIdentifier(name) {
			return fmt.Errorf("invalid identifier: %q", name)
		}
	}
	return nil
}

// Unreachable wraps err as a connectivity failure.
func Unreachable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}

// Classify wraps err with ErrConstraintViolation when isConstraint reports an
// integrity error, and returns it unchanged otherwise.
func Classify(err error, isConstraint func(error) bool) error {
	if err == nil || errors.Is(err, ErrConstraintViolation) {
		return err
	}
	if isConstraint(err) {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
