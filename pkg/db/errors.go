package db

import (
	"strings"

	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint failure. When
// constraintName is set, only violations of that constraint match.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if code := pkgerrors.PostgresCode(err); code != "" {
		if code != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pkgerrors.PostgresConstraint(err) == constraintName
	}

	// sqlite and drivers that only surface text.
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}
