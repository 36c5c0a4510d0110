package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. A matching constraintName is sufficient but not
// required: sqlite reports "UNIQUE constraint failed: table.column" without
// the index name, so the generic wordings are always checked too.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
