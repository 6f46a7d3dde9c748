package task

import (
	"fmt"
	"unicode/utf8"
)

// Field limits, matching the persisted column constraints.
const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000

	maxPageSize = 100
)

// validateTitle checks the title constraint: non-empty, at most 200 chars.
func validateTitle(title string) *Error {
	if title == "" {
		return newValidationError("title", "title must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return newValidationError("title", fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	return nil
}

// validateDescription checks the description length constraint.
func validateDescription(description string) *Error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return newValidationError("description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}

// parseStatusField validates enum membership at the boundary instead of
// coercing unknown values.
func parseStatusField(s string) (Status, *Error) {
	status, ok := ParseStatus(s)
	if !ok {
		return "", newValidationError("status", fmt.Sprintf("status must be one of open, doing, done; got %q", s))
	}
	return status, nil
}

// parsePriorityField validates enum membership at the boundary.
func parsePriorityField(s string) (Priority, *Error) {
	priority, ok := ParsePriority(s)
	if !ok {
		return "", newValidationError("priority", fmt.Sprintf("priority must be one of low, normal, high; got %q", s))
	}
	return priority, nil
}

// validatePagination rejects out-of-range page/size values. Defaults for
// absent parameters are applied at the HTTP boundary, not here.
func validatePagination(page, size int32) *Error {
	if page < 1 {
		return newInvalidArgumentError(fmt.Sprintf("page must be >= 1; got %d", page))
	}
	if size < 1 || size > maxPageSize {
		return newInvalidArgumentError(fmt.Sprintf("size must be between 1 and %d; got %d", maxPageSize, size))
	}
	return nil
}
