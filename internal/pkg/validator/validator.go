package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidDate parses "YYYY-MM-DD" and reports whether it succeeded.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsInSlice reports whether value appears in slice.
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsInRange reports whether n falls within [min, max] inclusive.
func IsInRange(n, min, max int) bool {
	return n >= min && n <= max
}

// KnownStrategies lists the strategy strings the engine recognises.
// Anything outside this set still passes validation -- the engine itself
// normalises unrecognised strategies to balanced rather than rejecting them.
var KnownStrategies = []string{
	"balanced", "longWeekends", "miniBreaks", "weekLongBreaks", "extendedVacations",
}
