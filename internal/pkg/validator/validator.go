package validator

import (
	"regexp"
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

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// 24-hour wall clock, HH:MM
var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// Phone number validation: 9-15 digits, optional leading +, spaces and dashes ignored.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.TrimPrefix(phone, "+")

	if len(phone) < 9 || len(phone) > 15 {
		return false
	}
	return IsNumeric(phone)
}

// Passcode validation: 4-12 digits, as typed on the counter keypad.
func IsValidPasscode(code string) bool {
	return len(code) >= 4 && len(code) <= 12 && IsNumeric(code)
}
