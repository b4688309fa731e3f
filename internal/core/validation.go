package core

// validation.go provides the field rules applied to every roster line.
//
// Each rule is a pure function from a trimmed cell to an optional violation.
// Rules for one line are all evaluated, so a line can report several
// problems at once. Uniqueness of student numbers and phones is tracked by a
// per-run lineValidator; a value is only checked for duplicates once its
// format is valid, and only registered after its record was built.

import (
	"fmt"
	"regexp"

	"github.com/JonMunkholm/roster/internal/member"
)

// Pre-compiled patterns (anchored, case-sensitive).
var (
	lettersAndSpacesRegex = regexp.MustCompile(`^[A-Za-z ]+$`)
	studentNumberRegex    = regexp.MustCompile(`^[A-Za-z]\d{7}[A-Za-z]$`)
	emailRegex            = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRegex            = regexp.MustCompile(`^\d{8}$`)
)

// validYears is the accepted set for the Year column.
var validYears = func() map[string]bool {
	m := make(map[string]bool, len(member.AcceptedYears))
	for _, y := range member.AcceptedYears {
		m[y] = true
	}
	return m
}()

// FieldRule checks one cell. It returns the violation reason and false when
// the value is rejected.
type FieldRule func(value string) (reason string, ok bool)

// CheckName accepts non-empty letters and spaces.
func CheckName(v string) (string, bool) {
	if v == "" || !lettersAndSpacesRegex.MatchString(v) {
		return fmt.Sprintf("Invalid name (%s)", v), false
	}
	return "", true
}

// CheckYear accepts one of member.AcceptedYears.
func CheckYear(v string) (string, bool) {
	if v == "" || !validYears[v] {
		return fmt.Sprintf("Invalid year (%s)", v), false
	}
	return "", true
}

// CheckStudentNumber accepts one letter, seven digits, one letter.
func CheckStudentNumber(v string) (string, bool) {
	if !studentNumberRegex.MatchString(v) {
		return fmt.Sprintf("Invalid student number (%s)", v), false
	}
	return "", true
}

// CheckEmail accepts local@domain.tld shaped addresses.
func CheckEmail(v string) (string, bool) {
	if !emailRegex.MatchString(v) {
		return fmt.Sprintf("Invalid email (%s)", v), false
	}
	return "", true
}

// CheckPhone accepts exactly 8 digits.
func CheckPhone(v string) (string, bool) {
	if !phoneRegex.MatchString(v) {
		return fmt.Sprintf("Invalid phone number (%s)", v), false
	}
	return "", true
}

// CheckDietaryRequirements accepts non-empty letters and spaces.
func CheckDietaryRequirements(v string) (string, bool) {
	if v == "" {
		return "Missing dietary requirements.", false
	}
	if !lettersAndSpacesRegex.MatchString(v) {
		return fmt.Sprintf("Invalid dietary requirements (%s)", v), false
	}
	return "", true
}

// CheckRole accepts non-empty letters and spaces.
func CheckRole(v string) (string, bool) {
	if v == "" {
		return "Missing role.", false
	}
	if !lettersAndSpacesRegex.MatchString(v) {
		return fmt.Sprintf("Invalid role (%s)", v), false
	}
	return "", true
}

// LineResult is the outcome of validating one line.
type LineResult struct {
	Line       int
	Violations []string // In column order; empty when the line is valid
}

// Valid reports whether the line passed every rule.
func (r LineResult) Valid() bool {
	return len(r.Violations) == 0
}

// Diagnostics converts the violations into line-numbered diagnostics.
func (r LineResult) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = Diagnostic{Line: r.Line, Reason: v}
	}
	return out
}

// unique wraps a rule so that values already seen in this run are rejected.
// The format rule runs first; a malformed value is never reported as a
// duplicate.
func unique(rule FieldRule, seen map[string]bool, label string) FieldRule {
	return func(v string) (string, bool) {
		if reason, ok := rule(v); !ok {
			return reason, false
		}
		if seen[v] {
			return fmt.Sprintf("Duplicate %s (%s)", label, v), false
		}
		return "", true
	}
}

// lineValidator applies the field rules plus the per-run duplicate checks.
type lineValidator struct {
	seenStudentNumbers map[string]bool
	seenPhones         map[string]bool
}

func newLineValidator() *lineValidator {
	return &lineValidator{
		seenStudentNumbers: make(map[string]bool),
		seenPhones:         make(map[string]bool),
	}
}

// Validate checks every field of a line without stopping at the first
// violation. Tags are never checked here.
func (v *lineValidator) Validate(line int, f member.Fields) LineResult {
	checks := []struct {
		value string
		rule  FieldRule
	}{
		{f.Name, CheckName},
		{f.Year, CheckYear},
		{f.StudentNumber, unique(CheckStudentNumber, v.seenStudentNumbers, "student number")},
		{f.Email, CheckEmail},
		{f.Phone, unique(CheckPhone, v.seenPhones, "phone number")},
		{f.DietaryRequirements, CheckDietaryRequirements},
		{f.Role, CheckRole},
	}

	result := LineResult{Line: line}
	for _, c := range checks {
		if reason, ok := c.rule(c.value); !ok {
			result.Violations = append(result.Violations, reason)
		}
	}
	return result
}

// Register records an accepted record's unique values.
func (v *lineValidator) Register(r member.Record) {
	v.seenStudentNumbers[r.StudentNumber().String()] = true
	v.seenPhones[r.Phone().String()] = true
}
