package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/roster/internal/member"
)

// Column positions in a roster line.
const (
	ColName = iota
	ColYear
	ColStudentNumber
	ColEmail
	ColPhone
	ColDietaryRequirements
	ColRole
	ColTags

	// ColumnCount is the fixed number of cells in a roster line.
	ColumnCount
)

// Columns are the header names, in file order.
var Columns = []string{
	"Name",
	"Year",
	"StudentNumber",
	"Email",
	"Phone",
	"DietaryRequirements",
	"Role",
	"Tags",
}

// Header is the first line of every exported roster.
var Header = strings.Join(Columns, ",")

// DefaultFileName is used when no roster path is supplied.
const DefaultFileName = "members.csv"

// Diagnostic is a line-numbered rejection reason.
type Diagnostic struct {
	Line   int    // 1-based; the header is line 1
	Reason string // Human-readable reason
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Reason)
}

// ImportOutcome is the result of one import run.
type ImportOutcome struct {
	Path        string          // Path that was read
	Records     []member.Record // Accepted records, in file order
	Diagnostics []Diagnostic    // One entry per rejection reason, in file order
	Lines       int             // Data lines examined (blank lines excluded)
}

// Report returns the aggregated diagnostic report, or "" when every line was
// accepted.
func (o *ImportOutcome) Report() string {
	if len(o.Diagnostics) == 0 {
		return ""
	}

	lines := make([]string, len(o.Diagnostics))
	for i, d := range o.Diagnostics {
		lines[i] = d.String()
	}
	return fmt.Sprintf("Skipped %d invalid line(s):\n%s", len(o.Diagnostics), strings.Join(lines, "\n"))
}

// RejectedLines returns the number of distinct lines that produced diagnostics.
func (o *ImportOutcome) RejectedLines() int {
	seen := make(map[int]bool)
	for _, d := range o.Diagnostics {
		seen[d.Line] = true
	}
	return len(seen)
}

// ImportSummary is the caller-facing result of reconciling an import with the
// member store.
type ImportSummary struct {
	RunID      string        `json:"runId"`
	Path       string        `json:"path"`
	Added      int           `json:"added"`
	Duplicates int           `json:"duplicates"` // Already present in the store
	Rejected   int           `json:"rejected"`   // Lines skipped by the importer
	Report     string        `json:"report,omitempty"`
	Duration   time.Duration `json:"duration"`
	StartedAt  time.Time     `json:"startedAt"`
}

// Message composes the user-facing summary shown after an import.
func (s ImportSummary) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Import complete: %d member(s) added.", s.Added)

	if s.Duplicates > 0 {
		fmt.Fprintf(&b, "\n\nNote: %d existing member(s) were skipped as duplicates.", s.Duplicates)
	}

	if s.Report != "" {
		b.WriteString("\n\nSome entries were skipped due to invalid data.\n")
		b.WriteString(s.Report)
	}

	return b.String()
}

// ExportSummary is the caller-facing result of an export.
type ExportSummary struct {
	Path     string        `json:"path"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
}

// Message composes the user-facing summary shown after an export.
func (s ExportSummary) Message() string {
	return fmt.Sprintf("Exported %d member(s) to %s", s.Records, s.Path)
}
