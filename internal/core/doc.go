// Package core provides the business logic for member roster import and export.
//
// This package is the heart of the roster tool, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// the CLI, the file watcher, or tests without modification.
//
// # File Format
//
// Rosters are fixed-schema delimited text files. The first line is always the
// header:
//
//	Name,Year,StudentNumber,Email,Phone,DietaryRequirements,Role,Tags
//
// Each following line holds one member. The Tags cell contains zero or more
// labels joined by semicolons. Any cell containing a comma or a double quote
// is wrapped in double quotes with inner quotes doubled.
//
// # Import
//
// [Import] reads a roster file in a single pass:
//
//  1. Line 1 (the header) is discarded without inspection
//  2. Blank lines are skipped; line numbers keep counting
//  3. Lines with fewer than 8 cells produce one "missing columns" diagnostic
//  4. Every field is checked; all failures on a line are reported together
//  5. Student numbers and phones must be unique within the run (first wins)
//  6. Fully valid lines become [member.Record] values
//
// Line-level problems never abort the run. They are returned as data in
// [ImportOutcome.Report]. Only file-level problems ([ErrNotFound],
// [ErrEmptyInput]) are returned as errors.
//
// # Export
//
// [Export] writes the header followed by one line per record, creating parent
// directories as needed. Failures wrap [ErrIOFailure]. An optional post-export
// hook (for example opening the file in a viewer) runs best effort.
//
// # Service
//
// [Service] is the orchestration layer used by the binaries. It resolves the
// default roster path, reconciles imported records against a [store.Store]
// (the second, store-level duplicate check), records run history, and
// publishes metrics.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE004: File errors (not found, empty, wrong type, too large)
//   - EXP001: Export errors (unwritable destination)
//   - STO001-STO002: Store errors (connection, constraint)
//   - IMP001-IMP002: Import errors (busy, unknown run)
package core
