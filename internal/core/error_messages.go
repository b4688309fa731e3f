package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Not found: The roster file does not exist
//	          Action: Check the path, or omit it to use members.csv
//	FILE002 - Empty file: The roster file has no header line
//	          Action: Start the file with the roster header row
//	FILE003 - Wrong type: Only .csv files can be imported
//	          Action: Save the roster as .csv and try again
//	FILE004 - Too large: The roster exceeds the size limit
//	          Action: Split the roster into smaller files
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Write failed: The export destination is not writable
//	         Action: Choose another folder or check permissions
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Busy: Too many imports are running
//	         Action: Please wait a moment and try again
//	IMP002 - Unknown run: The import run is not in the recent history
//	         Action: Check the run ID; only recent runs are kept
//
// # Store Errors (STO001-STO099)
//
//	STO001 - Connection: Unable to reach the member database
//	         Patterns: "connection refused", "connection reset"
//	STO002 - Conflict: A member with this student number already exists
//	         Patterns: "duplicate key", "unique constraint"
//
// # Default Error (ERR000)
//
// Sentinel errors are matched with errors.Is first. Remaining errors are
// matched case-insensitively against patterns; the first match wins.
//
// FILE001 and EXP001 also carry a Detail: the path, or the path and the
// underlying cause, taken from the wrapped error.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/roster/internal/store"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Detail  string // Path or cause, for terminal output; never sent to HTTP clients
}

// sentinelMessages maps package sentinel errors to user messages.
var sentinelMessages = []struct {
	err    error
	msg    UserMessage
	detail bool
}{
	{ErrNotFound, UserMessage{
		Message: "The roster file does not exist",
		Action:  "Check the path, or omit it to use " + DefaultFileName,
		Code:    "FILE001",
	}, true},
	{ErrEmptyInput, UserMessage{
		Message: "The roster file is empty",
		Action:  "Start the file with the header row: " + Header,
		Code:    "FILE002",
	}, false},
	{ErrInvalidFileType, UserMessage{
		Message: "Invalid file format. Only .csv files are supported",
		Action:  "Example: roster import --from " + DefaultFileName,
		Code:    "FILE003",
	}, false},
	{ErrFileTooLarge, UserMessage{
		Message: "The roster file exceeds the size limit",
		Action:  "Split the roster into smaller files",
		Code:    "FILE004",
	}, false},
	{ErrIOFailure, UserMessage{
		Message: "The roster could not be written",
		Action:  "Choose another folder or check permissions",
		Code:    "EXP001",
	}, true},
	{store.ErrDuplicate, UserMessage{
		Message: "A member with this student number already exists",
		Action:  "Remove the duplicate row and import again",
		Code:    "STO002",
	}, false},
	{ErrTooManyImports, UserMessage{
		Message: "Too many imports are running",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}, false},
	{ErrRunNotFound, UserMessage{
		Message: "The import run was not found",
		Action:  "Check the run ID; only recent runs are kept",
		Code:    "IMP002",
	}, false},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the member database",
			Action:  "Please try again in a few moments",
			Code:    "STO001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Unable to reach the member database",
			Action:  "Please try again in a few moments",
			Code:    "STO001",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A member with this student number already exists",
			Action:  "Remove the duplicate row and import again",
			Code:    "STO002",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "A member with this student number already exists",
			Action:  "Remove the duplicate row and import again",
			Code:    "STO002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			msg := sm.msg
			if sm.detail {
				msg.Detail = detailOf(err, sm.err)
			}
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// detailOf returns what err adds after the sentinel's own text, e.g. the
// path in "roster file not found: members.csv".
func detailOf(err, sentinel error) string {
	text := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(text, prefix); i >= 0 {
		return text[i+len(prefix):]
	}
	if text == sentinel.Error() {
		return ""
	}
	return text
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message: Detail (Code: XXX). Action", without ": Detail"
// when there is none.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	if msg.Detail != "" {
		return fmt.Sprintf("%s: %s (Code: %s). %s", msg.Message, msg.Detail, msg.Code, msg.Action)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error maps to a specific message rather
// than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
