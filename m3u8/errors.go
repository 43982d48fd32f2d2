package m3u8

import (
	"fmt"
	"strings"

	"github.com/streamtools/m3u8-common/logging"
)

// ParseError reports a syntax error found in strict mode. It carries
// the 1-based line number and the offending line text.
type ParseError struct {
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error in manifest on line %d: %s", e.LineNumber, e.Line)
}

// Log logs this error using the global logger
func (e *ParseError) Log() {
	logging.Error(e, "playlist parse error", logging.Fields{
		"line_number": e.LineNumber,
		"line":        e.Line,
	})
}

// NewParseError creates a parse error for the given line
func NewParseError(lineNumber int, line string) *ParseError {
	return &ParseError{LineNumber: lineNumber, Line: line}
}

// Violation is a single version-compatibility failure from the
// strict-mode pre-check.
type Violation struct {
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
	Reason     string `json:"reason"`
}

func (v Violation) String() string {
	return fmt.Sprintf("line %d: %s (%s)", v.LineNumber, v.Reason, v.Line)
}

// ValidationError batches every version-compatibility violation found
// before the main scan. When it is returned no result is produced.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "playlist failed version validation: " + strings.Join(msgs, "; ")
}

// Log logs this error using the global logger
func (e *ValidationError) Log() {
	logging.Error(e, "playlist version validation failed", logging.Fields{
		"violations": len(e.Violations),
	})
}
