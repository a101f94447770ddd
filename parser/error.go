package parser

import "fmt"

// ParseError is a local parse failure: a diagnostic with the exact
// line and column of the offending token (spec.md §7). It plays the
// same role as the teacher's SyntaxError but is produced against a
// token.View rather than a raw token slice, so it carries an already
// view-relative position.
type ParseError struct {
	Line    int32
	Column  int32
	Message string
}

func NewParseError(line, column int32, message string) *ParseError {
	return &ParseError{Line: line, Column: column, Message: message}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}
