// Package engine implements the recursive backtracking matcher for
// Lua-style string patterns.
//
// The engine interprets pattern bytes directly against a subject byte
// slice on every call; it never compiles a pattern into an intermediate
// state graph. That is a deliberate choice, not an missed optimization:
// back-references (%1-%9) and balanced-pair matching (%bxy) require
// counting and replaying subject bytes that a finite-state compiler
// cannot express, so the classic Thompson-NFA/DFA construction used for
// Perl-style regexes does not apply here.
package engine

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is against these to branch on the
// diagnostic category; *PatternError.Error() carries the exact message.
var (
	ErrDanglingEscape     = errors.New("malformed pattern (ends with '%')")
	ErrUnfinishedCapture  = errors.New("unfinished capture")
	ErrInvalidCapture     = errors.New("invalid pattern capture")
	ErrMissingFrontierSet = errors.New("missing '[' after '%f' in pattern")
	ErrUnclosedSet        = errors.New("malformed pattern (missing ']')")
	ErrInvalidBackref     = errors.New("invalid capture index")
	ErrTooManyCaptures    = errors.New("too many captures")
	ErrMalformedBalanced  = errors.New("malformed pattern (missing arguments to '%b')")

	// ErrStepBudgetExceeded is returned by TryMatchWithBudget when a
	// positive budget is exhausted before a match attempt at the current
	// start position finishes. It is a cooperative guard rail, not a
	// pattern defect: errors.Is against this, not PatternError, to tell
	// the two apart.
	ErrStepBudgetExceeded = errors.New("match step budget exceeded")
)

// PatternError reports a malformed pattern discovered while validating or
// interpreting it. It wraps one of the sentinel Err* values so callers
// can branch with errors.Is, while Error() gives the exact diagnostic
// text.
type PatternError struct {
	Kind    error
	Message string
	Pattern []byte
	// Offset is the byte index into Pattern where the problem was found.
	Offset int
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("luapattern: %s (at pattern offset %d)", e.Message, e.Offset)
}

func (e *PatternError) Unwrap() error {
	return e.Kind
}

func newPatternError(kind error, message string, pattern []byte, offset int) *PatternError {
	return &PatternError{Kind: kind, Message: message, Pattern: pattern, Offset: offset}
}

func invalidBackrefError(pattern []byte, offset, n int) *PatternError {
	return newPatternError(ErrInvalidBackref, fmt.Sprintf("invalid capture index %%%d", n), pattern, offset)
}
