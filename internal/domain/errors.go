package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEndOfLedger marks the blank row after the last payee. It is the normal
// scan terminator, not a data failure; callers branch on errors.Is.
var ErrEndOfLedger = errors.New("end of ledger: empty payee TIN")

// ErrorKind classifies fatal validation failures.
type ErrorKind int

const (
	KindIdentifierFormat ErrorKind = iota
	KindSegmentLength
	KindFieldLength
	KindRequiredEmpty
	KindNonPositiveAmount
	KindTypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindIdentifierFormat:
		return "invalid identifier format"
	case KindSegmentLength:
		return "invalid segment length"
	case KindFieldLength:
		return "field length exceeded"
	case KindRequiredEmpty:
		return "required field empty"
	case KindNonPositiveAmount:
		return "non-positive amount"
	case KindTypeMismatch:
		return "type mismatch"
	}
	return "validation error"
}

// ValidationError is fatal to the whole ingestion run. Field names the
// offending input; Value carries it verbatim for diagnostics.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " with a value of %q", e.Value)
	}
	if e.Msg != "" {
		fmt.Fprintf(&b, ": %s", e.Msg)
	}
	return b.String()
}

func validationErrorf(kind ErrorKind, field, value, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Value: value, Msg: fmt.Sprintf(format, args...)}
}
