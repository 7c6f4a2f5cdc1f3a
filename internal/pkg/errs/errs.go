package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

// Thin wrapper over cockroachdb/errors so call sites depend on one import.

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches a sentinel so errors.Is(err, sentinel) holds while the
// original cause stays visible in logs. cockroachdb's own Mark is only
// recognized by its Is variant, so the marker type here implements the
// stdlib Is contract directly.
func Mark(err error, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return &marked{cause: err, sentinel: sentinel}
}

type marked struct {
	cause    error
	sentinel error
}

func (e *marked) Error() string { return e.cause.Error() }

func (e *marked) Unwrap() error { return e.cause }

func (e *marked) Is(target error) bool { return target == e.sentinel }

// Format delegates to the cause so %+v keeps the captured stack trace.
func (e *marked) Format(s fmt.State, verb rune) {
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.cause)
}
