//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"stayflow/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

type timeoutError struct{ op string }

func (e *timeoutError) Error() string { return e.op + " timed out" }

func TestMarkSentinelVisibleToErrorsIs(t *testing.T) {
	sentinel := errs.New("booking conflict")
	cause := errs.New("date range overlaps an existing booking")

	err := errs.Mark(cause, sentinel)

	require.ErrorIs(t, err, sentinel)
	require.ErrorIs(t, err, cause)
	require.Equal(t, cause.Error(), err.Error())
}

func TestMarkKeepsTypedCauseVisible(t *testing.T) {
	cause := &timeoutError{op: "insert"}
	err := errs.Mark(errs.Wrap(cause, "create booking"), errs.New("database operation failed"))

	var te *timeoutError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "insert", te.op)
}

func TestMarkNilCauseYieldsSentinel(t *testing.T) {
	sentinel := errs.New("booking not found")
	require.Equal(t, sentinel, errs.Mark(nil, sentinel))
}

func TestMarkDoesNotMatchUnrelatedSentinel(t *testing.T) {
	err := errs.Mark(errs.New("boom"), errs.New("conflict"))
	require.False(t, errors.Is(err, errs.New("conflict")))
}

func TestMarkVerboseFormatKeepsStack(t *testing.T) {
	err := errs.Mark(errs.New("boom"), errs.New("conflict"))

	verbose := fmt.Sprintf("%+v", err)
	require.Contains(t, verbose, "boom")
	require.Greater(t, len(verbose), len(fmt.Sprintf("%v", err)))
}

func TestWrapNilReturnsNil(t *testing.T) {
	require.NoError(t, errs.Wrap(nil, "context"))
}
