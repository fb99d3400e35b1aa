package errs_test

import (
	"errors"
	"testing"

	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("sanitize removes newlines", func(t *testing.T) {
		cause := errors.New("line one\nline two")
		err := errs.NewValueIsInvalidErrorWithCause("notes", cause)
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "line one line two")
	})
}

func TestDeniedError(t *testing.T) {
	t.Run("cross tenant", func(t *testing.T) {
		err := errs.NewDeniedError(errs.DenyReasonCrossTenant)

		assert.Equal(t, errs.DenyReasonCrossTenant, err.Reason)
		assert.Equal(t, "denied: cross_tenant", err.Error())
		assert.ErrorIs(t, err, errs.ErrDenied)
	})

	t.Run("insufficient role", func(t *testing.T) {
		err := errs.NewDeniedError(errs.DenyReasonInsufficientRole)
		assert.Equal(t, "denied: insufficient_role", err.Error())
		assert.ErrorIs(t, err, errs.ErrDenied)
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("shipped", "pending")

	assert.Equal(t, "shipped", err.Current)
	assert.Equal(t, "pending", err.Requested)
	assert.Equal(t, "invalid transition: shipped -> pending", err.Error())
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "abc")

	assert.Equal(t, "conflict: order abc was modified concurrently", err.Error())
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestHasDependentsError(t *testing.T) {
	err := errs.NewHasDependentsError("order", "abc")

	assert.Equal(t, "has dependents: order abc has dependent records", err.Error())
	assert.ErrorIs(t, err, errs.ErrHasDependents)
}

func TestBatchTooLargeError(t *testing.T) {
	err := errs.NewBatchTooLargeError(250, 100)

	assert.Equal(t, 250, err.Size)
	assert.Equal(t, 100, err.Max)
	assert.Equal(t, "batch too large: 250 items, max is 100", err.Error())
	assert.ErrorIs(t, err, errs.ErrBatchTooLarge)
}

func TestUnauthenticatedError(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		err := errs.NewUnauthenticatedError()
		assert.Equal(t, "unauthenticated", err.Error())
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewUnauthenticatedErrorWithCause(errors.New("token expired"))
		assert.Equal(t, "unauthenticated (cause: token expired)", err.Error())
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}
