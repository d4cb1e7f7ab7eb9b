package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("courier", int64(42))

		assert.Equal(t, "courier", err.ParamName)
		assert.Equal(t, int64(42), err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("district", "North", cause)

		assert.Equal(t, "district", err.ParamName)
		assert.Equal(t, "North", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: district, ID is: North (cause: record not found)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("param name survives wrapping and joining", func(t *testing.T) {
		wrapped := fmt.Errorf("complete order: %w",
			errors.Join(errors.New("rollback failed"), errs.NewObjectNotFoundError("order", int64(7))))

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, wrapped, &notFound)
		assert.Equal(t, "order", notFound.ParamName)
		assert.Equal(t, int64(7), notFound.ID)
		require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("claim token")

		assert.Equal(t, "claim token", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: claim token", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("-3 is negative")
		err := errs.NewValueIsInvalidErrorWithCause("avgDayOrders", cause)

		assert.Equal(t, "avgDayOrders", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: avgDayOrders (cause: -3 is negative)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("courier id", 0, 1, "max int64")

		assert.Equal(t, "courier id", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, "max int64", err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 0 is courier id, min value is 1, max value is max int64", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("path parameter")
		err := errs.NewValueIsOutOfRangeErrorWithCause("order id", -5, 1, 100, cause)

		assert.Equal(t, "order id", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is order id, min value is 1, max value is 100 (cause: path parameter)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("district", "North\nEnd", 0, 10)
		assert.Contains(t, err.Error(), "North End")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("district name")

		assert.Equal(t, "district name", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: district name", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank after trimming")
		err := errs.NewValueIsRequiredErrorWithCause("name", cause)

		assert.Equal(t, "name", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: name (cause: blank after trimming)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestEmptyCollectionError(t *testing.T) {
	err := errs.NewEmptyCollectionError("couriers")

	assert.Equal(t, "couriers", err.Collection)
	assert.Equal(t, "collection is empty: couriers", err.Error())
	require.ErrorIs(t, err, errs.ErrEmptyCollection)
}

func TestInvariantViolationError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewInvariantViolationError("courier", int64(7), nil)

		assert.Equal(t, "invariant violation: courier 7", err.Error())
		require.ErrorIs(t, err, errs.ErrInvariantViolation)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("claim held by order 3")
		err := errs.NewInvariantViolationError("courier", "7", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "invariant violation: courier 7 (cause: claim held by order 3)", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrEmptyCollection)
		require.Error(t, errs.ErrInvariantViolation)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "collection is empty", errs.ErrEmptyCollection.Error())
		assert.Equal(t, "invariant violation", errs.ErrInvariantViolation.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("order", int64(3))
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("courier")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("courier id", -1, 1, "max int64")
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("district name")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		emptyErr := errs.NewEmptyCollectionError("orders")
		require.ErrorIs(t, emptyErr, errs.ErrEmptyCollection)
	})
}
