package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/koolkhan8586/hr-management/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeInvalidState, "leave request is not pending", http.StatusConflict)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeInvalidState, got.Code)
		assert.Equal(t, "leave request is not pending", got.Message)
		assert.Nil(t, got.Details)
	})

	t.Run("wrapped app error is found through fmt.Errorf", func(t *testing.T) {
		err := fmt.Errorf("decide: %w", apperror.ErrNotFound)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
	})

	t.Run("persistence error hides cause", func(t *testing.T) {
		err := apperror.Persistence(errors.New("connection refused"))

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodePersistenceError, got.Code)
		assert.Nil(t, got.Details)
	})

	t.Run("plain error becomes internal error", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "INTERNAL_ERROR", got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", http.StatusInternalServerError))

	cause := errors.New("disk full")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "write failed", http.StatusInternalServerError)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "write failed: disk full", err.Error())
}

func TestRequiredAndInvalidField(t *testing.T) {
	assert.Equal(t, "Start Date is required", apperror.RequiredField("Start Date").Message)
	assert.Equal(t, "Days is invalid", apperror.InvalidField("Days").Message)
	assert.Equal(t, http.StatusBadRequest, apperror.InvalidField("Days").HTTPStatus)
}

func TestWithCause(t *testing.T) {
	sentinel := apperror.New(apperror.CodeInvalidInput, "invalid start date", http.StatusBadRequest)
	cause := errors.New(`parsing time "2026-13-01"`)

	err := sentinel.WithCause(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, sentinel.Err)
	assert.Equal(t, cause.Error(), apperror.ToHTTP(err).Details)
}
