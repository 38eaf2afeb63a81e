package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorUnwrapsInvalidInput(t *testing.T) {
	err := Validation("login", "ali:ce", "must not contain ':'")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "login")
	assert.Contains(t, err.Error(), "ali:ce")
}

func TestFetchErrorUnwrapsFetchFailed(t *testing.T) {
	cause := errors.New("connection reset")
	err := Fetch("acme/widgets", cause)

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "acme/widgets")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPersistenceErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("encode project", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "encode project")
}

func TestIntegrityError(t *testing.T) {
	err := &IntegrityError{ProjectID: "alpha_1", Repositories: []string{"acme/widgets", "acme/gadgets"}}

	assert.True(t, IsIntegrity(err))
	assert.Contains(t, err.Error(), "alpha_1")
	assert.Contains(t, err.Error(), "acme/widgets")
	assert.Contains(t, err.Error(), "2 repositories")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(ErrInvalidInput))
	assert.False(t, IsNotFound(nil))
}
