package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", NewValidationError("bad input"), fiber.StatusBadRequest},
		{"Conflict", NewConflictError("already there"), fiber.StatusBadRequest},
		{"Unauthenticated", NewUnauthenticatedError("who are you"), fiber.StatusUnauthorized},
		{"Forbidden", NewForbiddenError("not yours"), fiber.StatusForbidden},
		{"NotFound", NewNotFoundError("Story", 7), fiber.StatusNotFound},
		{"Internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"Plain Error", errors.New("anything"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusForError(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("Story", 42)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Contains(t, err.Message, "Story")
	assert.Contains(t, err.Message, "42")
}

func TestResponseHelpers(t *testing.T) {
	r := OK("payload")
	assert.True(t, r.Success)
	assert.Nil(t, r.Count)

	r = OKWithCount([]int{1, 2}, 2)
	assert.NotNil(t, r.Count)
	assert.Equal(t, 2, *r.Count)

	r = OKWithMessage(nil, "done")
	assert.Equal(t, "done", r.Message)
}
