package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodesAndStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		code   string
		status int
	}{
		{Validation("bad input"), CodeValidation, http.StatusBadRequest},
		{Unauthenticated("no token"), CodeUnauthenticated, http.StatusUnauthorized},
		{Blocked(), CodeBlocked, http.StatusForbidden},
		{Forbidden("not yours"), CodeForbidden, http.StatusForbidden},
		{NotFound("order not found: %d", 7), CodeNotFound, http.StatusNotFound},
		{InsufficientStock(), CodeInsufficientStock, http.StatusBadRequest},
		{InvalidState("already done"), CodeInvalidState, http.StatusBadRequest},
		{InvalidSignature(), CodeInvalidSignature, http.StatusBadRequest},
		{AlreadyPaid(), CodeAlreadyPaid, http.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, CodeOf(tc.err))
		assert.Equal(t, tc.status, StatusOf(tc.err))
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("loading order: %w", NotFound("order not found: %d", 9))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
}

func TestCodeOfUnknownError(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestErrorString(t *testing.T) {
	err := NotFound("order not found: %d", 3)
	assert.Equal(t, "NOT_FOUND: order not found: 3", err.Error())
}
