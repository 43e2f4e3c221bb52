package failure_test

import (
	"booktable/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("rating must be between 1 and 5")), wantCode: http.StatusBadRequest, wantMsg: "rating must be between 1 and 5"},
		{name: "bad request from string", err: failure.BadRequestFromString("Email already registered"), wantCode: http.StatusBadRequest, wantMsg: "Email already registered"},
		{name: "unauthorized", err: failure.Unauthorized("Invalid credentials"), wantCode: http.StatusUnauthorized, wantMsg: "Invalid credentials"},
		{name: "forbidden", err: failure.Forbidden("Not allowed"), wantCode: http.StatusForbidden, wantMsg: "Not allowed"},
		{name: "forbidden var", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
		{name: "not found", err: failure.NotFound("Booking not found"), wantCode: http.StatusNotFound, wantMsg: "Booking not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.wantMsg)
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to delete restaurant: %w", failure.NotFound("Restaurant not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.BadRequestFromString("x")))
	assert.True(t, failure.IsClientError(failure.NotFound("x")))
	assert.False(t, failure.IsClientError(&failure.Failure{Code: http.StatusBadGateway, Message: "x"}))
	assert.False(t, failure.IsClientError(errors.New("x")))
}
