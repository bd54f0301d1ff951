package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "duplicate email", err: ErrDuplicateEmail, wantCode: http.StatusBadRequest, wantMsg: "Email is already used"},
		{name: "user not found", err: ErrUserNotFound, wantCode: http.StatusNotFound, wantMsg: "User not found"},
		{name: "wrong password", err: ErrWrongPassword, wantCode: http.StatusBadRequest, wantMsg: "Wrong password"},
		{name: "not authenticated", err: ErrNotAuthenticated, wantCode: http.StatusUnauthorized, wantMsg: "You are not logged in"},
		{name: "invalid token", err: ErrInvalidToken, wantCode: http.StatusUnauthorized, wantMsg: "Invalid token or user doesn't exist"},
		{name: "route not found", err: New(NotFound, "Route /x not found"), wantCode: http.StatusNotFound, wantMsg: "Route /x not found"},
		{name: "external service", err: New(ExternalService, "random user service unavailable"), wantCode: http.StatusBadGateway, wantMsg: "random user service unavailable"},
		{name: "wrapped classified", err: fmt.Errorf("services.auth.Login: %w", ErrWrongPassword), wantCode: http.StatusBadRequest, wantMsg: "Wrong password"},
		{name: "internal hides detail", err: Wrap(Internal, "db password is hunter2", errors.New("boom")), wantCode: http.StatusInternalServerError, wantMsg: InternalMessage},
		{name: "plain error", err: errors.New("connection refused"), wantCode: http.StatusInternalServerError, wantMsg: InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusFor(http.StatusOK))
	assert.Equal(t, StatusSuccess, StatusFor(http.StatusCreated))
	assert.Equal(t, StatusFailed, StatusFor(http.StatusBadRequest))
	assert.Equal(t, StatusFailed, StatusFor(http.StatusUnauthorized))
	assert.Equal(t, StatusFailed, StatusFor(http.StatusNotFound))
	assert.Equal(t, StatusError, StatusFor(http.StatusInternalServerError))
	assert.Equal(t, StatusError, StatusFor(http.StatusBadGateway))
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Wrap(DuplicateEmail, "Email is already used", cause)

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, "Email is already used: duplicate key value violates unique constraint", err.Error())
	assert.Equal(t, "Wrong password", ErrWrongPassword.Error())
}
