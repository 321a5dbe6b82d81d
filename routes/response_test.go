package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicepro-server/apperr"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest, "validation_error"},
		{apperr.InvalidTransition("too late"), http.StatusBadRequest, "invalid_transition"},
		{apperr.InvalidCredentials(), http.StatusUnauthorized, "invalid_credentials"},
		{apperr.InvalidOrExpiredToken(), http.StatusUnauthorized, "invalid_or_expired_token"},
		{apperr.AccessDenied(), http.StatusForbidden, "access_denied"},
		{apperr.NotFound("booking"), http.StatusNotFound, "not_found"},
		{apperr.DuplicateIdentity("username already exists"), http.StatusConflict, "duplicate_identity"},
		{apperr.Persistence(errors.New("disk io failure")), http.StatusInternalServerError, "persistence_failure"},
		{errors.New("plain error"), http.StatusInternalServerError, "persistence_failure"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			respondError(c, tc.err)

			assert.Equal(t, tc.status, recorder.Code)

			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
				Code    string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondErrorHidesStorageDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	respondError(c, apperr.Persistence(errors.New("pq: connection refused at 10.0.0.5")))

	assert.NotContains(t, recorder.Body.String(), "10.0.0.5")
}

func TestRespondEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	respond(c, http.StatusCreated, gin.H{"id": 7})

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.EqualValues(t, 7, body.Data["id"])
}

func TestParseBookingDate(t *testing.T) {
	for _, raw := range []string{"2026-09-01T10:30:00Z", "2026-09-01T10:30"} {
		parsed, err := parseBookingDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, 30, parsed.Minute())
	}
	_, err := parseBookingDate("tomorrow")
	assert.Error(t, err)
}
