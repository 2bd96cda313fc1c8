package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		code   ErrorCode
		status int
	}{
		{"not found", NotFound("movie"), ErrNotFound, http.StatusNotFound},
		{"bad request", BadRequest("missing title"), ErrBadRequest, http.StatusBadRequest},
		{"invalid param", InvalidParam("title", "title is required"), ErrBadRequest, http.StatusBadRequest},
		{"internal", InternalError("boom"), ErrInternalError, http.StatusInternalServerError},
		{"rate limited", RateLimited(""), ErrRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.status, tt.code.StatusCode())
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: movie not found", NotFound("movie").Error())
	assert.Equal(t, "rate limit exceeded", RateLimited("").Message)
	assert.Equal(t, "BAD_REQUEST: title is required (field: title)", InvalidParam("title", "title is required").Error())
}

func TestUnknownCodeMapsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("NOPE").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("TIMEOUT").StatusCode())
}

func TestJSONShape(t *testing.T) {
	data, err := json.Marshal(BadRequest("missing genre").WithDetails("pass ?genre="))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "BAD_REQUEST", decoded["code"])
	assert.Equal(t, "missing genre", decoded["message"])
	assert.Equal(t, "pass ?genre=", decoded["details"])
	assert.NotContains(t, decoded, "Status")
	assert.NotContains(t, decoded, "field")
}
