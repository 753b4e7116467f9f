package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()

	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) {
		c.Set("requestID", "req-1")
		c.Next()
	}, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, body
}

func TestRespondKinds(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{TooLarge("big"), http.StatusRequestEntityTooLarge},
		{TooManyRequests("slow"), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.err.Message, func(t *testing.T) {
			code, body := serve(t, func(c *gin.Context) { Respond(c, tt.err) })

			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.err.Message, body["error"])
			assert.Equal(t, "req-1", body["requestID"])
			assert.NotContains(t, body, "fields")
		})
	}
}

func TestRespondValidation(t *testing.T) {
	code, body := serve(t, func(c *gin.Context) {
		Respond(c, Validation(map[string]string{"email": "Invalid email format"}))
	})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, map[string]any{"email": "Invalid email format"}, body["fields"])
}

func TestRespondHidesUnknownErrors(t *testing.T) {
	code, body := serve(t, func(c *gin.Context) {
		Respond(c, fmt.Errorf("failed to query, %w", errors.New("connection refused")))
	})

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRespondUnwrapsWrappedErrors(t *testing.T) {
	code, body := serve(t, func(c *gin.Context) {
		Respond(c, fmt.Errorf("in transaction, %w", NotFound("Job not found")))
	})

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Job not found", body["error"])
}

func TestRecovery(t *testing.T) {
	code, body := serve(t, func(c *gin.Context) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped, %w", Forbidden("Not authorized to update this job"))

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFromBind(t *testing.T) {
	e := FromBind(&http.MaxBytesError{Limit: 10})
	assert.Equal(t, http.StatusRequestEntityTooLarge, e.Status())

	e = FromBind(errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, e.Status())
	assert.Equal(t, "Invalid request body", e.Message)
}
