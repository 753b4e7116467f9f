// Package apierr maps domain failures onto HTTP responses
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooLarge
	KindTooManyRequests
)

var statuses = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindBadRequest:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindTooLarge:        http.StatusRequestEntityTooLarge,
	KindTooManyRequests: http.StatusTooManyRequests,
}

const internalMessage = "Internal server error"

// Error is a failure the client is allowed to see
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // per field validation messages
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s, %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	if s, ok := statuses[e.Kind]; ok {
		return s
	}

	return http.StatusInternalServerError
}

// Is matches on kind so callers can check errors.Is(err, apierr.ErrNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels for errors.Is
var (
	ErrBadRequest   = &Error{Kind: KindBadRequest}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
)

func BadRequest(msg string) *Error      { return &Error{Kind: KindBadRequest, Message: msg} }
func Unauthorized(msg string) *Error    { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }
func TooLarge(msg string) *Error        { return &Error{Kind: KindTooLarge, Message: msg} }
func TooManyRequests(msg string) *Error { return &Error{Kind: KindTooManyRequests, Message: msg} }

// Validation carries every failed field at once
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: "Validation failed", Fields: fields}
}

// FromBind turns a gin binding failure into a client error
func FromBind(err error) *Error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &Error{Kind: KindTooLarge, Message: "Request body size exceeds limit", Err: err}
	}

	return &Error{Kind: KindBadRequest, Message: "Invalid request body", Err: err}
}

// Respond writes err as JSON and aborts the chain. Anything that isn't an
// *Error is logged and reported as a bare 500.
func Respond(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     internalMessage,
			"requestID": requestID,
		})
		return
	}

	if e.Err != nil {
		zap.L().Debug(e.Message, zap.Error(e.Err), zap.String("requestID", requestID))
	}

	body := gin.H{
		"error":     e.Message,
		"requestID": requestID,
	}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}

	c.AbortWithStatusJSON(e.Status(), body)
}

// Recovery answers panics the same way Respond answers unknown errors
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		Respond(c, fmt.Errorf("panic: %v", rec))
	})
}
