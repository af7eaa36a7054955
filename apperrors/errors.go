package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of e carrying err as its cause. The predeclared
// errors below are shared, so they are never mutated in place.
func Wrap(e *Error, err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// Authentication error types
var (
	ErrUnauthorized = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrInvalidToken = New(http.StatusUnauthorized, "Token invalid", nil)
)

// Business rule error types
var (
	ErrEmailTaken         = New(http.StatusConflict, "Email already registered", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid email or password", nil)
	ErrUserNotFound       = New(http.StatusNotFound, "User not found", nil)
	ErrProductNotFound    = New(http.StatusNotFound, "Product not found", nil)
	ErrOrderNotFound      = New(http.StatusNotFound, "Order not found", nil)
)

// Validation and infrastructure error types
var (
	ErrValidation     = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput   = New(http.StatusBadRequest, "Invalid input", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrStore          = New(http.StatusInternalServerError, "Store error", nil)
)

// Respond writes err as a JSON error body with its mapped status.
// Non-application errors are masked as an internal server error.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Wrap(ErrInternalServer, err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// Abort writes err like Respond and stops the handler chain.
func Abort(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Wrap(ErrInternalServer, err)
	}
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}
