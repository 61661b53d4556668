package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrAccountLocked      = fmt.Errorf("too many failed login attempts, account is temporarily locked")

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("admin id not found in request context")

	// Common
	ErrNotFound              = fmt.Errorf("record not found")
	ErrBadRequest            = fmt.Errorf("bad request")
	ErrMissingRequiredFields = NewInvalidInputError("Missing required fields: brand, model, and serialNumber are required")
	ErrConsentRequired       = fmt.Errorf("data privacy consent is required")
	ErrTooManyRequests       = fmt.Errorf("too many requests")
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and the user-facing message down to the
// response writer. Err is logged, never sent to the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}

// WithDetails attaches a response body to the error.
func (e *HttpError) WithDetails(details interface{}) *HttpError {
	e.Details = details
	return e
}
