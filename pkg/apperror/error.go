package apperror

import "net/http"

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindUnauthenticated   Kind = "UNAUTHENTICATED"
	KindProfileNotFound   Kind = "PROFILE_NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindInvalidParameter  Kind = "INVALID_PARAMETER"
	KindStoreFailure      Kind = "STORE_FAILURE"
	KindUnexpectedFailure Kind = "UNEXPECTED_FAILURE"
)

// UnknownStoreCode is reported when a data store failure carries no code of its own.
const UnknownStoreCode = "UNKNOWN_ERROR"

const (
	genericStoreMessage    = "Failed to load data from the data store"
	genericInternalMessage = "An unexpected error occurred. Please try again later."
)

type AppError struct {
	Code      int    `json:"code"`
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	StoreCode string `json:"store_code,omitempty"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindInvalidParameter, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindProfileNotFound, message, nil)
}

// Store reports a data store failure. An empty message or code is replaced
// with a generic message and UnknownStoreCode respectively.
func Store(message, storeCode string, err error) *AppError {
	if message == "" {
		message = genericStoreMessage
	}
	if storeCode == "" {
		storeCode = UnknownStoreCode
	}
	appErr := New(http.StatusInternalServerError, KindStoreFailure, message, err)
	appErr.StoreCode = storeCode
	return appErr
}

// Internal hides err behind a generic message.
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindUnexpectedFailure, genericInternalMessage, err)
}
