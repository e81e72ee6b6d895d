package errors

import (
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrTypeInternal     ErrorType = "INTERNAL"
	ErrTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrTypeRateLimit    ErrorType = "RATE_LIMIT"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Status  int
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func NotFound(message string, err error) *DomainError {
	return New(ErrTypeNotFound, message, err)
}

func InvalidInput(message string, err error) *DomainError {
	return New(ErrTypeInvalidInput, message, err)
}

func Unauthorized(message string, err error) *DomainError {
	return New(ErrTypeUnauthorized, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

func Unavailable(message string, err error) *DomainError {
	return New(ErrTypeUnavailable, message, err)
}

func RateLimit(message string, err error) *DomainError {
	return New(ErrTypeRateLimit, message, err)
}

// FromStatus maps an HTTP response status to a DomainError carrying the
// server-provided message. The status is retained so transport code can
// distinguish a 401 without string matching.
func FromStatus(status int, message string) *DomainError {
	var errType ErrorType
	switch {
	case status == http.StatusUnauthorized:
		errType = ErrTypeUnauthorized
	case status == http.StatusNotFound:
		errType = ErrTypeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		errType = ErrTypeInvalidInput
	case status == http.StatusTooManyRequests:
		errType = ErrTypeRateLimit
	case status >= 500:
		errType = ErrTypeUnavailable
	default:
		errType = ErrTypeInternal
	}

	e := New(errType, message, nil)
	e.Status = status
	return e
}

// StatusOf returns the HTTP status carried by err, or 0 when err did not
// originate from an HTTP response.
func StatusOf(err error) int {
	if de, ok := err.(*DomainError); ok {
		return de.Status
	}
	return 0
}

// Message returns the message the server attached to err, falling back to
// the given default when the error carries none. Only errors built from an
// HTTP response carry a server message; locally wrapped errors always fall
// back so internal wording never reaches the user.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if de, ok := err.(*DomainError); ok && de.Status != 0 && de.Message != "" {
		return de.Message
	}
	return fallback
}
