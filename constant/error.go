package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrCredentialExists
	ErrInvalidPassword
	ErrAccountLocked
	ErrInvalidState
	ErrInvalidSignature
	ErrTooManyRequests
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:          "success",
	ErrInternal:         "error internal",
	ErrNotFound:         "data not found",
	ErrInvalidRequest:   "invalid request",
	ErrUnauthorize:      "unauthorize request",
	ErrForbidden:        "access to this resource is forbidden",
	ErrCredentialExists: "email or phone already exists",
	ErrInvalidPassword:  "password invalid",
	ErrAccountLocked:    "account temporarily locked, try again later",
	ErrInvalidState:     "operation not allowed in current state",
	ErrInvalidSignature: "payment signature verification failed",
	ErrTooManyRequests:  "too many requests, slow down",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:          http.StatusOK,
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrUnauthorize:      http.StatusUnauthorized,
	ErrForbidden:        http.StatusForbidden,
	ErrCredentialExists: http.StatusConflict,
	ErrInvalidPassword:  http.StatusBadRequest,
	ErrAccountLocked:    http.StatusLocked,
	ErrInvalidState:     http.StatusConflict,
	ErrInvalidSignature: http.StatusBadRequest,
	ErrTooManyRequests:  http.StatusTooManyRequests,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:          "0000",
	ErrInternal:         "0001",
	ErrNotFound:         "0002",
	ErrInvalidRequest:   "0003",
	ErrUnauthorize:      "0004",
	ErrForbidden:        "0005",
	ErrCredentialExists: "0006",
	ErrInvalidPassword:  "0007",
	ErrAccountLocked:    "0008",
	ErrInvalidState:     "0009",
	ErrInvalidSignature: "0010",
	ErrTooManyRequests:  "0011",
}
