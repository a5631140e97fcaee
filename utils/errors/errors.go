package errors

import "github.com/bondyapp/bondy/constant"

// FieldIssue describes a single request-field validation failure.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type CustomError struct {
	errType constant.ErrorType
	details []FieldIssue
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

// Details returns per-field issues for validation failures, nil otherwise.
func (c CustomError) Details() []FieldIssue {
	return c.details
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetValidationError builds an invalid-request error carrying field issues.
func SetValidationError(details []FieldIssue) CustomError {
	return CustomError{
		errType: constant.ErrInvalidRequest,
		details: details,
	}
}
