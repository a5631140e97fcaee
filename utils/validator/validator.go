package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"

	cerr "github.com/bondyapp/bondy/utils/errors"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// Issues converts a validator error into per-field issues for the response
// envelope. Non-validator errors yield nil.
func Issues(err error) []cerr.FieldIssue {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return nil
	}
	issues := make([]cerr.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, cerr.FieldIssue{Field: fe.Field(), Rule: fe.Tag()})
	}
	return issues
}
