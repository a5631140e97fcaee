package transport

import (
	"encoding/json"
	"net/http"

	"github.com/bondyapp/bondy/constant"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  []cerr.FieldIssue `json:"errors,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Response{
		Success: true,
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	ce, ok := err.(cerr.CustomError)
	if !ok {
		ce = cerr.SetCustomError(constant.ErrInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ce.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(Response{
		Success: false,
		Code:    ce.ErrorCode(),
		Message: ce.Error(),
		Errors:  ce.Details(),
	})
}
