package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/newsletter/pkg/validator"
)

// Response writes itself to w.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// JSONResponse is the envelope of every JSON body the service returns.
type JSONResponse struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON answers 200 with code and data.
func JSON(code string, data any) Response {
	return jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Code: code, Data: data},
	}
}

// JSONError answers with the status of the HTTPError found in err's chain, or
// 500. Validation errors in the chain become per-field details; other error
// text is never exposed.
func JSONError(err error) Response {
	httpErr := ErrInternalServerError
	errors.As(err, &httpErr)

	detail := &ErrorDetail{
		Code:    httpErr.Key,
		Message: http.StatusText(httpErr.Code),
	}
	if httpErr.Code < http.StatusInternalServerError {
		if verrs := validator.ExtractValidationErrors(err); !verrs.IsEmpty() {
			detail.Details = verrs.Map()
		}
	}

	return jsonResponse{
		status: httpErr.Code,
		body:   JSONResponse{Code: httpErr.Key, Error: detail},
	}
}
