// Package respond writes the JSON envelope every endpoint returns:
//
//	{ "status":"success"|"error", "message":"…", "data":…, "pagination":…, "errors":{"code":…,"description":"…"} }
//
// The HTTP status code and the status field are always set together.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the response body shape.
type Envelope struct {
	Status     string       `json:"status"`
	Message    string       `json:"message"`
	Data       any          `json:"data,omitempty"`
	Pagination *paging.Meta `json:"pagination,omitempty"`
	Errors     *ErrorBody   `json:"errors,omitempty"`
}

// ErrorBody carries the diagnostic part of an error response.
type ErrorBody struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// JSON writes env with the given status code.
func JSON(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// List writes a 200 success envelope with a pagination block.
func List(w http.ResponseWriter, message string, rows any, meta paging.Meta) {
	JSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: rows, Pagination: &meta})
}

// Error classifies err and writes the matching error envelope. Internal
// errors are logged with the operation name; the client only sees the
// message and the error text.
func Error(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	ae := apperr.From(err)
	code := ae.Kind.Status()
	desc := ae.Message
	if ae.Kind == apperr.Internal {
		if ae.Err != nil {
			desc = ae.Err.Error()
		}
		if log != nil {
			log.Error(op+" failed", zap.Error(err))
		}
	}
	JSON(w, code, Envelope{
		Status:  StatusError,
		Message: ae.Message,
		Errors:  &ErrorBody{Code: code, Description: desc},
	})
}

// NotFoundHandler answers unknown routes with the error envelope.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, Envelope{
		Status:  StatusError,
		Message: "Route not found",
		Errors:  &ErrorBody{Code: http.StatusNotFound, Description: r.Method + " " + r.URL.Path},
	})
}

// MethodNotAllowedHandler answers known routes hit with the wrong method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, Envelope{
		Status:  StatusError,
		Message: "Method not allowed",
		Errors:  &ErrorBody{Code: http.StatusMethodNotAllowed, Description: r.Method + " " + r.URL.Path},
	})
}
