// Package httpx provides JSON envelope helpers shared by all API handlers.
// Every response carries {"success": bool, "data": ..., "error": {...}}.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// OK sends a successful envelope with the given status code.
func OK(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Success: true, Data: data})
}

// Fail sends an error envelope with the given status code.
func Fail(w http.ResponseWriter, status int, message string, details ...any) {
	body := &ErrorBody{Message: message}
	if len(details) > 0 {
		body.Details = details[0]
	}
	write(w, status, envelope{Success: false, Error: body})
}

// DecodeJSON decodes the request body into target, rejecting unknown fields.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return err
	}
	return nil
}

func write(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// IsDecodeError reports whether err came from malformed request JSON,
// including a body cut off mid-document.
func IsDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// FailDecode maps a DecodeJSON error to a 400. Malformed JSON gets a plain
// message; other decode failures (unknown fields, empty body) carry the
// decoder's detail so the caller can see which field was rejected.
func FailDecode(w http.ResponseWriter, err error) {
	if IsDecodeError(err) {
		Fail(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	Fail(w, http.StatusBadRequest, "invalid request body", err.Error())
}
