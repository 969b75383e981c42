// Package apperror defines the typed errors surfaced to API consumers.
package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// Detail is a single entry of the {errors: [...]} response body.
type Detail struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// AppError carries the HTTP status and catalog entries of a failure, plus
// the underlying cause for logging.
type AppError struct {
	Status  int
	Details []Detail
	Err     error
}

func New(status int, details ...Detail) *AppError {
	return &AppError{Status: status, Details: details}
}

func (e *AppError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Error)
	}
	msg := strings.Join(msgs, "; ")
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the first catalog code, or 0 when there is none.
func (e *AppError) Code() int {
	if len(e.Details) == 0 {
		return 0
	}
	return e.Details[0].Code
}

// Is matches another AppError carrying the same status and code, so wrapped
// copies still compare equal to the catalog values.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Code() == t.Code()
}

// Wrap returns a copy of e with cause attached.
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.Details = append([]Detail(nil), e.Details...)
	cp.Err = cause
	return &cp
}
