package store

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Result is the uniform outcome of a store operation, rendered as
// JSON text. A Result is either a success payload or an object whose
// "error" key carries a human-readable message; the presence of that
// key is the authoritative failure signal for clients, independent of
// the HTTP status. The status is a hint for transports that want
// status-code fidelity on top of the JSON contract.
type Result struct {
	status int
	body   string
	failed bool
}

// errorBody is the wire shape of every failed Result.
type errorBody struct {
	Error string `json:"error"`
}

// OK builds a success Result by marshaling payload to JSON.
// A marshal failure degrades to an error Result rather than
// panicking; the store boundary never faults.
func OK(payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Fail(http.StatusInternalServerError, "unable to encode response.")
	}
	return Result{status: http.StatusOK, body: string(body)}
}

// Fail builds an error Result carrying {"error": message} and the
// given status hint.
func Fail(status int, message string) Result {
	body, err := json.Marshal(errorBody{Error: message})
	if err != nil {
		// Unreachable for a plain string, but keep the contract.
		body = []byte(`{"error":"internal error"}`)
	}
	return Result{status: status, body: string(body), failed: true}
}

// Failf is Fail with fmt.Sprintf formatting.
func Failf(status int, format string, args ...any) Result {
	return Fail(status, fmt.Sprintf(format, args...))
}

// Status returns the HTTP status hint for this Result.
func (r Result) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// JSON returns the Result rendered as JSON text.
func (r Result) JSON() string {
	return r.body
}

// IsError reports whether the Result carries an "error" payload.
func (r Result) IsError() bool {
	return r.failed
}
