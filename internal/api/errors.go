package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// HTTPError is a response with a non-2xx status. Message is the first usable
// message found in the server's error payload.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the fixed per-request timeout elapsed. It behaves like
// a network failure: no partial state was applied.
type TimeoutError struct{}

func (e *TimeoutError) Error() string { return "request timed out" }

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusUnauthorized
}

// IsTimeout reports whether err is a request timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsNetwork reports whether err means no response was received.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ErrorMessage extracts the user-facing message from any adapter error.
func ErrorMessage(err error) string {
	var he *HTTPError
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{}
	}
	return &NetworkError{Err: err}
}

// serverMessage normalizes the API's divergent error payloads: a bare
// string, {"detail": "..."}, {"detail": [{"msg": ...}]}, {"msg"|"message"|
// "error": "..."}, or a top-level array of field errors.
func serverMessage(status int, payload []byte) string {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return http.StatusText(status)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err == nil {
		for _, key := range []string{"detail", "msg", "message", "error"} {
			if raw, ok := obj[key]; ok {
				if msg := firstMessage(raw); msg != "" {
					return msg
				}
			}
		}
		return http.StatusText(status)
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(payload, &arr); err == nil && len(arr) > 0 {
		if msg := firstMessage(arr[0]); msg != "" {
			return msg
		}
		return http.StatusText(status)
	}

	var s string
	if err := json.Unmarshal(payload, &s); err == nil && s != "" {
		return s
	}
	return http.StatusText(status)
}

func firstMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return firstMessage(arr[0])
	}

	var fieldErr struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &fieldErr); err == nil {
		return fieldErr.Msg
	}
	return ""
}
