package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure.
type Kind int

const (
	// KindNetwork means the request never produced a response.
	KindNetwork Kind = iota
	// KindUnauthorized means the credential was missing or rejected.
	KindUnauthorized
	// KindNotFound means the resource or record does not exist.
	KindNotFound
	// KindValidation means the server rejected the payload.
	KindValidation
	// KindUnexpectedShape means the response body did not match any known envelope.
	KindUnexpectedShape
	// KindServer means the server failed (5xx).
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindUnexpectedShape:
		return "unexpected shape"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is a structured failure from the API. The client never retries;
// callers decide what a given kind means for them.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error (%d): %s: %s", e.Status, e.Kind, e.Message)
	}
	return fmt.Sprintf("api error: %s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// IsNotFound reports whether err is a not-found API error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsUnauthorized reports whether err is an auth API error.
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }

// IsValidation reports whether err is a rejected-payload API error.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// errorResponse is the structured error body returned by the server.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// decodeError turns a non-2xx response into a typed *Error.
func decodeError(resp *http.Response) error {
	msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	}

	kind := KindServer
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = KindUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		kind = KindNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = KindValidation
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}

// networkError wraps a transport-level failure.
func networkError(err error) error {
	return &Error{Kind: KindNetwork, Message: err.Error()}
}
