package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a backend failure into the small set of categories
// callers are allowed to branch on. Anything the client cannot classify
// ends up as KindUnknown with the original payload attached.
type Kind string

const (
	// KindNotFound means the requested entity or id does not exist.
	KindNotFound Kind = "not_found"
	// KindUnauthorized means the credential is missing, invalid, or expired.
	KindUnauthorized Kind = "unauthorized"
	// KindValidation means the backend rejected the payload shape or semantics.
	KindValidation Kind = "validation"
	// KindRemoteFailure means a 5xx, network, or timeout fault. Retryable
	// by the caller — the client itself never retries.
	KindRemoteFailure Kind = "remote_failure"
	// KindUnknown is everything else.
	KindUnknown Kind = "unknown"
)

// Error is the classified form of every failure the client returns.
// Message is safe to surface to the agent; Detail carries the original
// backend payload for diagnostics and must never leave the process.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a classified error with a caller-facing message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the classification from err, or KindUnknown if err
// was never classified by this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a classified not-found failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnauthorized reports whether err is a classified credential failure.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// classifyStatus maps an HTTP response status to the error taxonomy.
// The body is preserved as Detail only — the Message stays a single
// human-readable line with no backend internals.
func classifyStatus(status int, body string) *Error {
	switch {
	case status == http.StatusNotFound || status == http.StatusNotAcceptable:
		return &Error{Kind: KindNotFound, Message: "entity not found", Detail: body}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: KindUnauthorized, Message: "credential rejected by backend", Detail: body}
	case status == http.StatusBadRequest || status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return &Error{Kind: KindValidation, Message: "backend rejected the request payload", Detail: body}
	case status >= 500:
		return &Error{Kind: KindRemoteFailure, Message: fmt.Sprintf("backend unavailable (status %d)", status), Detail: body}
	default:
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("unexpected backend response (status %d)", status), Detail: body}
	}
}
