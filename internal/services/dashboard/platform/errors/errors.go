// Package errors defines the typed failures surfaced by the dashboard core.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure so the presentation layer can pick a response
// (redirect to login, connection banner, inline form message).
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindUnauthenticated  Kind = "unauthenticated"
	KindNetwork          Kind = "network"
	KindServerRejected   Kind = "server_rejected"
	KindClientValidation Kind = "client_validation"
)

// Error is a typed dashboard failure.
type Error struct {
	Kind Kind
	// Code is the HTTP status for server rejections.
	Code    int
	Message string
	// Fields holds field-keyed messages for client validation failures.
	Fields map[string]string
	Err    error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind == KindClientValidation && len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for key := range e.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+": "+e.Fields[key])
		}
		return strings.Join(parts, "; ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap exposes the transport cause, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// Unauthenticated reports a missing or rejected credential.
func Unauthenticated(message string) error {
	return Error{Kind: KindUnauthenticated, Message: message}
}

// Network wraps a failure where no response was received.
func Network(cause error) error {
	return Error{Kind: KindNetwork, Message: "network error: check your connection", Err: cause}
}

// Rejected records a server-side validation or business failure. message is
// kept verbatim so forms can show it as the server wrote it.
func Rejected(code int, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = fmt.Sprintf("request rejected with status %d", code)
	}
	return Error{Kind: KindServerRejected, Code: code, Message: message}
}

// Validation builds a client-side validation failure from field messages.
func Validation(fields map[string]string) error {
	copied := make(map[string]string, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return Error{Kind: KindClientValidation, Fields: copied}
}

// Unknown wraps a failure that fits no other kind, such as an undecodable
// success payload.
func Unknown(cause error) error {
	return Error{Kind: KindUnknown, Err: cause}
}

// KindOf returns the failure kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldErrors returns the field-keyed validation messages carried by err.
func FieldErrors(err error) map[string]string {
	var appErr Error
	if !stderrors.As(err, &appErr) || appErr.Kind != KindClientValidation {
		return nil
	}
	return appErr.Fields
}

// StatusCode returns the server status carried by a rejection, or 0.
func StatusCode(err error) int {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return 0
	}
	return appErr.Code
}

// UserMessage maps err to the text a banner should show.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case KindUnauthenticated:
		return "your session has ended, please log in again"
	case KindNetwork:
		return "network error: check your connection"
	case KindServerRejected, KindClientValidation:
		return err.Error()
	default:
		return "something went wrong, please try again"
	}
}
