package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the failure taxonomy. Services wrap these with
// fmt.Errorf("...: %w", ...) and handlers map them to HTTP statuses at the
// boundary.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("auth error")
)

// Validationf wraps ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// NotFoundf wraps ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// StatusCode maps an error to its HTTP status. Anything outside the taxonomy
// is an unexpected persistence or infrastructure failure.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message extracts the part of the error suitable for the response body.
// Auth failures intentionally collapse to a generic message so internal
// detail never leaks to the caller.
func Message(err error) string {
	if errors.Is(err, ErrAuth) {
		return "auth error"
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
		return trimWrap(err.Error())
	}
	return "Server error"
}

// trimWrap drops the sentinel suffix appended by Validationf/NotFoundf along
// with any context prefixes added by wrapping, leaving the innermost
// caller-facing message.
func trimWrap(msg string) string {
	for _, sentinel := range []string{": " + ErrValidation.Error(), ": " + ErrNotFound.Error()} {
		if len(msg) > len(sentinel) && msg[len(msg)-len(sentinel):] == sentinel {
			msg = msg[:len(msg)-len(sentinel)]
			break
		}
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
