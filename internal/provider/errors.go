package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Error describes a failed provider call. HTTPStatus is the transport-level
// status code; Code is the provider's embedded status field, which signals
// failure when non-zero even under HTTP 200.
type Error struct {
	Op         string
	HTTPStatus int
	Code       int
	Body       string
}

func (e *Error) Error() string {
	if e.HTTPStatus != 0 && e.HTTPStatus != http.StatusOK {
		return fmt.Sprintf("provider %s failed (http %d): %s", e.Op, e.HTTPStatus, e.Body)
	}
	return fmt.Sprintf("provider %s failed (status %d)", e.Op, e.Code)
}

// Unauthorized reports whether the failure is an auth-class one; a usage
// aggregation treats these as systemic rather than per-room
func (e *Error) Unauthorized() bool {
	return e.HTTPStatus == http.StatusUnauthorized || e.HTTPStatus == http.StatusForbidden
}

// IsUnauthorized reports whether err wraps an auth-class provider failure
func IsUnauthorized(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Unauthorized()
}
