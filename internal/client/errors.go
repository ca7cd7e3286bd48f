// Package client implements REST clients for the external collaborators of
// the intake service: the application store and the OASys risk service.
package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the status-and-data shape every upstream failure surfaces as.
type Error struct {
	Status int
	Data   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.Status, e.Data)
}

// IsNotFound reports whether err is an upstream 404. A missing record is the
// only failure class pages may recover from locally.
func IsNotFound(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Status == http.StatusNotFound
}

// IsDenied reports whether err is an upstream 401 or 403. Denied failures
// always propagate to the boundary.
func IsDenied(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && (ce.Status == http.StatusUnauthorized || ce.Status == http.StatusForbidden)
}
