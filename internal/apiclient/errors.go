package apiclient

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an authenticated call is attempted
// and the token source has no credential, e.g. right after a logout.
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError is a local precondition failure detected before any
// request is sent. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError means the backend understood the request and rejected
// it: bad password, unknown user, duplicate registration email. Recoverable
// by the user retrying with different input.
type AuthenticationError struct {
	Status  int
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// ProtocolError means the response was not the JSON the backend contract
// promises: wrong base URL, a reverse-proxy misroute, or the backend being
// down. Kept distinct from AuthenticationError so callers can surface a
// systemic rather than a credential message.
type ProtocolError struct {
	Status      int
	ContentType string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("server returned status %d with content type %q, expected JSON", e.Status, e.ContentType)
}
