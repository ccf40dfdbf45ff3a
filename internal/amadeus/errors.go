package amadeus

import (
	"errors"
	"fmt"
)

// ErrCredentialsNotConfigured means the provider API key/secret are absent
// from the environment. A deployment problem, not a search problem.
var ErrCredentialsNotConfigured = errors.New("amadeus: API credentials not configured")

// AuthError reports a rejected credential exchange. Status and body are kept
// for diagnostics.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("amadeus token: provider returned %d: %s", e.Status, e.Body)
}

// SearchError reports a failed offer search call.
type SearchError struct {
	Status int
	Body   string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("amadeus search: provider returned %d: %s", e.Status, e.Body)
}
