package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a record lookup by id comes up empty.
var ErrNotFound = errors.New("listing not found")

// ValidationError reports required insert fields that are missing from an
// upsert payload. It is raised before any write is attempted, local or remote.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("listing payload is missing required fields: %s", strings.Join(e.Missing, ", "))
}

// RemoteError wraps a failure of the hosted store (network, auth or
// constraint). Read paths absorb it and fall back to the local cache; write
// paths absorb it and degrade to local-only persistence.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote store: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
