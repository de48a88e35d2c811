package chatlab

import (
	"errors"
	"fmt"
)

// ErrNoClient reports a Submit call on a Conversation with no model client
// configured.
var ErrNoClient = errors.New("chatlab: no model client configured")

// ErrNoRegistry reports a model-issued function call directive arriving on
// a Conversation with no function registry attached. The directive stays
// in the transcript so the misconfiguration is visible.
var ErrNoRegistry = errors.New("chatlab: model issued a function call but no function registry is attached")

// RoundLimitError reports a resolution loop that kept producing function
// call directives past the configured bound.
type RoundLimitError struct {
	Rounds int
}

func (e *RoundLimitError) Error() string {
	return fmt.Sprintf("chatlab: resolution loop exceeded %d rounds without a text reply", e.Rounds)
}

// RemoteError wraps a failed model client call. It is not retried
// internally; the transcript remains intact up to the failure.
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("chatlab: model client call failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
