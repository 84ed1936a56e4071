package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by TrackedEventStore.Get for ids that were never
// alerted on.
var ErrNotFound = errors.New("tracked event not found")

// FetchError wraps a network, HTTP, or decode failure reaching the upstream
// event API. Per-event fetch failures never abort a whole pass.
type FetchError struct {
	Op  string
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SendError wraps a notification transport failure. The orchestrator treats
// it as "do not mutate the store for this event, continue the loop".
type SendError struct {
	Kind NotificationKind
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s notification: %v", e.Kind, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
