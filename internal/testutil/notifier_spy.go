package testutil

import (
	"context"
	"sync"
)

// NotifyCall records one notification delivered to a NotifierSpy.
type NotifyCall struct {
	Email   string
	Enabled bool
}

// NotifierSpy implements notify.Notifier and records every call.
type NotifierSpy struct {
	mu    sync.Mutex
	calls []NotifyCall

	// Err is returned from Notify when set.
	Err error
}

// Notify records the call and returns Err.
func (s *NotifierSpy) Notify(_ context.Context, email string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, NotifyCall{Email: email, Enabled: enabled})
	return s.Err
}

// Calls returns a copy of the recorded notifications in order.
func (s *NotifierSpy) Calls() []NotifyCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]NotifyCall, len(s.calls))
	copy(out, s.calls)
	return out
}
