package validation

import (
	"sort"
	"sync"
)

// Session owns the field error map of one form plus the set of keys whose
// uniqueness check is in flight. A key absent from the map is valid.
//
// Uniqueness checks complete on other goroutines, so every method locks.
type Session struct {
	mu       sync.Mutex
	errs     map[string]string
	checking map[string]struct{}
}

func NewSession() *Session {
	return &Session{
		errs:     make(map[string]string),
		checking: make(map[string]struct{}),
	}
}

// SetError records msg at key. An empty msg deletes the key.
func (s *Session) SetError(key, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == "" {
		delete(s.errs, key)
		return
	}
	s.errs[key] = msg
}

func (s *Session) ClearError(key string) { s.SetError(key, "") }

func (s *Session) Error(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.errs[key]
	return msg, ok
}

// Errors returns a copy of the error map.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

func (s *Session) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs) > 0
}

// Merge copies the first message of every key in bag into the session.
func (s *Session) Merge(bag map[string][]string) {
	for k, msgs := range bag {
		if len(msgs) > 0 {
			s.SetError(k, msgs[0])
		}
	}
}

// Bag converts the error map to the response shape used by Respond.
func (s *Session) Bag() map[string][]string {
	errs := s.Errors()
	out := make(map[string][]string, len(errs))
	for k, v := range errs {
		out[k] = []string{v}
	}
	return out
}

// Apply runs v on value and stores the outcome at key.
func (s *Session) Apply(v *FieldValidator, key string, value any, snap Snapshot) string {
	msg := v.Validate(key, value, snap)
	s.SetError(key, msg)
	return msg
}

/* ============================ Pending checks ============================ */

func (s *Session) SetChecking(key string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.checking[key] = struct{}{}
		return
	}
	delete(s.checking, key)
}

func (s *Session) Checking(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.checking[key]
	return ok
}

// CheckingKeys lists keys with a check in flight, sorted.
func (s *Session) CheckingKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.checking))
	for k := range s.checking {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
