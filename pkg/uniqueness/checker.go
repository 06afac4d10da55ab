package uniqueness

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

const (
	MsgAlreadyExists = "Already exists"
	MsgAvailable     = "Available"
	MsgCheckFailed   = "Unable to verify uniqueness, please try again"
)

// Client answers whether a value is already taken.
type Client interface {
	Exists(ctx context.Context, req Request) (bool, error)
}

// Result is what callers see, independent of the backend's wording.
type Result struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

func resultOf(exists bool) Result {
	if exists {
		return Result{Exists: true, Message: MsgAlreadyExists}
	}
	return Result{Message: MsgAvailable}
}

// Target is one blur-triggered check.
type Target struct {
	Field       Field
	Value       string
	ErrorKey    string
	FieldColumn string
	ExcludeID   string
	// MinLength overrides Field.MinLength when > 0.
	MinLength int
}

// Outcome reports what Check did.
type Outcome struct {
	Result
	// Skipped is set when the value was too short to check.
	Skipped bool
	// Stale is set when a newer check for the same key superseded this one;
	// its result was discarded.
	Stale bool
	Err   error
}

// Checker runs uniqueness checks against one session. For every error key
// only the most recently issued request may touch the session.
type Checker struct {
	client  Client
	session *validation.Session

	mu  sync.Mutex
	seq map[string]uint64
}

func NewChecker(client Client, session *validation.Session) *Checker {
	return &Checker{client: client, session: session, seq: make(map[string]uint64)}
}

func (c *Checker) next(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[key]++
	return c.seq[key]
}

func (c *Checker) latest(key string, n uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq[key] == n
}

// Check runs one lookup and applies the answer to the session.
func (c *Checker) Check(ctx context.Context, t Target) Outcome {
	value := strings.TrimSpace(t.Value)
	minLen := t.MinLength
	if minLen <= 0 {
		minLen = t.Field.MinLength()
	}
	key := t.ErrorKey
	n := c.next(key)
	if utf8.RuneCountInString(value) < minLen {
		c.skip(key)
		return Outcome{Skipped: true}
	}

	c.session.SetChecking(key, true)

	req := Request{Field: t.Field, Value: value, Mode: ModeCreate}
	if t.ExcludeID != "" {
		req.Mode = ModeEdit
		req.ExcludeID = t.ExcludeID
		req.FieldColumn = t.FieldColumn
	}

	exists, err := c.client.Exists(ctx, req)

	if !c.latest(key, n) {
		return Outcome{Stale: true, Err: err, Result: resultOf(exists)}
	}
	defer c.session.SetChecking(key, false)

	if err != nil {
		c.session.SetError(key, MsgCheckFailed)
		return Outcome{Err: err}
	}
	if exists {
		c.session.SetError(key, MsgAlreadyExists)
	} else {
		c.session.ClearError(key)
	}
	return Outcome{Result: resultOf(exists)}
}

// skip retires any check in flight for key. A uniqueness error left by an
// earlier value no longer applies; format errors stay.
func (c *Checker) skip(key string) {
	c.session.SetChecking(key, false)
	if msg, ok := c.session.Error(key); ok && (msg == MsgAlreadyExists || msg == MsgCheckFailed) {
		c.session.ClearError(key)
	}
}

// Go runs Check on its own goroutine.
func (c *Checker) Go(ctx context.Context, t Target) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() { out <- c.Check(ctx, t) }()
	return out
}

// CheckAll runs targets concurrently and waits for all of them.
func (c *Checker) CheckAll(ctx context.Context, targets []Target) []Outcome {
	chans := make([]<-chan Outcome, len(targets))
	for i, t := range targets {
		chans[i] = c.Go(ctx, t)
	}
	out := make([]Outcome, len(targets))
	for i, ch := range chans {
		out[i] = <-ch
	}
	return out
}

// Lookup asks the client directly without touching a session.
func Lookup(ctx context.Context, client Client, req Request) (Result, error) {
	if req.Mode == "" {
		req.Mode = ModeCreate
	}
	exists, err := client.Exists(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return resultOf(exists), nil
}
