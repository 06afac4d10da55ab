package uniqueness

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

type fakeClient struct {
	calls  atomic.Int32
	exists bool
	err    error

	mu   sync.Mutex
	last Request
}

func (f *fakeClient) Exists(_ context.Context, req Request) (bool, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()
	return f.exists, f.err
}

// gatedClient blocks each call until its answer is sent on the channel
// registered for the request value.
type gatedClient struct {
	mu      sync.Mutex
	gates   map[string]chan bool
	started chan string
}

func newGatedClient(values ...string) *gatedClient {
	g := &gatedClient{gates: map[string]chan bool{}, started: make(chan string, len(values))}
	for _, v := range values {
		g.gates[v] = make(chan bool)
	}
	return g
}

func (g *gatedClient) Exists(ctx context.Context, req Request) (bool, error) {
	g.mu.Lock()
	gate := g.gates[req.Value]
	g.mu.Unlock()
	g.started <- req.Value
	select {
	case v := <-gate:
		return v, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func TestCheck_ShortValueNeverCallsBackend(t *testing.T) {
	fc := &fakeClient{exists: true}
	s := validation.NewSession()
	c := NewChecker(fc, s)

	out := c.Check(context.Background(), Target{Field: PANNumber, Value: "ABCDE", ErrorKey: "panNumber"})
	assert.True(t, out.Skipped)

	out = c.Check(context.Background(), Target{Field: Email, Value: "a@b", ErrorKey: "email", MinLength: 4})
	assert.True(t, out.Skipped)

	assert.Equal(t, int32(0), fc.calls.Load())
	assert.False(t, s.HasErrors())
	assert.Empty(t, s.CheckingKeys())
}

func TestCheck_DuplicateFound(t *testing.T) {
	fc := &fakeClient{exists: true}
	s := validation.NewSession()
	c := NewChecker(fc, s)

	out := c.Check(context.Background(), Target{Field: Email, Value: "asha@acme.in", ErrorKey: "email"})
	require.NoError(t, out.Err)
	assert.Equal(t, Result{Exists: true, Message: MsgAlreadyExists}, out.Result)

	msg, ok := s.Error("email")
	assert.True(t, ok)
	assert.Equal(t, MsgAlreadyExists, msg)
	assert.False(t, s.Checking("email"))
	assert.Equal(t, ModeCreate, fc.last.Mode)
	assert.Empty(t, fc.last.ExcludeID)
}

func TestCheck_AvailableClearsPriorError(t *testing.T) {
	fc := &fakeClient{exists: false}
	s := validation.NewSession()
	s.SetError("email", MsgAlreadyExists)
	c := NewChecker(fc, s)

	out := c.Check(context.Background(), Target{Field: Email, Value: "asha@acme.in", ErrorKey: "email"})
	assert.Equal(t, Result{Message: MsgAvailable}, out.Result)
	_, ok := s.Error("email")
	assert.False(t, ok)
}

func TestCheck_EditModeSendsExcludeIDAndColumn(t *testing.T) {
	fc := &fakeClient{}
	c := NewChecker(fc, validation.NewSession())

	c.Check(context.Background(), Target{
		Field: PANNumber, Value: "ABCDE1234F", ErrorKey: "panNumber",
		ExcludeID: "emp-1", FieldColumn: "pan_number",
	})
	assert.Equal(t, Request{
		Field: PANNumber, Value: "ABCDE1234F", Mode: ModeEdit,
		ExcludeID: "emp-1", FieldColumn: "pan_number",
	}, fc.last)
}

func TestCheck_FailureLeavesBlockingError(t *testing.T) {
	fc := &fakeClient{err: errors.New("boom")}
	s := validation.NewSession()
	c := NewChecker(fc, s)

	out := c.Check(context.Background(), Target{Field: GST, Value: "22ABCDE1234F1Z5", ErrorKey: "gstNumber"})
	require.Error(t, out.Err)

	msg, _ := s.Error("gstNumber")
	assert.Equal(t, MsgCheckFailed, msg)
	assert.False(t, s.Checking("gstNumber"))
}

func TestCheck_LastRequestWins(t *testing.T) {
	gc := newGatedClient("old@acme.in", "new@acme.in")
	s := validation.NewSession()
	c := NewChecker(gc, s)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := c.Go(ctx, Target{Field: Email, Value: "old@acme.in", ErrorKey: "email"})
	require.Equal(t, "old@acme.in", <-gc.started)

	second := c.Go(ctx, Target{Field: Email, Value: "new@acme.in", ErrorKey: "email"})
	require.Equal(t, "new@acme.in", <-gc.started)

	// newer answer arrives first
	gc.gates["new@acme.in"] <- false
	out2 := <-second
	assert.False(t, out2.Stale)
	assert.False(t, s.Checking("email"))

	// the stale answer must not overwrite it
	gc.gates["old@acme.in"] <- true
	out1 := <-first
	assert.True(t, out1.Stale)

	_, ok := s.Error("email")
	assert.False(t, ok)
	assert.False(t, s.Checking("email"))
}

func TestCheck_ShortValueSupersedesInFlight(t *testing.T) {
	gc := newGatedClient("old@acme.in")
	s := validation.NewSession()
	c := NewChecker(gc, s)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := c.Go(ctx, Target{Field: Email, Value: "old@acme.in", ErrorKey: "email"})
	require.Equal(t, "old@acme.in", <-gc.started)
	require.True(t, s.Checking("email"))

	// user edits the value down below the minimum length
	out := c.Check(ctx, Target{Field: Email, Value: "ol", ErrorKey: "email"})
	assert.True(t, out.Skipped)
	assert.False(t, s.Checking("email"))

	gc.gates["old@acme.in"] <- true
	assert.True(t, (<-first).Stale)

	_, ok := s.Error("email")
	assert.False(t, ok)
	assert.False(t, s.Checking("email"))
}

func TestCheck_ShortValueClearsOnlyUniquenessErrors(t *testing.T) {
	fc := &fakeClient{exists: true}
	s := validation.NewSession()
	c := NewChecker(fc, s)

	c.Check(context.Background(), Target{Field: Email, Value: "asha@acme.in", ErrorKey: "email"})
	msg, _ := s.Error("email")
	require.Equal(t, MsgAlreadyExists, msg)

	c.Check(context.Background(), Target{Field: Email, Value: "as", ErrorKey: "email"})
	_, ok := s.Error("email")
	assert.False(t, ok)

	s.SetError("panNumber", "PAN must be 5 letters, 4 digits and 1 letter")
	c.Check(context.Background(), Target{Field: PANNumber, Value: "AB", ErrorKey: "panNumber"})
	_, ok = s.Error("panNumber")
	assert.True(t, ok)
}

func TestCheck_StaleKeepsCheckingForNewer(t *testing.T) {
	gc := newGatedClient("old@acme.in", "new@acme.in")
	s := validation.NewSession()
	c := NewChecker(gc, s)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := c.Go(ctx, Target{Field: Email, Value: "old@acme.in", ErrorKey: "email"})
	<-gc.started
	second := c.Go(ctx, Target{Field: Email, Value: "new@acme.in", ErrorKey: "email"})
	<-gc.started

	gc.gates["old@acme.in"] <- false
	assert.True(t, (<-first).Stale)
	assert.True(t, s.Checking("email"))

	gc.gates["new@acme.in"] <- true
	assert.False(t, (<-second).Stale)
	msg, _ := s.Error("email")
	assert.Equal(t, MsgAlreadyExists, msg)
	assert.False(t, s.Checking("email"))
}

func TestCheckAll(t *testing.T) {
	fc := &fakeClient{exists: true}
	s := validation.NewSession()
	c := NewChecker(fc, s)

	outs := c.CheckAll(context.Background(), []Target{
		{Field: Email, Value: "asha@acme.in", ErrorKey: "email"},
		{Field: PANNumber, Value: "ABCDE1234F", ErrorKey: "panNumber"},
		{Field: AadharNumber, Value: "123", ErrorKey: "aadharNumber"},
	})
	require.Len(t, outs, 3)
	assert.True(t, outs[2].Skipped)
	assert.Equal(t, int32(2), fc.calls.Load())
	assert.Len(t, s.Errors(), 2)
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" pan_number ")
	require.NoError(t, err)
	assert.Equal(t, PANNumber, f)

	_, err = ParseField("SHOE_SIZE")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Len(t, Fields(), 15)
}
