package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldoetobex/hrms-backend/internal/config"
	"github.com/aldoetobex/hrms-backend/pkg/patterns"
	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type fakeClient struct {
	exists bool
	err    error
	got    uniqueness.Request
}

func (f *fakeClient) Exists(_ context.Context, req uniqueness.Request) (bool, error) {
	f.got = req
	return f.exists, f.err
}

func withClient(t *testing.T, f uniqueness.Client) {
	t.Helper()
	prev := newClient
	newClient = func(*config.ClientConfig) uniqueness.Client { return f }
	t.Cleanup(func() { newClient = prev })
}

func TestField(t *testing.T) {
	out, err := run(t, "field", "panNumber", "abcde1234f")
	require.NoError(t, err)
	assert.Contains(t, out, "ABCDE1234F")

	out, err = run(t, "field", "ifscCode", "SBIN1001234")
	var invalid ErrInvalid
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, out, patterns.IFSC.Message)

	_, err = run(t, "field", "alternateContactNumber", "9876543210", "--snapshot", `{"contactNumber":"9876543210"}`)
	assert.Error(t, err)
}

func TestField_Unknown(t *testing.T) {
	out, err := run(t, "field", "favouriteColour", "blue")
	require.NoError(t, err)
	assert.Contains(t, out, "no rule")

	_, err = run(t, "field", "favouriteColour", "blue", "--strict")
	assert.ErrorIs(t, err, validation.ErrUnknownField)
}

func TestDates(t *testing.T) {
	out, err := run(t, "dates", "--client", "CLIENT:42", "--joining", "2024-01-10", "--onboarding", "2024-01-05")
	assert.Equal(t, ErrInvalid{N: 1}, err)
	assert.Contains(t, out, validation.MsgOnboardingBeforeJoining)

	out, err = run(t, "dates", "--client", "BENCH", "--joining", "2024-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "consistent")
}

func TestUnique(t *testing.T) {
	f := &fakeClient{exists: true}
	withClient(t, f)

	out, err := run(t, "unique", "--field", "pan_number", "--value", "ABCDE1234F")
	assert.Equal(t, ErrInvalid{N: 1}, err)
	assert.Contains(t, out, uniqueness.MsgAlreadyExists)
	assert.Equal(t, uniqueness.ModeCreate, f.got.Mode)

	f.exists = false
	out, err = run(t, "unique", "--field", "EMAIL", "--value", "a@b.in", "--exclude-id", "7", "--column", "email")
	require.NoError(t, err)
	assert.Contains(t, out, uniqueness.MsgAvailable)
	assert.Equal(t, uniqueness.ModeEdit, f.got.Mode)
	assert.Equal(t, "7", f.got.ExcludeID)

	out, err = run(t, "unique", "--field", "EMAIL", "--value", "a@b")
	require.NoError(t, err)
	assert.Contains(t, out, "too short")

	f.err = errors.New("connection refused")
	_, err = run(t, "unique", "--field", "EMAIL", "--value", "a@b.in")
	assert.ErrorContains(t, err, uniqueness.MsgCheckFailed)

	_, err = run(t, "unique", "--field", "SHOE_SIZE", "--value", "x")
	assert.ErrorIs(t, err, uniqueness.ErrUnknownField)
}

func TestErrInvalid(t *testing.T) {
	assert.Equal(t, "1 validation error", ErrInvalid{N: 1}.Error())
	assert.Equal(t, "3 validation errors", ErrInvalid{N: 3}.Error())
}
