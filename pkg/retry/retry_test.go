package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = Policy{
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	MaxRetries:      3,
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	var notified []error

	err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("openai returned status 503: overloaded")
		}
		return nil
	}, func(err error, _ time.Duration) {
		notified = append(notified, err)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, notified, 2)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	want := errors.New("openai returned status 401: bad key")

	err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return want
	}, nil)

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 1, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0

	err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return errors.New("connection refused")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, 4, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, fastPolicy, func(context.Context) error {
		calls++
		return nil
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{errors.New("dial tcp: connection reset by peer"), true},
		{errors.New("trello returned status 429: slow down"), true},
		{errors.New("huggingface returned status 502: bad gateway"), true},
		{errors.New("notion returned status 400: validation_error"), false},
		{errors.New("no object found"), false},
		{errors.New("owner Geoffrey not found"), false},
		{fmt.Errorf("Post \"https://api.trello.com/1/cards\": %w", io.EOF), true},
		{fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), true},
		{Permanent(fmt.Errorf("failed to decode trello response: %w", io.ErrUnexpectedEOF)), false},
		{codedError{code: 503}, true},
		{codedError{code: 429}, true},
		{fmt.Errorf("wrapped: %w", codedError{code: 400}), false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

type codedError struct {
	code int
}

func (e codedError) Error() string { return fmt.Sprintf("remote returned status %d: try again", e.code) }

func (e codedError) Retryable() bool { return e.code == 429 || e.code >= 500 }

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	err := Permanent(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), err.Error())
}

func TestDo_PermanentIsNotRetried(t *testing.T) {
	calls := 0

	err := Do(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return Permanent(fmt.Errorf("decode: %w", io.ErrUnexpectedEOF))
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 1, calls)
}
