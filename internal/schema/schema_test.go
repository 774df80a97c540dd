package schema

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyExecer struct {
	failures int
	calls    int
}

func (f *flakyExecer) ExecContext(_ context.Context, _ string, _ ...any) (sql.Result, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection refused")
	}
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnsureSucceedsFirstAttempt(t *testing.T) {
	e := &flakyExecer{}
	err := ensure(context.Background(), e, 10, time.Millisecond, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, e.calls)
}

func TestEnsureRetriesUntilStoreIsReady(t *testing.T) {
	e := &flakyExecer{failures: 4}
	err := ensure(context.Background(), e, 10, time.Millisecond, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 5, e.calls)
}

func TestEnsureFailsAfterBudgetExhausted(t *testing.T) {
	e := &flakyExecer{failures: 100}
	err := ensure(context.Background(), e, 3, time.Millisecond, discardLogger())
	require.Error(t, err)
	assert.Equal(t, 3, e.calls)
	assert.Contains(t, err.Error(), "exhausted 3 of 3 attempts")
}

func TestEnsureStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &flakyExecer{failures: 100}
	err := ensure(ctx, e, 10, time.Minute, discardLogger())
	require.Error(t, err)
	assert.LessOrEqual(t, e.calls, 1)
}
