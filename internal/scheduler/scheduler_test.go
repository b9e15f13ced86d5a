package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(time.UTC)
	require.Error(t, s.Add("bad", "every tuesday", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("hourly", "@hourly", func(context.Context) error { return nil }))
}

func TestRunNowPassesDeadline(t *testing.T) {
	s := New(time.UTC)

	var hasDeadline bool
	s.RunNow("probe", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return errors.New("logged, not returned")
	})
	require.True(t, hasDeadline)
}

func TestCronRunsJobs(t *testing.T) {
	s := New(time.UTC)
	done := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
