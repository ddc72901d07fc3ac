package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mu      sync.Mutex
	calls   []string
	err     error
	counter int
}

func (m *mockEnqueuer) EnqueueExport(ctx context.Context, column, searchWord string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.counter++
	m.calls = append(m.calls, column+"|"+searchWord)
	return fmt.Sprintf("task-%d", m.counter), nil
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 3 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 1 1 *", true},
		{"not a schedule", false},
		{"0 3 * *", false},
		{"0 0 3 * * *", false}, // seconds field is not accepted
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewExportScheduler_DefaultSchedule(t *testing.T) {
	s := NewExportScheduler(&mockEnqueuer{}, "", "title")
	assert.Equal(t, DefaultExportSchedule, s.schedule)
}

func TestExportScheduler_StartStop(t *testing.T) {
	s := NewExportScheduler(&mockEnqueuer{}, "0 3 * * *", "title")

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))

	// Starting twice is a no-op
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestExportScheduler_StopsWhenContextIsCancelled(t *testing.T) {
	s := NewExportScheduler(&mockEnqueuer{}, "0 3 * * *", "title")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestExportScheduler_InvalidSchedule(t *testing.T) {
	s := NewExportScheduler(&mockEnqueuer{}, "every day", "title")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestExportScheduler_RunNow(t *testing.T) {
	t.Run("queues a full export", func(t *testing.T) {
		enqueuer := &mockEnqueuer{}
		s := NewExportScheduler(enqueuer, "", "author")

		taskID, err := s.RunNow(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "task-1", taskID)
		assert.Equal(t, []string{"author|"}, enqueuer.calls)
	})

	t.Run("returns enqueue errors", func(t *testing.T) {
		s := NewExportScheduler(&mockEnqueuer{err: errors.New("queue closed")}, "", "title")

		_, err := s.RunNow(context.Background())
		assert.EqualError(t, err, "queue closed")
	})
}
