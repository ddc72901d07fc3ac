package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultExportSchedule runs the export daily at 03:00.
const DefaultExportSchedule = "0 3 * * *"

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ExportEnqueuer queues a catalog export. *tasks.Client satisfies it.
type ExportEnqueuer interface {
	EnqueueExport(ctx context.Context, column, searchWord string) (string, error)
}

// ExportScheduler periodically queues a full catalog export.
type ExportScheduler struct {
	enqueuer ExportEnqueuer
	schedule string
	column   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewExportScheduler creates a scheduler for the given five-field cron
// schedule. An empty schedule means DefaultExportSchedule.
func NewExportScheduler(enqueuer ExportEnqueuer, schedule, column string) *ExportScheduler {
	if schedule == "" {
		schedule = DefaultExportSchedule
	}
	return &ExportScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		column:   column,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// Start begins the scheduler. It stops by itself when ctx is cancelled.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runExport(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Export scheduler: started with schedule '%s'. Next run: %v", s.schedule, s.nextRunLocked())

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Export scheduler: stopped")
}

// RunNow queues an export immediately, outside the schedule.
func (s *ExportScheduler) RunNow(ctx context.Context) (string, error) {
	return s.enqueuer.EnqueueExport(ctx, s.column, "")
}

// IsRunning returns whether the scheduler is active
func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next export will be queued
func (s *ExportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.nextRunLocked()
	if t.IsZero() {
		return nil
	}
	return &t
}

func (s *ExportScheduler) nextRunLocked() time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			return entry.Next
		}
	}
	return time.Time{}
}

func (s *ExportScheduler) runExport(ctx context.Context) {
	taskID, err := s.RunNow(ctx)
	if err != nil {
		log.Printf("Export scheduler: failed to queue export: %v", err)
		return
	}
	log.Printf("Export scheduler: queued export task %s", taskID)
}
