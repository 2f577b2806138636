package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*60*60)

type recordingTimesheets struct {
	timesheet.TimesheetService

	mu      sync.Mutex
	periods []timesheet.Period
	err     error
}

func (r *recordingTimesheets) GenerateForAllActive(ctx context.Context, period timesheet.Period) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods = append(r.periods, period)
	return 3, r.err
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestTimesheetJobs_GenerateTimesheets(t *testing.T) {
	ctx := context.Background()

	t.Run("runs once per business day", func(t *testing.T) {
		// 2024-06-10 00:15 in Manila is still 2024-06-09 in UTC.
		c := &clock{t: time.Date(2024, 6, 9, 16, 15, 0, 0, time.UTC)}
		svc := &recordingTimesheets{}
		jobs := NewTimesheetJobs(svc, manila, c.now)

		require.NoError(t, jobs.GenerateTimesheets(ctx))
		c.t = c.t.Add(time.Hour)
		require.NoError(t, jobs.GenerateTimesheets(ctx))

		require.Len(t, svc.periods, 1)
		assert.Equal(t, "2024-06-03..2024-06-09", svc.periods[0].String(), "monday run closes the previous week")

		c.t = c.t.Add(24 * time.Hour)
		require.NoError(t, jobs.GenerateTimesheets(ctx))
		require.Len(t, svc.periods, 2)
		assert.Equal(t, "2024-06-10..2024-06-16", svc.periods[1].String())
	})

	t.Run("failed run is retried on the next tick", func(t *testing.T) {
		c := &clock{t: time.Date(2024, 6, 12, 1, 0, 0, 0, manila)}
		svc := &recordingTimesheets{err: errors.New("employee emp-1: boom")}
		jobs := NewTimesheetJobs(svc, manila, c.now)

		err := jobs.GenerateTimesheets(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2024-06-10..2024-06-16")

		svc.err = nil
		require.NoError(t, jobs.GenerateTimesheets(ctx))
		require.NoError(t, jobs.GenerateTimesheets(ctx))
		assert.Len(t, svc.periods, 2)
	})
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())

	var order []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return errors.New("failed")
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		order = append(order, "second")
		panic("boom")
	})
	s.AddJob("third", time.Hour, func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	assert.Equal(t, 2, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())

	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	s.AddJob("late", time.Hour, func(ctx context.Context) error { return nil })
	assert.Len(t, s.jobs, 1)
}
