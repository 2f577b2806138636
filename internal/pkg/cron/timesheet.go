package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
)

// TimesheetJobName is the scheduler name of the daily timesheet regeneration.
const TimesheetJobName = "generate_timesheets"

type TimesheetJobs struct {
	timesheetService timesheet.TimesheetService
	loc              *time.Location
	now              func() time.Time

	mu      sync.Mutex
	lastRun string // business date of the last successful run
}

func NewTimesheetJobs(timesheetService timesheet.TimesheetService, loc *time.Location, now func() time.Time) *TimesheetJobs {
	if now == nil {
		now = time.Now
	}
	return &TimesheetJobs{
		timesheetService: timesheetService,
		loc:              loc,
		now:              now,
	}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(TimesheetJobName, 1*time.Hour, j.GenerateTimesheets)
}

// GenerateTimesheets regenerates the pay week containing yesterday for every
// active employee. It acts on the first tick of each business day; later
// ticks that day are no-ops unless the earlier run failed.
func (j *TimesheetJobs) GenerateTimesheets(ctx context.Context) error {
	local := j.now().In(j.loc)
	today := local.Format(timesheet.DateLayout)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastRun == today {
		return nil
	}

	runID := uuid.NewString()
	period := timesheet.WeekOf(local.AddDate(0, 0, -1), j.loc)
	slog.Info("Cron: Starting timesheet generation", "run_id", runID, "period", period.String())

	count, err := j.timesheetService.GenerateForAllActive(ctx, period)
	if err != nil {
		slog.Warn("Cron: Timesheet generation finished with failures", "run_id", runID, "generated", count, "error", err)
		return fmt.Errorf("generate timesheets for %s: %w", period.String(), err)
	}

	j.lastRun = today
	slog.Info("Cron: Timesheet generation completed", "run_id", runID, "generated", count)
	return nil
}
