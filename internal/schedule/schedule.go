// Package schedule runs the reports in-process on cron expressions, for
// deployments without an external scheduler.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/takak2166/bleeeeeefing/internal/logger"
)

// JobFunc runs one report for the given day
type JobFunc func(ctx context.Context, today time.Time) error

// Job is a named report with its standard 5-field cron expression, e.g.
// "0 9 * * 1-5" for weekdays at 9am
type Job struct {
	Name     string
	Schedule string
	Run      JobFunc
}

type entry struct {
	job      Job
	schedule cron.Schedule
}

// Scheduler triggers jobs on their schedules. Jobs never run concurrently:
// jobs due at the same minute run one after another in the order they were
// given to New.
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
	entries  []entry

	mu sync.Mutex
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// New creates a Scheduler for jobs evaluated in loc
func New(loc *time.Location, jobs ...Job) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(parser),
			cron.WithLogger(cronLogger{}),
			cron.WithChain(cron.Recover(cronLogger{})),
		),
		location: loc,
	}

	for _, job := range jobs {
		sched, err := parser.Parse(job.Schedule)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q for %s: %w", job.Schedule, job.Name, err)
		}
		s.entries = append(s.entries, entry{job: job, schedule: sched})
	}

	if len(s.entries) > 0 {
		s.cron.Schedule(union(s.entries), cron.FuncJob(func() {
			s.fire(time.Now())
		}))
	}

	return s, nil
}

// Next returns the next time the named job fires after from
func (s *Scheduler) Next(name string, from time.Time) (time.Time, bool) {
	for _, e := range s.entries {
		if e.job.Name == name {
			return e.schedule.Next(from.In(s.location)), true
		}
	}
	return time.Time{}, false
}

// Run starts the scheduler and blocks until ctx is cancelled and running
// jobs have finished.
func (s *Scheduler) Run(ctx context.Context) {
	now := time.Now()
	for _, e := range s.entries {
		logger.Info("Scheduled report", logger.Fields{
			"report": e.job.Name,
			"next":   e.schedule.Next(now.In(s.location)).Format("Mon Jan 2 15:04"),
		})
	}

	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}

// union is the earliest next firing of any of its entries, so all jobs share
// a single cron entry
type union []entry

func (u union) Next(t time.Time) time.Time {
	var earliest time.Time
	for _, e := range u {
		n := e.schedule.Next(t)
		if earliest.IsZero() || (!n.IsZero() && n.Before(earliest)) {
			earliest = n
		}
	}
	return earliest
}

// due returns the jobs scheduled for the minute containing at, in
// registration order
func (s *Scheduler) due(at time.Time) []Job {
	minute := at.In(s.location).Truncate(time.Minute)
	var jobs []Job
	for _, e := range s.entries {
		if e.schedule.Next(minute.Add(-time.Second)).Equal(minute) {
			jobs = append(jobs, e.job)
		}
	}
	return jobs
}

// fire runs the jobs due at at. A firing that overlaps a running one waits
// for it to finish.
func (s *Scheduler) fire(at time.Time) {
	jobs := s.due(at)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range jobs {
		s.run(job, at)
	}
}

// run runs one job. A failure is logged and does not stop the scheduler.
func (s *Scheduler) run(job Job, at time.Time) {
	today := at.In(s.location)
	logger.Info("Running scheduled report", logger.Fields{
		"report": job.Name,
		"date":   today.Format("2006-01-02"),
	})
	if err := job.Run(context.Background(), today); err != nil {
		logger.Error("Scheduled report failed", err, logger.Fields{
			"report": job.Name,
		})
	}
}

// cronLogger sends cron's own log lines to the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, fields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error(msg, err, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) logger.Fields {
	f := logger.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
