package digest

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/checkgate/internal/notify"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// ValidCron reports whether expr parses as a 5-field cron expression.
func ValidCron(expr string) bool {
	_, err := cronParser.Parse(expr)
	return err == nil
}

// Scheduler sends the daily digest on a cron schedule.
type Scheduler struct {
	db       *gorm.DB
	notifier notify.Notifier
	expr     string
}

// NewScheduler creates a Scheduler for the given cron expression.
func NewScheduler(db *gorm.DB, notifier notify.Notifier, expr string) *Scheduler {
	return &Scheduler{db: db, notifier: notifier, expr: expr}
}

// Run fires the digest on schedule until the context is cancelled. An
// unparseable expression disables the scheduler.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		d := nextCronDuration(s.expr)
		if d == 0 {
			log.Printf("digest: invalid cron expression %q, scheduler disabled", s.expr)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(d):
			s.fire(ctx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	report, err := BuildDaily(s.db)
	if err != nil {
		log.Printf("digest: building daily report: %v", err)
		return
	}
	if report == nil {
		return
	}
	if err := s.notifier.Send(ctx, Format(report)); err != nil {
		log.Printf("digest: sending daily report: %v", err)
	}
}
