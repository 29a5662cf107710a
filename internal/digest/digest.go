// Package digest builds periodic activity summaries for chat delivery.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/notify"
	"github.com/zulandar/checkgate/internal/session"
	"gorm.io/gorm"
)

// Report holds computed activity metrics for a period.
type Report struct {
	PeriodStart         time.Time
	PeriodEnd           time.Time
	SessionsStarted     int
	SessionsCompleted   int
	ValidationsRecorded int
	Failures            int
	OpenSessions        []OpenSession
}

// OpenSession holds the progress of a session that is still running.
type OpenSession struct {
	Name      string
	Phase     int
	Validated int64
	Total     int64
}

// Empty reports whether the period saw no activity at all.
func (r *Report) Empty() bool {
	return r.SessionsStarted == 0 && r.SessionsCompleted == 0 &&
		r.ValidationsRecorded == 0 && len(r.OpenSessions) == 0
}

// Build queries activity metrics within the given time range.
func Build(db *gorm.DB, since, until time.Time) (*Report, error) {
	report := &Report{
		PeriodStart: since,
		PeriodEnd:   until,
	}

	var started int64
	if err := db.Model(&models.Session{}).
		Where("started_at >= ? AND started_at < ?", since, until).
		Count(&started).Error; err != nil {
		return nil, fmt.Errorf("digest: counting started sessions: %w", err)
	}
	report.SessionsStarted = int(started)

	var completed int64
	if err := db.Model(&models.Session{}).
		Where("completed_at >= ? AND completed_at < ?", since, until).
		Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("digest: counting completed sessions: %w", err)
	}
	report.SessionsCompleted = int(completed)

	var recorded int64
	if err := db.Model(&models.Validation{}).
		Where("validated_at >= ? AND validated_at < ?", since, until).
		Count(&recorded).Error; err != nil {
		return nil, fmt.Errorf("digest: counting validations: %w", err)
	}
	report.ValidationsRecorded = int(recorded)

	var failures int64
	if err := db.Model(&models.Validation{}).
		Where("status = ? AND validated_at >= ? AND validated_at < ?", models.StatusFail, since, until).
		Count(&failures).Error; err != nil {
		return nil, fmt.Errorf("digest: counting failures: %w", err)
	}
	report.Failures = int(failures)

	open, err := session.List(db, true)
	if err != nil {
		return nil, fmt.Errorf("digest: listing open sessions: %w", err)
	}
	for _, s := range open {
		entry := OpenSession{Name: s.Name, Phase: s.CurrentPhase}
		cov, err := session.Phase1Coverage(db, s.ID)
		if err != nil {
			return nil, err
		}
		entry.Validated = cov.Validated
		entry.Total = cov.Total
		report.OpenSessions = append(report.OpenSessions, entry)
	}

	return report, nil
}

// BuildDaily builds a report over the last 24 hours. Returns nil when the
// period saw no activity, so quiet days send nothing.
func BuildDaily(db *gorm.DB) (*Report, error) {
	now := time.Now()
	report, err := Build(db, now.Add(-24*time.Hour), now)
	if err != nil {
		return nil, err
	}
	if report.Empty() {
		return nil, nil
	}
	return report, nil
}

// Format renders a report as a notification message.
func Format(report *Report) notify.Message {
	var bodyLines []string
	bodyLines = append(bodyLines, fmt.Sprintf("**Period**: %s – %s",
		report.PeriodStart.Format("Jan 2 15:04"),
		report.PeriodEnd.Format("Jan 2 15:04")))
	bodyLines = append(bodyLines, fmt.Sprintf("**Sessions**: %d started, %d completed",
		report.SessionsStarted, report.SessionsCompleted))
	bodyLines = append(bodyLines, fmt.Sprintf("**Validations**: %d recorded", report.ValidationsRecorded))
	if report.Failures > 0 {
		bodyLines = append(bodyLines, fmt.Sprintf("**Failures**: %d", report.Failures))
	}

	if len(report.OpenSessions) > 0 {
		bodyLines = append(bodyLines, "")
		bodyLines = append(bodyLines, "**Open Sessions**:")
		for _, s := range report.OpenSessions {
			bodyLines = append(bodyLines, fmt.Sprintf("  %s: phase %d, %d/%d items validated",
				s.Name, s.Phase, s.Validated, s.Total))
		}
	}

	severity := notify.SeverityInfo
	if report.Failures > 0 {
		severity = notify.SeverityError
	}

	return notify.Message{
		Title:    "Daily QA Digest",
		Body:     strings.Join(bodyLines, "\n"),
		Severity: severity,
	}
}
