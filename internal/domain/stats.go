package domain

import (
	"math"
	"time"
)

// DashboardStats is recomputed on every request from the scoped record set.
type DashboardStats struct {
	Totals            StatsTotals
	Conformity        []ConformityCount
	Domains           []DomainCoverage
	UpcomingDeadlines []AuditListItem
}

// StatsTotals holds the headline numbers of the dashboard.
type StatsTotals struct {
	RegulationCount int
	AuditedCount    int
	AuditRate       int // percent, 0..100
}

// ConformityCount is one bucket of the conformity breakdown.
type ConformityCount struct {
	Status Conformity
	Count  int
}

// DomainCoverage compares audited and total regulations of one domain.
type DomainCoverage struct {
	Domain       string
	TotalCount   int
	AuditedCount int
}

// AuditRate returns round(audited/total*100), or 0 for an empty catalog.
func AuditRate(audited, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(audited) / float64(total) * 100))
}

// PendingCount is the number of regulations without a conformity status.
func PendingCount(audited, total int) int {
	if audited >= total {
		return 0
	}
	return total - audited
}

// DeadlineWindow is an inclusive range of calendar dates.
type DeadlineWindow struct {
	From time.Time
	To   time.Time
}

// NewDeadlineWindow returns [today, today+days] where today is the calendar
// date of now in loc.
func NewDeadlineWindow(now time.Time, loc *time.Location, days int) DeadlineWindow {
	today := DateOf(now, loc)
	return DeadlineWindow{From: today, To: today.AddDate(0, 0, days)}
}

// Contains reports whether the calendar date of d falls inside the window.
func (w DeadlineWindow) Contains(d time.Time) bool {
	date := DateOf(d, time.UTC)
	return !date.Before(w.From) && !date.After(w.To)
}
