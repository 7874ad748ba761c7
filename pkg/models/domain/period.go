package domain

import "time"

// Anchor selects which day the weekly reporting window ends on. The two
// values encode the two period rules that have been in production use; the
// active one is picked once from configuration.
type Anchor string

const (
	// AnchorYesterday reports on the seven full days ending yesterday.
	AnchorYesterday Anchor = "yesterday"
	// AnchorToday reports on the seven days ending today.
	AnchorToday Anchor = "today"
)

// ReportPeriod is the reporting window for one run. It is derived once and
// passed by value into every query builder so all sections share the exact
// same bounds.
type ReportPeriod struct {
	StartDate      time.Time
	EndDate        time.Time
	StartTimestamp int64
	EndTimestamp   int64
}

// NewWeeklyPeriod derives the weekly window from the current time. Both
// timestamps are midnight-aligned epoch seconds; the end timestamp stops one
// second short of the midnight after EndDate so the window never bleeds into
// the following day.
func NewWeeklyPeriod(now time.Time, anchor Anchor) ReportPeriod {
	end := now
	days := 6
	if anchor == AnchorToday {
		days = 7
	} else {
		end = now.AddDate(0, 0, -1)
	}

	endDate := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	startDate := endDate.AddDate(0, 0, -days)

	return ReportPeriod{
		StartDate:      startDate,
		EndDate:        endDate,
		StartTimestamp: startDate.Unix(),
		EndTimestamp:   endDate.AddDate(0, 0, 1).Unix() - 1,
	}
}

// Days returns the window length in calendar days, inclusive.
func (p ReportPeriod) Days() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}
