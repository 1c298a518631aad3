package engine

import (
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

// NextOccurrence advances a recurrence rule from the occurrence that just
// completed to the next one. Pure and total over valid rules; loc is the
// zone calendar arithmetic happens in, which keeps dates correct across
// DST transitions (AddDate moves by calendar days, not fixed hours).
func NextOccurrence(rule model.RecurrenceRule, cur time.Time, loc *time.Location) time.Time {
	cur = cur.In(loc)

	var next time.Time
	switch rule.Kind {
	case model.RecurDaily:
		next = cur.AddDate(0, 0, rule.Interval)
	case model.RecurWeekly:
		next = nextWeekly(rule, cur)
	case model.RecurMonthly:
		next = addMonthsClamped(cur, rule.Interval)
	default:
		// Unknown kinds are rejected at construction; advancing by the
		// interval in days keeps this total anyway.
		next = cur.AddDate(0, 0, rule.Interval)
	}

	if rule.MinuteOfDay != nil {
		m := *rule.MinuteOfDay
		next = time.Date(next.Year(), next.Month(), next.Day(), m/60, m%60, 0, 0, loc)
	}
	return next
}

// nextWeekly scans forward from the day after cur for the next configured
// weekday. When the scan wraps past Sunday into the following ISO week and
// the rule skips weeks, the skipped weeks are added on top of the found date.
func nextWeekly(rule model.RecurrenceRule, cur time.Time) time.Time {
	set := make(map[int]bool, len(rule.Weekdays))
	for _, wd := range rule.Weekdays {
		set[wd] = true
	}

	crossed := false
	for i := 1; i <= 7; i++ {
		d := cur.AddDate(0, 0, i)
		if isoWeekday(d) == 1 {
			crossed = true
		}
		if set[isoWeekday(d)] {
			if crossed && rule.Interval > 1 {
				d = d.AddDate(0, 0, 7*(rule.Interval-1))
			}
			return d
		}
	}

	// Unreachable with a non-empty weekday set; advance whole intervals
	// and clamp to the first configured weekday.
	first := 7
	for wd := range set {
		if wd < first {
			first = wd
		}
	}
	d := cur.AddDate(0, 0, 7*rule.Interval)
	return d.AddDate(0, 0, first-isoWeekday(d))
}

// addMonthsClamped preserves day-of-month, clamping into short target
// months (Jan 31 + 1 month = Feb 28/29). The clamp does not accumulate:
// each step re-reads the current occurrence's day-of-month.
func addMonthsClamped(cur time.Time, months int) time.Time {
	y, m, d := cur.Date()
	hh, mm, ss := cur.Clock()

	target := time.Date(y, m+time.Month(months), 1, hh, mm, ss, cur.Nanosecond(), cur.Location())
	if last := daysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, cur.Nanosecond(), cur.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isoWeekday maps Go's Sunday-first weekday to ISO-8601 (1=Mon..7=Sun).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
