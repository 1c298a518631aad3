package model

import (
	"errors"
	"fmt"
	"time"
)

type RecurrenceKind string

const (
	RecurDaily   RecurrenceKind = "DAILY"
	RecurWeekly  RecurrenceKind = "WEEKLY"
	RecurMonthly RecurrenceKind = "MONTHLY"
)

// RecurrenceRule describes how a task repeats. Weekdays use ISO-8601
// numbering (1=Monday .. 7=Sunday) and must be non-empty for WEEKLY rules.
type RecurrenceRule struct {
	Kind        RecurrenceKind `json:"kind"`
	Interval    int            `json:"interval"`
	Weekdays    []int          `json:"weekdays,omitempty"`
	MinuteOfDay *int           `json:"minuteOfDay,omitempty"`
	Anchor      time.Time      `json:"anchor"`
}

func (r RecurrenceRule) Validate() error {
	switch r.Kind {
	case RecurDaily, RecurWeekly, RecurMonthly:
	default:
		return fmt.Errorf("unknown recurrence kind %q", r.Kind)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("recurrence interval must be >= 1, got %d", r.Interval)
	}
	if r.Kind == RecurWeekly {
		if len(r.Weekdays) == 0 {
			return errors.New("weekly recurrence requires at least one weekday")
		}
		for _, wd := range r.Weekdays {
			if wd < 1 || wd > 7 {
				return fmt.Errorf("weekday %d out of ISO range 1..7", wd)
			}
		}
	}
	if r.MinuteOfDay != nil && (*r.MinuteOfDay < 0 || *r.MinuteOfDay >= 24*60) {
		return fmt.Errorf("minuteOfDay %d out of range", *r.MinuteOfDay)
	}
	return nil
}
