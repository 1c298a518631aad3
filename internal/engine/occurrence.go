package engine

import (
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

// OnceKey marks a one-off task's single permanent completion. It never
// changes for the life of the task, so completing a one-off is a one-way
// transition.
const OnceKey = "once"

const dateKeyLayout = "2006-01-02"

// DateKeyOf renders the calendar date of t in loc as YYYY-MM-DD. Callers
// must use the same zone for display and persistence or keys drift across
// midnight boundaries.
func DateKeyOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// OccurrenceKey derives the completion-log key that would mark the task
// done for the given reference date key. ok=false means no log can match:
// a rollover task with nothing scheduled is simply not completed.
//
// Rollover is checked before the one-off/habit split on purpose: a task
// carrying both a recurrence rule and ROLLOVER behavior does not use the
// date-key scheme at all.
func OccurrenceKey(t model.Task, dateKey string, loc *time.Location) (string, bool) {
	if t.RecurrenceBehavior == model.BehaviorRollover {
		if t.NextOccurrenceDueAt == nil {
			return "", false
		}
		return DateKeyOf(*t.NextOccurrenceDueAt, loc), true
	}
	if t.Recurrence == nil {
		return OnceKey, true
	}
	// Habit reset: the key is bound to the reference date, so the task
	// reappears as incomplete the next calendar day no matter what was
	// logged on earlier dates.
	return dateKey, true
}

// CompletionIndex answers "does a log exist for (task, key)" in O(1).
type CompletionIndex map[model.TaskID]map[string]struct{}

func IndexCompletions(logs []model.CompletionLog) CompletionIndex {
	idx := make(CompletionIndex, len(logs))
	for _, l := range logs {
		keys := idx[l.TaskID]
		if keys == nil {
			keys = make(map[string]struct{})
			idx[l.TaskID] = keys
		}
		keys[l.OccurrenceKey] = struct{}{}
	}
	return idx
}

func (idx CompletionIndex) Has(id model.TaskID, key string) bool {
	_, ok := idx[id][key]
	return ok
}

// IsCompleted reports whether the task counts as done for the reference
// date key. Absent data yields false, never an error.
func IsCompleted(t model.Task, idx CompletionIndex, dateKey string, loc *time.Location) bool {
	key, ok := OccurrenceKey(t, dateKey, loc)
	if !ok {
		return false
	}
	return idx.Has(t.ID, key)
}
