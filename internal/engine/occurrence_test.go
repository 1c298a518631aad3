package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

func TestOccurrenceKey_RolloverWithoutSchedule(t *testing.T) {
	task := model.Task{
		ID:                 "t1",
		RecurrenceBehavior: model.BehaviorRollover,
		Recurrence:         &model.RecurrenceRule{Kind: model.RecurDaily, Interval: 1},
	}

	_, ok := OccurrenceKey(task, "2026-02-03", time.UTC)
	assert.False(t, ok, "rollover task with nothing scheduled has no matchable key")

	idx := IndexCompletions(nil)
	assert.False(t, IsCompleted(task, idx, "2026-02-03", time.UTC))
}

func TestOccurrenceKey_RolloverUsesScheduledDate(t *testing.T) {
	next := time.Date(2026, 2, 10, 18, 30, 0, 0, time.UTC)
	task := model.Task{
		ID:                  "t1",
		RecurrenceBehavior:  model.BehaviorRollover,
		Recurrence:          &model.RecurrenceRule{Kind: model.RecurWeekly, Interval: 1, Weekdays: []int{2}},
		NextOccurrenceDueAt: &next,
	}

	key, ok := OccurrenceKey(task, "2026-02-03", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, "2026-02-10", key, "key comes from the scheduled occurrence, not the reference date")
}

func TestIsCompleted_OneOffIsPermanent(t *testing.T) {
	task := model.Task{ID: "t1"}
	logs := []model.CompletionLog{
		{ID: "l1", TaskID: "t1", OccurrenceKey: OnceKey},
	}
	idx := IndexCompletions(logs)

	for _, dateKey := range []string{"2026-02-03", "2026-02-04", "2030-01-01"} {
		assert.True(t, IsCompleted(task, idx, dateKey, time.UTC), "once completed, completed for %s", dateKey)
	}
}

func TestIsCompleted_HabitResetsNextDay(t *testing.T) {
	task := model.Task{
		ID:                 "t1",
		RecurrenceBehavior: model.BehaviorHabitReset,
		Recurrence:         &model.RecurrenceRule{Kind: model.RecurDaily, Interval: 1},
	}
	logs := []model.CompletionLog{
		{ID: "l1", TaskID: "t1", OccurrenceKey: "2026-02-03"},
	}
	idx := IndexCompletions(logs)

	assert.True(t, IsCompleted(task, idx, "2026-02-03", time.UTC))
	assert.False(t, IsCompleted(task, idx, "2026-02-04", time.UTC), "yesterday's log is irrelevant today")
}

func TestDateKeyOf_UsesCallerZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// 23:30 UTC on Feb 3 is already Feb 4 in Tokyo.
	ts := time.Date(2026, 2, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-03", DateKeyOf(ts, time.UTC))
	assert.Equal(t, "2026-02-04", DateKeyOf(ts, tokyo))
}
