package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

// The golden snapshot pins the exact shape surfaces consume: ordering,
// masked titles, flags and counters. Regenerate with `go test -update`.
func TestCompute_GoldenSummary(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	dueAt := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	daily := &model.RecurrenceRule{Kind: model.RecurDaily, Interval: 1}

	in := Input{
		DateKey:  "2026-02-03",
		Now:      now,
		Location: time.UTC,
		Policy:   model.TodayOverview(),
		Privacy:  model.PrivacyLevel0,
		Projects: []model.Project{
			{ID: "proj-home", Title: "Home", Status: model.ProjectActive, StartAt: now.AddDate(0, -1, 0)},
		},
		Tasks: []model.Task{
			{
				ID: "task-aa", ProjectID: "proj-home", Title: "Write weekly report",
				Priority: model.P2, Status: model.StatusDoing,
				RecurrenceBehavior: model.BehaviorHabitReset,
				CreatedAt:          now.AddDate(0, 0, -3),
			},
			{
				ID: "task-bb", ProjectID: "proj-home", Title: "Pay rent",
				Priority: model.P1, Status: model.StatusTodo, DueAt: &dueAt,
				RecurrenceBehavior: model.BehaviorHabitReset,
				CreatedAt:          now.AddDate(0, 0, -2),
			},
			{
				ID: "task-cc", ProjectID: "proj-home", Title: "Stretch",
				Priority: model.P4, Status: model.StatusTodo,
				Recurrence: daily, RecurrenceBehavior: model.BehaviorHabitReset,
				CreatedAt: now.AddDate(0, 0, -1),
			},
		},
		TopN: 3,
	}

	got := Compute(in)

	b, err := json.MarshalIndent(got, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "summary", append(b, '\n'))
}
