package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period           string            `json:"period"`
	EventCounts      map[EventType]int `json:"event_counts"`
	TaskCompletions  int               `json:"task_completions"`
	TasksStarted     int               `json:"tasks_started"`
	NextActions      int               `json:"next_actions"`
	RefreshRuns      int               `json:"refresh_runs"`
	ActionsBySurface map[string]int    `json:"actions_by_surface"`
}

// CalculateStats aggregates usage stats from recorded events.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:           since.Format("2006-01-02"),
		EventCounts:      make(map[EventType]int),
		ActionsBySurface: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventTaskCompleted:
			stats.TaskCompletions++
		case EventTaskStarted:
			stats.TasksStarted++
		case EventNextActioned:
			stats.NextActions++
			if surface, ok := metadata["surface"].(string); ok {
				stats.ActionsBySurface[surface]++
			}
		case EventRefreshRun:
			stats.RefreshRuns++
		}
	}
	return stats, nil
}
