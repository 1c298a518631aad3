package telemetry

import "time"

type EventType string

const (
	EventTaskCreated    EventType = "task_created"
	EventTaskCompleted  EventType = "task_completed"
	EventTaskStarted    EventType = "task_started"
	EventNextActioned   EventType = "next_actioned"
	EventRefreshRun     EventType = "refresh_run"
	EventSettingsChange EventType = "settings_changed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]any
