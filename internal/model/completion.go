package model

import (
	"time"

	"github.com/google/uuid"
)

// CompletionLog records that one occurrence of a task was completed.
// The pair (TaskID, OccurrenceKey) is unique; repositories must treat a
// duplicate insert as an overwrite, never as a second row.
type CompletionLog struct {
	ID            string    `json:"id"`
	TaskID        TaskID    `json:"taskId"`
	CompletedAt   time.Time `json:"completedAt"`
	OccurrenceKey string    `json:"occurrenceKey"`
}

func NewCompletionLog(taskID TaskID, occurrenceKey string, completedAt time.Time) CompletionLog {
	return CompletionLog{
		ID:            uuid.NewString(),
		TaskID:        taskID,
		CompletedAt:   completedAt,
		OccurrenceKey: occurrenceKey,
	}
}
