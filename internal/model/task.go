package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskID string

type ProjectID string

type Priority int

const (
	P1 Priority = 1
	P2 Priority = 2
	P3 Priority = 3
	P4 Priority = 4 // default
)

type TaskStatus string

const (
	StatusTodo  TaskStatus = "TODO"
	StatusDoing TaskStatus = "DOING"
	StatusDone  TaskStatus = "DONE"
)

// RecurrenceBehavior controls what completing an occurrence means for the
// next one: HABIT_RESET tasks come back every calendar day, ROLLOVER tasks
// carry a scheduled next occurrence forward.
type RecurrenceBehavior string

const (
	BehaviorHabitReset RecurrenceBehavior = "HABIT_RESET"
	BehaviorRollover   RecurrenceBehavior = "ROLLOVER"
)

type Task struct {
	ID        TaskID     `json:"id"`
	ProjectID ProjectID  `json:"projectId"`
	Title     string     `json:"title"`
	SectionID *string    `json:"sectionId,omitempty"`
	TagIDs    []string   `json:"tagIds,omitempty"`
	Priority  Priority   `json:"priority"`
	Status    TaskStatus `json:"status"`
	StartAt   *time.Time `json:"startAt,omitempty"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	Note      string     `json:"note,omitempty"`

	Recurrence         *RecurrenceRule    `json:"recurrence,omitempty"`
	RecurrenceBehavior RecurrenceBehavior `json:"recurrenceBehavior,omitempty"`
	// NextOccurrenceDueAt is only meaningful for ROLLOVER behavior.
	NextOccurrenceDueAt *time.Time `json:"nextOccurrenceDueAt,omitempty"`

	BlockedByTaskIDs []TaskID `json:"blockedByTaskIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTask(projectID ProjectID, title string) Task {
	now := time.Now()
	return Task{
		ID:                 TaskID(uuid.NewString()),
		ProjectID:          projectID,
		Title:              title,
		Priority:           P4,
		Status:             StatusTodo,
		RecurrenceBehavior: BehaviorHabitReset,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task title must not be blank")
	}
	if slices.Contains(t.BlockedByTaskIDs, t.ID) {
		return fmt.Errorf("task %s cannot block itself", t.ID)
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Task) IsRecurring() bool {
	return t.Recurrence != nil
}

func (t Task) IsBlocked() bool {
	return len(t.BlockedByTaskIDs) > 0
}

// EffectiveDueAt is the timestamp the task is actually due against: the
// scheduled next occurrence for rollover tasks, the plain due date otherwise.
func (t Task) EffectiveDueAt() *time.Time {
	if t.Recurrence != nil && t.RecurrenceBehavior == BehaviorRollover && t.NextOccurrenceDueAt != nil {
		return t.NextOccurrenceDueAt
	}
	return t.DueAt
}

func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.TagIDs, tag)
}
