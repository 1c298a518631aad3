package task

import (
	"context"
	"errors"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Patch is a partial update. nil pointer => "no change"; for optional
// fields a pointer to the zero value clears.
type Patch struct {
	Title    *string           `json:"title,omitempty"`
	Priority *model.Priority   `json:"priority,omitempty"`
	Status   *model.TaskStatus `json:"status,omitempty"`
	Note     *string           `json:"note,omitempty"`
	DueAt    *time.Time        `json:"dueAt,omitempty"`
	StartAt  *time.Time        `json:"startAt,omitempty"`

	Recurrence          *model.RecurrenceRule     `json:"recurrence,omitempty"`
	RecurrenceBehavior  *model.RecurrenceBehavior `json:"recurrenceBehavior,omitempty"`
	NextOccurrenceDueAt *time.Time                `json:"nextOccurrenceDueAt,omitempty"`

	BlockedByTaskIDs *[]model.TaskID `json:"blockedByTaskIds,omitempty"`
	TagIDs           *[]string       `json:"tagIds,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id model.TaskID) (model.Task, bool, error)
	Update(ctx context.Context, id model.TaskID, p Patch) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Delete(ctx context.Context, id model.TaskID) error
}

func applyPatch(t *model.Task, p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	if p.DueAt != nil {
		if p.DueAt.IsZero() {
			t.DueAt = nil
		} else {
			t.DueAt = p.DueAt
		}
	}
	if p.StartAt != nil {
		if p.StartAt.IsZero() {
			t.StartAt = nil
		} else {
			t.StartAt = p.StartAt
		}
	}
	if p.Recurrence != nil {
		t.Recurrence = p.Recurrence
	}
	if p.RecurrenceBehavior != nil {
		t.RecurrenceBehavior = *p.RecurrenceBehavior
	}
	if p.NextOccurrenceDueAt != nil {
		if p.NextOccurrenceDueAt.IsZero() {
			t.NextOccurrenceDueAt = nil
		} else {
			t.NextOccurrenceDueAt = p.NextOccurrenceDueAt
		}
	}
	if p.BlockedByTaskIDs != nil {
		t.BlockedByTaskIDs = *p.BlockedByTaskIDs
	}
	if p.TagIDs != nil {
		t.TagIDs = *p.TagIDs
	}
}
