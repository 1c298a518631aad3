package task

import (
	"context"
	"fmt"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/completion"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/engine"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

// Service owns the write side of completing and starting tasks. The
// selection engine only ever reads; everything that mutates state on a
// completion (the log row, rollover advancement, one-off status) funnels
// through here.
type Service struct {
	tasks Repository
	logs  completion.Repository
	loc   *time.Location
}

func NewService(tasks Repository, logs completion.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{tasks: tasks, logs: logs, loc: loc}
}

// Complete marks the task's current occurrence done as of now. For
// rollover tasks the next occurrence is scheduled from the one just
// completed; for one-offs the workflow state flips to DONE for good.
// Completing an already-completed occurrence is a no-op at the log level.
func (s *Service) Complete(ctx context.Context, id model.TaskID, now time.Time) (model.CompletionLog, error) {
	t, ok, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.CompletionLog{}, err
	}
	if !ok {
		return model.CompletionLog{}, ErrNotFound
	}

	dateKey := engine.DateKeyOf(now, s.loc)
	key, keyable := engine.OccurrenceKey(t, dateKey, s.loc)
	if !keyable {
		return model.CompletionLog{}, fmt.Errorf("task %s has no scheduled occurrence to complete", id)
	}

	log, err := s.logs.Upsert(ctx, model.NewCompletionLog(t.ID, key, now))
	if err != nil {
		return model.CompletionLog{}, err
	}

	patch := Patch{}
	switch {
	case t.Recurrence != nil && t.RecurrenceBehavior == model.BehaviorRollover:
		cur := now
		if t.NextOccurrenceDueAt != nil {
			cur = *t.NextOccurrenceDueAt
		}
		next := engine.NextOccurrence(*t.Recurrence, cur, s.loc)
		patch.NextOccurrenceDueAt = &next
		status := model.StatusTodo
		patch.Status = &status
	case t.Recurrence != nil:
		// Habit reset: nothing to advance, the date key does the work.
		status := model.StatusTodo
		patch.Status = &status
	default:
		status := model.StatusDone
		patch.Status = &status
	}

	if _, err := s.tasks.Update(ctx, id, patch); err != nil {
		return model.CompletionLog{}, err
	}
	return log, nil
}

// Start moves a task into DOING.
func (s *Service) Start(ctx context.Context, id model.TaskID) (model.Task, error) {
	status := model.StatusDoing
	return s.tasks.Update(ctx, id, Patch{Status: &status})
}
