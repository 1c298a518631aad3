package engine

import (
	"sort"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

const (
	// DefaultTopN fits widget-sized surfaces; single-action surfaces
	// (voice, notification) pass 1, the in-app view passes more.
	DefaultTopN = 3

	dueSoonWindow = 24 * time.Hour
)

type candidate struct {
	task  model.Task
	group PriorityGroup
	due   *time.Time
}

// Compute filters, classifies, sorts and summarizes the outstanding tasks
// of a snapshot into the payload every display surface consumes. It is
// pure: identical inputs (including Now) return structurally equal
// summaries.
func Compute(in Input) Summary {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	topN := in.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	projects := make(map[model.ProjectID]model.Project, len(in.Projects))
	for _, p := range in.Projects {
		projects[p.ID] = p
	}

	inScope, fallback := resolveScope(in, projects)
	idx := IndexCompletions(in.Logs)

	var cands []candidate
	for _, t := range inScope {
		if t.IsBlocked() {
			// A blocked task cannot be actioned, so it is excluded
			// outright rather than deprioritized.
			continue
		}
		if IsCompleted(t, idx, in.DateKey, loc) {
			continue
		}
		due := t.EffectiveDueAt()
		cands = append(cands, candidate{
			task:  t,
			group: classify(t, due, in.Now),
			due:   due,
		})
	}

	sortCandidates(cands)

	counters := countCandidates(cands)
	countInScope(&counters, inScope, idx, in.DateKey)

	if len(cands) == 0 && fallback == "" {
		fallback = FallbackAllCompleted
	}

	n := topN
	if n > len(cands) {
		n = len(cands)
	}
	display := make([]DisplayTask, 0, n)
	for i, c := range cands[:n] {
		display = append(display, DisplayTask{
			ID:        c.task.ID,
			Title:     MaskTitle(c.task.Title, in.Privacy, i+1),
			Group:     c.group,
			Overdue:   c.group == GroupOverdue,
			DueSoon:   c.group == GroupDueSoon,
			Recurring: c.task.IsRecurring(),
			Doing:     c.task.Status == model.StatusDoing,
		})
	}

	return Summary{
		DisplayList:    display,
		Counters:       counters,
		FallbackReason: fallback,
	}
}

// resolveScope narrows the task list per the selection policy. Fallback
// never narrows to empty: a missing, archived or completed pinned project
// widens back out to every active-project task and reports why.
func resolveScope(in Input, projects map[model.ProjectID]model.Project) ([]model.Task, FallbackReason) {
	activeOnly := func() []model.Task {
		var out []model.Task
		for _, t := range in.Tasks {
			if p, ok := projects[t.ProjectID]; ok && p.Status == model.ProjectActive {
				out = append(out, t)
			}
		}
		return out
	}

	if in.Policy.Kind != model.PolicyPinnedFirst {
		return activeOnly(), ""
	}

	id := in.Policy.PinnedProjectID
	if id == nil {
		return activeOnly(), FallbackNoPinnedProject
	}
	pinned, ok := projects[*id]
	if !ok {
		return activeOnly(), FallbackNoPinnedProject
	}
	switch pinned.Status {
	case model.ProjectArchived:
		return activeOnly(), FallbackPinnedProjectArchived
	case model.ProjectCompleted:
		return activeOnly(), FallbackPinnedProjectCompleted
	}

	var out []model.Task
	for _, t := range in.Tasks {
		if t.ProjectID == pinned.ID {
			out = append(out, t)
		}
	}
	return out, ""
}

// classify assigns the first matching priority group, in fixed precedence.
func classify(t model.Task, due *time.Time, now time.Time) PriorityGroup {
	switch {
	case t.Status == model.StatusDoing:
		return GroupDoing
	case due != nil && due.Before(now):
		return GroupOverdue
	case due != nil && due.After(now) && !due.After(now.Add(dueSoonWindow)):
		return GroupDueSoon
	case t.Priority == model.P1:
		return GroupCritical
	case t.Recurrence != nil && t.RecurrenceBehavior == model.BehaviorHabitReset:
		return GroupHabit
	default:
		return GroupBacklog
	}
}

// sortCandidates orders by group, then effective due date (undated last),
// then priority, then creation time, then id. The id tiebreak makes the
// order fully deterministic since ids are unique.
func sortCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.group != b.group {
			return a.group < b.group
		}
		if c := compareDue(a.due, b.due); c != 0 {
			return c < 0
		}
		if a.task.Priority != b.task.Priority {
			return a.task.Priority < b.task.Priority
		}
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.Before(b.task.CreatedAt)
		}
		return a.task.ID < b.task.ID
	})
}

func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	default:
		return 0
	}
}

func countCandidates(cands []candidate) Counters {
	var c Counters
	c.OutstandingTotal = len(cands)
	for _, cand := range cands {
		if cand.group == GroupOverdue {
			c.OverdueCount++
		}
		if cand.group == GroupDueSoon {
			c.DueSoonCount++
		}
		if cand.task.Priority == model.P1 {
			c.P1Count++
		}
		if cand.task.Status == model.StatusDoing {
			c.DoingCount++
		}
	}
	return c
}

// countInScope fills the counters that range over the whole in-scope set,
// not just candidates. recurringDone is date-scoped for every recurring
// task: a rollover task only counts when a log keyed by today exists.
func countInScope(c *Counters, inScope []model.Task, idx CompletionIndex, dateKey string) {
	for _, t := range inScope {
		if t.IsBlocked() {
			c.BlockedCount++
		}
		if t.IsRecurring() {
			c.RecurringTotal++
			if idx.Has(t.ID, dateKey) {
				c.RecurringDone++
			}
		}
	}
}
