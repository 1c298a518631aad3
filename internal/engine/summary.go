package engine

import (
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

// Input is the full snapshot Compute works over. Now, DateKey and Location
// are supplied by the caller, never read from a system clock, so the same
// input always produces the same Summary.
type Input struct {
	DateKey  string
	Now      time.Time
	Location *time.Location

	Policy  model.SelectionPolicy
	Privacy model.PrivacyMode

	Projects []model.Project
	Tasks    []model.Task
	Logs     []model.CompletionLog

	TopN int
}

// PriorityGroup orders candidates on a space-constrained display. Lower
// wins.
type PriorityGroup int

const (
	GroupDoing    PriorityGroup = 1 // in progress
	GroupOverdue  PriorityGroup = 2 // effective due date in the past
	GroupDueSoon  PriorityGroup = 3 // due within the next 24h
	GroupCritical PriorityGroup = 4 // priority P1
	GroupHabit    PriorityGroup = 5 // habit-reset recurring, still open today
	GroupBacklog  PriorityGroup = 6 // everything else outstanding
)

type FallbackReason string

const (
	FallbackNoPinnedProject        FallbackReason = "noPinnedProject"
	FallbackPinnedProjectArchived  FallbackReason = "pinnedProjectArchived"
	FallbackPinnedProjectCompleted FallbackReason = "pinnedProjectCompleted"
	FallbackAllCompleted           FallbackReason = "allCompleted"
)

// DisplayTask is one redacted row of the summary. Title already has the
// privacy mode applied.
type DisplayTask struct {
	ID        model.TaskID  `json:"id"`
	Title     string        `json:"title"`
	Group     PriorityGroup `json:"group"`
	Overdue   bool          `json:"overdue"`
	DueSoon   bool          `json:"dueSoon"`
	Recurring bool          `json:"recurring"`
	Doing     bool          `json:"doing"`
}

type Counters struct {
	OutstandingTotal int `json:"outstandingTotal"`
	OverdueCount     int `json:"overdueCount"`
	DueSoonCount     int `json:"dueSoonCount"`
	RecurringDone    int `json:"recurringDone"`
	RecurringTotal   int `json:"recurringTotal"`
	P1Count          int `json:"p1Count"`
	DoingCount       int `json:"doingCount"`
	BlockedCount     int `json:"blockedCount"`
}

// Summary is a fresh value on every Compute call, owned solely by the
// caller. Nothing is cached across calls.
type Summary struct {
	DisplayList    []DisplayTask  `json:"displayList"`
	Counters       Counters       `json:"counters"`
	FallbackReason FallbackReason `json:"fallbackReason,omitempty"`
}
