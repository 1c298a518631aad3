package model

import "fmt"

type PolicyKind string

const (
	PolicyPinnedFirst   PolicyKind = "pinnedFirst"
	PolicyTodayOverview PolicyKind = "todayOverview"
)

// SelectionPolicy picks the scope the selection engine works over.
// PinnedFirst narrows to a single pinned project when it is still active;
// TodayOverview spans every active project.
type SelectionPolicy struct {
	Kind            PolicyKind `json:"kind"`
	PinnedProjectID *ProjectID `json:"pinnedProjectId,omitempty"`
}

func PinnedFirst(id *ProjectID) SelectionPolicy {
	return SelectionPolicy{Kind: PolicyPinnedFirst, PinnedProjectID: id}
}

func TodayOverview() SelectionPolicy {
	return SelectionPolicy{Kind: PolicyTodayOverview}
}

func (p SelectionPolicy) Validate() error {
	switch p.Kind {
	case PolicyPinnedFirst, PolicyTodayOverview:
		return nil
	default:
		return fmt.Errorf("unknown selection policy %q", p.Kind)
	}
}

// PrivacyMode controls how much of a task title leaks to a shared display.
type PrivacyMode string

const (
	PrivacyLevel0 PrivacyMode = "LEVEL_0" // full title, length-capped
	PrivacyLevel1 PrivacyMode = "LEVEL_1" // masked placeholder
	PrivacyLevel2 PrivacyMode = "LEVEL_2" // counts only
)

func (m PrivacyMode) Validate() error {
	switch m {
	case PrivacyLevel0, PrivacyLevel1, PrivacyLevel2:
		return nil
	default:
		return fmt.Errorf("unknown privacy mode %q", m)
	}
}
