package engine

import (
	"fmt"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

const (
	// MaxDisplayTitleLen caps titles on space-constrained surfaces,
	// ellipsis included.
	MaxDisplayTitleLen = 24

	ellipsis       = "…"
	maskSuffix     = "***"
	minMaskableLen = 4
)

// MaskTitle applies a privacy mode to a task title. index is the 1-based
// display position; pass 0 for name-only contexts (e.g. project names)
// where no position exists. Pure: same inputs, same output, always.
func MaskTitle(s string, mode model.PrivacyMode, index int) string {
	switch mode {
	case model.PrivacyLevel1:
		if index > 0 {
			return fmt.Sprintf("Task %d", index)
		}
		r := []rune(s)
		if len(r) < minMaskableLen {
			// Too short to meaningfully redact.
			return s
		}
		return string(r[:3]) + maskSuffix
	case model.PrivacyLevel2:
		return ""
	default:
		return truncate(s, MaxDisplayTitleLen)
	}
}

// MaskName redacts a standalone name with no display position.
func MaskName(s string, mode model.PrivacyMode) string {
	return MaskTitle(s, mode, 0)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + ellipsis
}
