package engine

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

func TestMaskTitle_Level0Truncates(t *testing.T) {
	long := "Buy groceries for the whole week ahead" // 38 chars

	got := MaskTitle(long, model.PrivacyLevel0, 1)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxDisplayTitleLen)
	assert.Equal(t, "…", string([]rune(got)[utf8.RuneCountInString(got)-1]))
}

func TestMaskTitle_Level0KeepsShortTitles(t *testing.T) {
	assert.Equal(t, "Water the plants", MaskTitle("Water the plants", model.PrivacyLevel0, 1))
}

func TestMaskTitle_Level1UsesPositionPlaceholder(t *testing.T) {
	assert.Equal(t, "Task 2", MaskTitle("Call the dentist", model.PrivacyLevel1, 2))
	assert.Equal(t, "Task 1", MaskTitle("anything at all", model.PrivacyLevel1, 1))
}

func TestMaskName_Level1MasksTail(t *testing.T) {
	assert.Equal(t, "Gro***", MaskName("Groceries", model.PrivacyLevel1))
	// Three characters or fewer are too short to meaningfully redact.
	assert.Equal(t, "Gym", MaskName("Gym", model.PrivacyLevel1))
	assert.Equal(t, "ok", MaskName("ok", model.PrivacyLevel1))
}

func TestMaskTitle_Level2ReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", MaskTitle("Top secret errand", model.PrivacyLevel2, 1))
	assert.Equal(t, "", MaskName("Top secret errand", model.PrivacyLevel2))
}

func TestMaskTitle_IsRepeatable(t *testing.T) {
	for _, mode := range []model.PrivacyMode{model.PrivacyLevel0, model.PrivacyLevel1, model.PrivacyLevel2} {
		a := MaskTitle("Renew passport before June", mode, 3)
		b := MaskTitle("Renew passport before June", mode, 3)
		assert.Equal(t, a, b, "mode %s must be a pure function", mode)
	}
}
