// Package settings holds the user-tunable knobs the selection engine
// consumes: which project is pinned, how titles are redacted, and how many
// rows each display surface shows.
package settings

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type Settings struct {
	Policy   PolicyConfig      `yaml:"policy"`
	Privacy  model.PrivacyMode `yaml:"privacy"`
	TimeZone string            `yaml:"time_zone"`
	Surfaces map[string]int    `yaml:"surfaces,omitempty"` // per-surface topN overrides
}

type PolicyConfig struct {
	Kind            model.PolicyKind `yaml:"kind"`
	PinnedProjectID string           `yaml:"pinned_project_id,omitempty"`
}

func Default() Settings {
	return Settings{
		Policy:   PolicyConfig{Kind: model.PolicyTodayOverview},
		Privacy:  model.PrivacyLevel0,
		TimeZone: "Local",
	}
}

// Load reads settings from a YAML file. A missing file yields defaults; a
// malformed or invalid file returns defaults alongside the error so the
// caller can keep running.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}

	s := Default()
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Default(), fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Default(), err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if err := s.Privacy.Validate(); err != nil {
		return err
	}
	switch s.Policy.Kind {
	case model.PolicyPinnedFirst, model.PolicyTodayOverview:
	default:
		return fmt.Errorf("unknown policy kind %q", s.Policy.Kind)
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	for name, n := range s.Surfaces {
		if n < 1 {
			return fmt.Errorf("surface %q topN must be >= 1, got %d", name, n)
		}
	}
	return nil
}

// SelectionPolicy converts the stored form into the engine's policy value.
func (s Settings) SelectionPolicy() model.SelectionPolicy {
	if s.Policy.Kind == model.PolicyPinnedFirst {
		if s.Policy.PinnedProjectID == "" {
			return model.PinnedFirst(nil)
		}
		id := model.ProjectID(s.Policy.PinnedProjectID)
		return model.PinnedFirst(&id)
	}
	return model.TodayOverview()
}

func (s Settings) Location() (*time.Location, error) {
	if s.TimeZone == "" || s.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(s.TimeZone)
}

// TopNFor returns the configured row count for a surface, falling back to
// the surface's own default.
func (s Settings) TopNFor(surface string, def int) int {
	if n, ok := s.Surfaces[surface]; ok {
		return n
	}
	return def
}

// Save writes settings back as YAML.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
