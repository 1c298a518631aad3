// Package surface holds the display surfaces that consume computed
// summaries: the in-app today view, home/lock-screen widget, persistent
// notification, quick-settings tile, and voice shortcuts. Each is a thin
// store the refresher publishes into; rendering belongs to the platform.
package surface

import (
	"context"
	"sync"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/engine"
)

const (
	App          = "app"
	Widget       = "widget"
	Notification = "notification"
	Tile         = "tile"
	Voice        = "voice"
)

// defaultTopN per surface: the app view shows a full list, widgets show a
// handful, single-action surfaces only ever need the head.
var defaultTopN = map[string]int{
	App:          10,
	Widget:       3,
	Notification: 1,
	Tile:         1,
	Voice:        1,
}

func DefaultTopN(name string) int {
	if n, ok := defaultTopN[name]; ok {
		return n
	}
	return engine.DefaultTopN
}

func Names() []string {
	return []string{App, Widget, Notification, Tile, Voice}
}

// Store keeps the last published summary for one surface. It satisfies
// refresh.Publisher.
type Store struct {
	name string

	mu        sync.RWMutex
	latest    engine.Summary
	published bool
	updatedAt time.Time
}

func NewStore(name string) *Store {
	return &Store{name: name}
}

func (s *Store) Name() string { return s.name }

func (s *Store) DefaultTopN() int { return DefaultTopN(s.name) }

func (s *Store) Publish(ctx context.Context, sum engine.Summary) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = sum
	s.published = true
	s.updatedAt = time.Now()
	return nil
}

// Latest returns the last published summary, if any. Consumers acting on
// "the next task" must not use this; they re-compute instead (see the
// /api/next handlers).
func (s *Store) Latest() (engine.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.published
}

func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
