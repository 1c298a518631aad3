// Package serverapp wires the planner's repositories, settings, refresh
// shell and HTTP surface into one http.Handler.
package serverapp

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/completion"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/httpmw"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/project"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/refresh"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/settings"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/surface"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/task"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/telemetry"
)

type Options struct {
	DataDir       string
	SettingsPath  string
	Logger        *log.Logger
	Clock         refresh.Clock
	WatchSettings bool
}

// App owns everything a running server needs. Close releases the
// settings watcher.
type App struct {
	Handler   http.Handler
	Refresher *refresh.Refresher
	Settings  *settings.Watcher

	watchCancel context.CancelFunc
}

func New(opts Options) (*App, error) {
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if strings.TrimSpace(opts.SettingsPath) == "" {
		opts.SettingsPath = filepath.Join(opts.DataDir, "settings.yaml")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = refresh.RealClock{}
	}

	taskRepo, err := task.NewFileRepo(opts.DataDir)
	if err != nil {
		return nil, err
	}
	projectRepo, err := project.NewFileRepo(opts.DataDir)
	if err != nil {
		return nil, err
	}
	logRepo, err := completion.NewFileRepo(opts.DataDir)
	if err != nil {
		return nil, err
	}

	watcher, err := settings.NewWatcher(opts.SettingsPath, opts.Logger)
	if err != nil {
		return nil, err
	}

	refresher := refresh.NewRefresher(taskRepo, projectRepo, logRepo, watcher, opts.Clock, opts.Logger)
	var stores []*surface.Store
	for _, name := range surface.Names() {
		s := surface.NewStore(name)
		stores = append(stores, s)
		refresher.Register(s)
	}

	loc := time.Local
	if l, err := watcher.Current().Location(); err == nil {
		loc = l
	}
	service := task.NewService(taskRepo, logRepo, loc)
	events := telemetry.NewMemoryRepository()
	watcher.OnChange(func(settings.Settings) {
		_ = events.RecordEvent(telemetry.EventSettingsChange, nil)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true,"service":"liveplan"}` + "\n"))
	})

	h := surface.NewHandler(refresher, service, taskRepo, projectRepo, events, opts.Clock, stores, opts.Logger)
	h.RegisterRoutes(mux)

	app := &App{
		Handler: httpmw.Chain(mux,
			httpmw.WithRequestID,
			httpmw.WithRecover(opts.Logger),
			httpmw.WithAccessLog(opts.Logger),
		),
		Refresher: refresher,
		Settings:  watcher,
	}

	if opts.WatchSettings {
		ctx, cancel := context.WithCancel(context.Background())
		app.watchCancel = cancel
		go watcher.Run(ctx)
	}

	return app, nil
}

func (a *App) Close() error {
	if a.watchCancel != nil {
		a.watchCancel()
	}
	return a.Settings.Close()
}
