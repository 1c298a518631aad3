package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/serverapp"
)

func main() {
	addr := flag.String("addr", ":8473", "listen address")
	dataDir := flag.String("data-dir", "data", "path to data directory")
	settingsPath := flag.String("settings", "", "path to settings.yaml (default <data-dir>/settings.yaml)")
	refreshEvery := flag.Duration("refresh-every", 15*time.Minute, "interval between background surface refreshes (0 disables)")
	flag.Parse()

	logger := log.Default()

	app, err := serverapp.New(serverapp.Options{
		DataDir:       *dataDir,
		SettingsPath:  *settingsPath,
		Logger:        logger,
		WatchSettings: true,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *refreshEvery > 0 {
		go func() {
			ticker := time.NewTicker(*refreshEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := app.Refresher.RefreshAll(ctx); err != nil {
						logger.Printf("background refresh failed: %v", err)
					}
				}
			}
		}()
	}

	srv := &http.Server{Addr: *addr, Handler: app.Handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("liveplan listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("serve: %v", err)
	}
}
