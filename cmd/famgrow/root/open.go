package root

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/config"
	"github.com/ptomo194059/family-growth/internal/engine"
	"github.com/ptomo194059/family-growth/internal/storage"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	return cfg, nil
}

func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}
	store, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	svc, err := engine.NewService(ctx, store)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	// Catch up a pending day or week rollover before any command runs.
	if err := svc.EnsureResets(ctx); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("rollover check: %w", err)
	}
	return svc, cfg, cleanup, nil
}

// targetChild resolves the --child flag, defaulting to the active child.
func targetChild(svc *engine.Service, flag string) string {
	if flag != "" {
		return flag
	}
	return svc.ActiveChildID()
}
