package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/profile-pdf/internal/config"
	"github.com/jonathan/profile-pdf/internal/db"
	"github.com/jonathan/profile-pdf/internal/draft"
	"github.com/jonathan/profile-pdf/internal/logging"
	"github.com/jonathan/profile-pdf/internal/rendering"
	"github.com/jonathan/profile-pdf/internal/session"
)

// app bundles what the draft, render and serve commands share.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    draft.Store
	renderer rendering.PDFRenderer
	closers  []func()
}

// newApp loads the configuration and opens the configured draft store.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store

	a.renderer = rendererFactory(cfg)
	return a, nil
}

// rendererFactory builds the PDF renderer; tests replace it.
var rendererFactory = newRenderer

func newRenderer(cfg *config.Config) rendering.PDFRenderer {
	r := rendering.NewChromeRenderer(cfg.RenderTimeout())
	r.ExecPath = cfg.ChromePath
	return r
}

func (a *app) openStore(ctx context.Context) (draft.Store, error) {
	switch a.cfg.DraftBackend {
	case config.BackendFile:
		return draft.NewFileStore(a.cfg.DraftPath), nil

	case config.BackendMemory:
		return draft.NewMemoryStore(), nil

	case config.BackendRedis:
		client, err := draft.NewRedisClient(ctx, draft.RedisOptions{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return draft.NewRedisStore(client, a.cfg.DraftKey), nil

	case config.BackendPostgres:
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		if err := database.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return draft.NewDBStore(database, a.cfg.DraftKey), nil

	default:
		return nil, fmt.Errorf("unknown draft backend %q", a.cfg.DraftBackend)
	}
}

// session loads the stored draft into a new editing session.
func (a *app) session(ctx context.Context) (*session.Session, error) {
	sess, err := session.New(ctx, a.store, a.renderer, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return sess, nil
}

// Close releases store connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(in io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, creating the parent directory.
func writeOutput(path string, data []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
