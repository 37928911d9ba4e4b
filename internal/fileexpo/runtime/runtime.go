// Package runtime wires the fileexpo services: tag store, usage analytics,
// health ledger, summarizer, and logging. The CLI and TUI both run on top of
// a Runtime so behavior stays identical across surfaces.
package runtime

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/parvatisuthar/fileexpo/analytics"
	"github.com/parvatisuthar/fileexpo/health"
	"github.com/parvatisuthar/fileexpo/logging"
	"github.com/parvatisuthar/fileexpo/summarize"
	"github.com/parvatisuthar/fileexpo/tagging"
)

// Runtime owns every long-lived service handle.
type Runtime struct {
	Config    Config
	Workspace WorkspaceConfig
	Logger    *zap.Logger

	Tags       *tagging.Store
	Usage      *analytics.Store
	Health     *health.Monitor
	Summarizer *summarize.Dispatcher

	db *sql.DB
}

// New builds a runtime from cfg. A corrupt tag store fails fast; callers
// surface the reset path (`fileexpo tag reset`) to the user.
func New(cfg Config) (*Runtime, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	ws, err := LoadWorkspaceConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load workspace config: %w", err)
	}
	cfg.Apply(ws)

	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tags, err := tagging.Open(cfg.TagsPath)
	if err != nil {
		var corrupt *tagging.CorruptStoreError
		if errors.As(err, &corrupt) {
			logger.Error("tag store corrupt", zap.String("path", corrupt.Path), zap.Error(corrupt.Err))
		}
		return nil, err
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	usage, err := analytics.NewStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init usage store: %w", err)
	}
	monitor, err := health.NewMonitor(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init health ledger: %w", err)
	}

	model := summarize.NewOllamaClient(cfg.OllamaEndpoint, cfg.OllamaModel)
	dispatcher := summarize.NewDispatcher(model, logger,
		summarize.WithMaxWords(cfg.SummaryWords),
		summarize.WithCacheTTL(cfg.SummaryTTL),
	)

	logger.Info("runtime ready",
		zap.String("start_dir", cfg.StartDir),
		zap.String("data_dir", cfg.DataDir),
		zap.String("model", cfg.OllamaModel))

	return &Runtime{
		Config:     cfg,
		Workspace:  ws,
		Logger:     logger,
		Tags:       tags,
		Usage:      usage,
		Health:     monitor,
		Summarizer: dispatcher,
		db:         db,
	}, nil
}

// SaveWorkspace persists the current workspace selections.
func (r *Runtime) SaveWorkspace() error {
	return SaveWorkspaceConfig(r.Config.ConfigPath, r.Workspace)
}

// RecordAccess notes a file access, logging rather than failing the caller
// on storage errors.
func (r *Runtime) RecordAccess(path string) {
	if err := r.Usage.RecordAccess(path); err != nil {
		r.Logger.Warn("record access", zap.String("path", path), zap.Error(err))
	}
}

// Close releases the database and flushes the logger.
func (r *Runtime) Close() error {
	var firstErr error
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			firstErr = err
		}
	}
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}
	return firstErr
}
