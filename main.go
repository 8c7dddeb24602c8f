package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"lessonforge/internal/config"
	"lessonforge/internal/diff"
	mcpserver "lessonforge/internal/mcp"
	"lessonforge/internal/service"
	"lessonforge/internal/storage"
	"lessonforge/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init(false)
		logger.Sugar.Fatalw("load config", "error", err)
	}
	logger.Init(cfg.Debug)
	defer logger.Sync()

	if err := config.Validate(cfg); err != nil {
		logger.Sugar.Fatalw("invalid config", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := storage.New(cfg.DBPath, filepath.Join(cfg.DataDir, "documents"))
	if err != nil {
		logger.Sugar.Fatalw("open database", "error", err)
	}
	defer db.Close()

	emitter := service.NoopEmitter{}
	docs, err := service.LoadFromStore(
		storage.NewDocumentStore(db),
		storage.NewDiffStore(db),
		storage.NewVersionStore(db),
		emitter,
		service.Language(cfg.Language),
	)
	if err != nil {
		logger.Sugar.Fatalw("load documents", "error", err)
	}

	if cfg.Autosave.Enabled {
		autosave, err := service.NewAutosave(docs, cfg.Autosave.Schedule)
		if err != nil {
			logger.Sugar.Fatalw("configure autosave", "error", err)
		}
		autosave.Start()
		defer autosave.Stop()
	}

	if cfg.FileSync.Enabled {
		fileSync, err := service.NewFileSync(docs)
		if err != nil {
			logger.Sugar.Fatalw("configure file sync", "error", err)
		}
		defer fileSync.Close()
		for _, d := range docs.Manager().GetAllDocuments() {
			if d.FilePath == "" {
				continue
			}
			if err := fileSync.WatchDocument(d.ID, d.FilePath); err != nil {
				logger.Sugar.Warnw("watch document file", "document", d.ID, "path", d.FilePath, "error", err)
			}
		}
	}

	srv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:   emitter,
		Documents: docs,
		Diff:      diff.New(),
	})

	logger.Sugar.Infow("lessonforge ready", "documents", docs.Manager().Size(), "language", cfg.Language)
	if err := srv.ServeStdio(); err != nil {
		logger.Sugar.Fatalw("mcp server", "error", err)
	}
}
