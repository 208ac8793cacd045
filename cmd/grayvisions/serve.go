package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	api "github.com/grayvisions/grayvisions/internal/api/http"
	authmw "github.com/grayvisions/grayvisions/internal/auth/middleware"
	"github.com/grayvisions/grayvisions/internal/books"
	"github.com/grayvisions/grayvisions/internal/config"
	"github.com/grayvisions/grayvisions/internal/db"
	"github.com/grayvisions/grayvisions/internal/docs"
	"github.com/grayvisions/grayvisions/internal/storage"
	syncx "github.com/grayvisions/grayvisions/internal/sync"
	"github.com/grayvisions/grayvisions/internal/trials"
	"github.com/grayvisions/grayvisions/internal/viewer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db open failed: %w", err)
	}
	defer dbh.Close()

	// --- Blob stores ---
	models, err := openModelStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	documents, err := storage.NewFSStore(cfg.DocumentsDir)
	if err != nil {
		return fmt.Errorf("documents dir: %w", err)
	}

	// --- Manifest watcher ---
	if cfg.WatchDocuments {
		w, err := docs.NewWatcher(cfg.DocumentsDir, logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	} else if _, err := docs.Write(cfg.DocumentsDir); err != nil {
		logger.Warn("manifest write failed", zap.Error(err))
	}

	catalog := books.NewSQLStore(dbh)
	if err := seedIfEmpty(ctx, catalog); err != nil {
		logger.Warn("book seed failed", zap.Error(err))
	}
	uploads := viewer.NewSQLUploads(dbh)

	router := api.NewRouter(api.Deps{
		Log:  logger,
		Auth: authmw.NewAuthService(cfg.AuthHMACSecret),
		Login: authmw.Credentials{
			Enabled:  cfg.EnableLocalAuth,
			User:     cfg.AdminUser,
			PassHash: cfg.AdminPassHash,
		},
		CORSOrigins:  cfg.CORSOrigins(),
		DocumentsDir: cfg.DocumentsDir,
		Documents:    documents,
		Models:       &viewer.Library{Blobs: models, Records: uploads},
		ModelRecords: uploads,
		Books:        catalog,
		Trials:       trials.NewClient(cfg.TrialsBaseURL, cfg.TrialsTimeout),
		Events:       syncx.NewEventRepo(dbh),
		DB:           dbh,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("mode", string(cfg.Mode)),
			zap.String("db", cfg.DBDriver),
			zap.String("blob", cfg.BlobDriver))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	return srv.Shutdown(shutCtx)
}

func openModelStore(ctx context.Context, c config.Config) (storage.BlobStore, error) {
	switch c.BlobDriver {
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:   c.S3Bucket,
			Region:   c.S3Region,
			Endpoint: c.S3Endpoint,
		})
	default:
		return storage.NewFSStore(c.BlobBasePath)
	}
}

func seedIfEmpty(ctx context.Context, s *books.SQLStore) error {
	existing, err := s.List(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	n, err := books.Seed(ctx, s)
	if err != nil {
		return err
	}
	logger.Info("seeded book catalog", zap.Int("books", n))
	return nil
}

var _ api.Pinger = (*sql.DB)(nil)
