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

	"bird-collector/internal/adapters/auth/odin"
	blobmem "bird-collector/internal/adapters/blobstore/memory"
	blobs3 "bird-collector/internal/adapters/blobstore/s3"
	"bird-collector/internal/adapters/storage"
	mem "bird-collector/internal/adapters/storage/memory"
	pg "bird-collector/internal/adapters/storage/postgres"
	"bird-collector/internal/adapters/storage/sqlite"
	"bird-collector/internal/config"
	"bird-collector/internal/platform/logger"
	"bird-collector/internal/ports/auth"
	"bird-collector/internal/ports/blobstore"
	"bird-collector/internal/router"
)

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	repos, db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	blobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	verifier, err := openVerifier(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			Repos:        &repos,
			BlobStore:    blobs,
			Bucket:       cfg.BlobStore.Bucket,
			Logger:       log,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"storage":   cfg.Storage.Driver,
			"blobstore": cfg.BlobStore.Type,
			"dev_auth":  verifier == nil,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigrate() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if cfg.Storage.Driver == "memory" {
		log.Info("memory storage: nothing to migrate", nil)
		return nil
	}
	_, db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("migrations applied", map[string]any{"driver": cfg.Storage.Driver})
	return nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
}

// openStorage abre el driver configurado y aplica migraciones. db es nil para memory.
func openStorage(cfg *config.Config) (storage.Repos, *sql.DB, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := pg.Open(cfg.Storage.DSN)
		if err != nil {
			return storage.Repos{}, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.MigrateUp(db); err != nil {
			_ = db.Close()
			return storage.Repos{}, nil, err
		}
		return pg.NewRepos(db), db, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.Storage.DSN)
		if err != nil {
			return storage.Repos{}, nil, err
		}
		if err := sqlite.MigrateUp(db); err != nil {
			_ = db.Close()
			return storage.Repos{}, nil, err
		}
		return sqlite.NewRepos(db), db, nil

	default:
		return mem.NewRepos(), nil, nil
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (blobstore.Store, error) {
	bc := cfg.BlobStore
	if bc.Type != "s3" {
		return blobmem.New(bc.BaseURL), nil
	}
	return blobs3.New(ctx, blobs3.Options{
		BaseURL:         bc.BaseURL,
		Region:          bc.Region,
		Endpoint:        bc.Endpoint,
		UsePathStyle:    bc.UsePathStyle,
		AccessKeyID:     bc.AccessKeyID,
		SecretAccessKey: bc.SecretAccessKey,
	})
}

// openVerifier devuelve nil (modo dev) si Odin no está configurado.
func openVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	if cfg.Auth.OdinBaseURL == "" {
		return nil, nil
	}
	v, err := odin.NewVerifier(odin.Config{
		BaseURL: cfg.Auth.OdinBaseURL,
		APIKey:  cfg.Auth.OdinAPIKey,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
