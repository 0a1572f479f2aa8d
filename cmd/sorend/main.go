// Command sorend serves the Soren web client's API: auth bookkeeping, the
// PDF upload and generation flow, and the Q&A routes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/sorenlabs/soren"
	sorenfiber "github.com/sorenlabs/soren/adapters/fiber"
	sorenpgx "github.com/sorenlabs/soren/adapters/pgx"
	"github.com/sorenlabs/soren/adapters/sqlite"
	"github.com/sorenlabs/soren/core"
	"github.com/sorenlabs/soren/pkg/logger"
	"github.com/sorenlabs/soren/pkg/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	backendURL := flag.String("backend", "http://localhost:5001", "generation backend base URL")
	mode := flag.String("mode", "simulated", "generation mode: simulated or delegated")
	storeKind := flag.String("store", "memory", "account store: memory, sqlite or postgres")
	sqlitePath := flag.String("sqlite-path", "soren.db", "SQLite database path (store=sqlite)")
	dsn := flag.String("dsn", "", "PostgreSQL DSN (store=postgres)")
	basePath := flag.String("base-path", "/api", "API route prefix")
	timeout := flag.Duration("generation-timeout", soren.DefaultGenerationTimeout, "abort generation after this long")
	env := flag.String("env", "prod", "environment: prod or local")
	flag.Parse()

	log, err := logger.New(*env)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting",
		zap.String("addr", *addr),
		zap.String("mode", *mode),
		zap.String("store", *storeKind),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accounts, cleanup, err := openStore(ctx, *storeKind, *sqlitePath, *dsn)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer cleanup()

	app, err := soren.New(soren.Config{
		Store:             accounts,
		BackendURL:        *backendURL,
		Mode:              soren.Mode(*mode),
		GenerationTimeout: *timeout,
		Logger:            log,
	})
	if err != nil {
		log.Fatal("wire app", zap.Error(err))
	}

	srv := fiber.New()
	sorenfiber.New(srv, app, *basePath).Register()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", *addr))
		errCh <- srv.Listen(*addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("shutdown complete")
}

// openStore picks the account store implementation. The cleanup function is
// always safe to call.
func openStore(ctx context.Context, kind, sqlitePath, dsn string) (core.AccountStore, func(), error) {
	switch kind {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "sqlite":
		s, err := sqlite.Open(sqlitePath)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		if err := sorenpgx.Migrate(ctx, dsn); err != nil {
			return nil, func() {}, err
		}
		s, pool, err := sorenpgx.Connect(ctx, dsn)
		if err != nil {
			return nil, func() {}, err
		}
		return s, pool.Close, nil
	default:
		return nil, func() {}, core.ErrUnknownStore
	}
}
