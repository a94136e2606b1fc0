// Command seed loads the pre-registration allow-list from a YAML file.
//
// Usage:
//
//	seed [-file path]
//
// Records whose email already signed up are left untouched. The command
// exits with status 1 when the file cannot be loaded or the import fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/app"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/core/service"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/config"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/seed"
	"github.com/campusconnect/alumni-portal/pkg/logger"
)

func main() {
	file := flag.String("file", "", "seed file (defaults to SEED_FILE)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "seed"})
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	path := *file
	if path == "" {
		path = cfg.SeedFile
	}
	if err := run(ctx, cfg, path, log); err != nil {
		log.Error().Err(err).Str("file", path).Msg("seed failed")
		os.Exit(1)
	}
}

// run imports the file at path. The store is closed before it returns, so
// callers may exit right after.
func run(ctx context.Context, cfg *config.Config, path string, log zerolog.Logger) error {
	records, err := seed.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}

	store, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close(context.Background())

	return importRecords(ctx, service.NewPreRegistrationService(store.Repos.PreRegistrations, log), path, records, log)
}

func importRecords(ctx context.Context, svc ports.PreRegistrationService, path string, records []*domain.PreRegistration, log zerolog.Logger) error {
	report, err := svc.Seed(ctx, records)
	if err != nil {
		return err
	}
	log.Info().
		Str("file", path).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("skipped", report.Skipped).
		Msg("pre-registrations seeded")
	return nil
}
