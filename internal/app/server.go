package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/api"
	"github.com/campusconnect/alumni-portal/internal/api/metrics"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/config"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/mail"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/queue"
	"github.com/campusconnect/alumni-portal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		store.Close(closeCtx)
	}()

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger.Component(log, "mailer"))
	dispatcher := queue.NewDispatcher(0, mailer, logger.Component(log, "mail_queue"))
	dispatcher.OnOutcome(metrics.MailOutcome)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workerCtx)
	defer dispatcher.Close()

	services := NewServices(store.Repos, dispatcher, Settings{
		JWTSecret:       cfg.Auth.JWTSecret,
		TokenTTL:        cfg.Auth.TokenTTL,
		Location:        cfg.Location(),
		SessionDuration: cfg.Sessions.Duration,
		EligibleYears:   cfg.EligibleYears(),
		FrontendURL:     cfg.FrontendURL,
	}, log)

	e := api.NewRouter(services, api.Options{
		AllowOrigins:  []string{cfg.FrontendURL},
		AuthRateLimit: cfg.Auth.RateLimit,
		HealthChecks:  store.Checks,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
