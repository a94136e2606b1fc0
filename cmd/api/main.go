// @title                       Campus Connect API
// @version                     1.0
// @description                 Alumni, faculty and student portal: pre-registration gated signup, mentoring sessions, submissions and placements.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusconnect/alumni-portal/internal/app"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/config"
	"github.com/campusconnect/alumni-portal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "alumni-portal"})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "alumni-portal",
		Env:     cfg.Env,
	})

	if err := app.Run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
