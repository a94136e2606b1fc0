package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/infrastructure/config"
	mongostore "github.com/campusconnect/alumni-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/campusconnect/alumni-portal/internal/infrastructure/db/redis"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/http/handlers"
)

// Storage is an opened storage backend.
type Storage struct {
	Repos  Repositories
	Checks []handlers.Check
	Close  func(ctx context.Context)
}

// OpenStorage connects the backend selected by cfg.Storage. For Mongo it
// also connects Redis for the token denylist and ensures indexes.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return &Storage{Repos: MemoryRepositories(), Close: func(context.Context) {}}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "alumni-portal",
	})
	if err != nil {
		return nil, err
	}
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	users := mongostore.NewUserRepository(db)
	preRegs := mongostore.NewPreRegistrationRepository(db)
	sessions := mongostore.NewSessionRepository(db)
	submissions := mongostore.NewSubmissionRepository(db)
	placements := mongostore.NewPlacementRepository(db)
	notifications := mongostore.NewNotificationRepository(db)

	if err := mongostore.EnsureIndexes(ctx, users, preRegs, sessions, submissions, placements, notifications); err != nil {
		_ = rdb.Close()
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("bootstrap storage: %w", err)
	}

	log.Info().Str("database", cfg.Mongo.Database).Str("redis", rdb.Options().Addr).Msg("storage connected")
	return &Storage{
		Repos: Repositories{
			Users:            users,
			PreRegistrations: preRegs,
			Sessions:         sessions,
			Submissions:      submissions,
			Placements:       placements,
			Notifications:    notifications,
			Transactor:       mongostore.NewTransactor(client, log),
			Denylist:         redisstore.NewTokenDenylist(rdb),
		},
		Checks: []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
		Close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}
