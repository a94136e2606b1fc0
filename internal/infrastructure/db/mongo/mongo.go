package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers            = "users"
	collectionPreRegistrations = "pre_registrations"
	collectionSessions         = "sessions"
	collectionSubmissions      = "submissions"
	collectionPlacements       = "placements"
	collectionNotifications    = "notifications"
)

type Config struct {
	URI      string
	Database string
	// AppName is reported to the server and shows up in its logs and currentOp.
	AppName string
}

// Connect dials cfg.URI, pings the primary and returns the client together
// with the portal database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// indexer is implemented by every repository that owns indexes.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every repository in order, stopping at
// the first failure.
func EnsureIndexes(ctx context.Context, repos ...indexer) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}

// newID returns a fresh document ID. IDs are stored as hex strings so they
// round-trip through the API unchanged.
func newID() string {
	return primitive.NewObjectID().Hex()
}
