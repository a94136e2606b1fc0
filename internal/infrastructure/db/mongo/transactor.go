package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs callbacks inside a MongoDB multi-document transaction.
// Standalone servers cannot run transactions; there the callback is retried
// without one and callers rely on their own compensation.
type Transactor struct {
	client *mongo.Client
	logger zerolog.Logger
}

func NewTransactor(client *mongo.Client, logger zerolog.Logger) *Transactor {
	return &Transactor{client: client, logger: logger}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsTransactionNotSupported(err) {
		t.logger.Warn().Err(err).Msg("transactions not supported by deployment, running without")
		return fn(ctx)
	}
	return err
}

// transactionUnsupportedCodes are server error codes meaning the deployment
// cannot run transactions: IllegalOperation, InvalidOptions and
// OperationNotSupportedInTransaction.
var transactionUnsupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsTransactionNotSupported reports whether err means the server does not
// support transactions, as opposed to the transaction itself failing.
func IsTransactionNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && transactionUnsupportedCodes[cmdErr.Code] {
		return true
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if transactionUnsupportedCodes[int32(we.Code)] {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "transaction") {
		return false
	}
	for _, kw := range []string{"replica set", "session", "not supported", "illegal operation"} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
