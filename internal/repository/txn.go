package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// runTxn executes fn inside a session transaction when the deployment
// supports them, otherwise sequentially. Standalone mongod instances
// reject multi-document transactions, so this is opt-in via config.
func runTxn(ctx context.Context, client *mongo.Client, enabled bool, fn func(ctx context.Context) error) error {
	if !enabled {
		return fn(ctx)
	}
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
