package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo(uri, dbName string, timeout time.Duration, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("MongoDB connection failed: %v", err)
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("MongoDB ping failed: %v", err)
		return nil, nil, err
	}

	logger.Info("MongoDB connected successfully")
	return client.Database(dbName), client, nil
}
