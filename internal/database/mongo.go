// Package database owns the persistence-layer client lifecycles.
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongo dials the document store and verifies the connection before
// handing the database back to the caller.
func ConnectMongo(ctx context.Context, uri, dbName string, logger *zap.Logger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("mongodb connected", zap.String("database", dbName))
	return client.Database(dbName), client, nil
}
