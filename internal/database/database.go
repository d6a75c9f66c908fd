// Package database opens the MongoDB client and bootstraps indexes.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and pings the primary. Every operation issued through
// the returned client is bounded by timeout.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(uri).SetTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Log.WithField("database", dbName).Info("Connected to MongoDB")
	return client, client.Database(dbName), nil
}

// indexes lists the secondary indexes every collection needs.
var indexes = map[string][]mongo.IndexModel{
	"users": {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	"achievements": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_completed", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	"achievement_templates": {
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	"badges": {
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	"challenges": {
		{Keys: bson.D{{Key: "join_code", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "participants.user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "start_date", Value: -1}}},
	},
	"journals": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
	},
	"habits": {
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	},
	"xp_logs": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
	},
	"notifications": {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	},
}

// EnsureIndexes creates the indexes above; existing ones are left untouched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.Log.WithField("collection", coll).WithField("indexes", names).Debug("Indexes ensured")
	}
	return nil
}
