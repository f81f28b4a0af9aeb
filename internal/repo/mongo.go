package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens the MongoDB client and pings the primary before returning
// the database handle.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging MongoDB")
	}

	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the data model relies on: unique member
// and subscriber emails, the sparse-unique donation payment reference, and
// the event start-date sort index. The unique indexes are the store-level
// backstop behind the handlers' check-then-act pre-checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	indexes := map[string][]mongo.IndexModel{
		"members": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"newsletter": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"donations": {
			{Keys: bson.D{{Key: "paymentReference", Value: 1}}, Options: sparseUnique},
		},
		"events": {
			{Keys: bson.D{{Key: "startDate", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating indexes on %s", coll)
		}
	}
	return nil
}
