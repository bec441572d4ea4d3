package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// ShortlinksCollection holds one document per shortlink, keyed by the unique text field.
	ShortlinksCollection = "shortlinks"
	// CountersCollection holds the sequence documents used to allocate ids.
	CountersCollection = "counters"

	shortlinkCounterID = "shortlinkId"
	textIndexName      = "text_unique"
)

// ErrAlreadyBootstrapped is returned when the shortlink counter has already been seeded.
var ErrAlreadyBootstrapped = errors.New("database already bootstrapped")

// EnsureShortlinkIndex creates the unique index on the text field of the shortlinks collection.
func EnsureShortlinkIndex(ctx context.Context, db *mongo.Database) error {
	const op = "adapter.repository.mongodb.EnsureShortlinkIndex"

	_, err := db.Collection(ShortlinksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "text", Value: 1}},
		Options: options.Index().SetName(textIndexName).SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: failed to create index on %s: %w", op, ShortlinksCollection, err)
	}

	return nil
}

// SeedCounter inserts the shortlink id counter with seq 0. There is no
// existence check: a second call fails with a duplicate key error.
func SeedCounter(ctx context.Context, db *mongo.Database) error {
	const op = "adapter.repository.mongodb.SeedCounter"

	_, err := db.Collection(CountersCollection).InsertOne(ctx, counterDoc{
		ID:  shortlinkCounterID,
		Seq: 0,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w: %w", op, ErrAlreadyBootstrapped, err)
		}

		return fmt.Errorf("%s: failed to insert into %s: %w", op, CountersCollection, err)
	}

	return nil
}

// Bootstrap prepares an empty database for the shortlink service. It is meant
// to run once per deployment and fails when repeated.
func Bootstrap(ctx context.Context, db *mongo.Database) error {
	if err := EnsureShortlinkIndex(ctx, db); err != nil {
		return err
	}

	return SeedCounter(ctx, db)
}
