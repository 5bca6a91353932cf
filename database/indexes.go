package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query paths rely on. Creation is
// idempotent so this runs on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "variants._id", Value: 1}}},
		{Keys: bson.D{{Key: "variants.price", Value: 1}}},
		{Keys: bson.D{{Key: "variants.options", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("categories").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "parentPath", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("brands").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	})
	return err
}
