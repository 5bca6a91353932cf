package repository

import (
	"context"
	"time"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BrandRepository struct {
	collection *mongo.Collection
}

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{
		collection: db.Collection("brands"),
	}
}

func (r *BrandRepository) Insert(ctx context.Context, brand *models.Brand) error {
	_, err := r.collection.InsertOne(ctx, brand)
	return err
}

func (r *BrandRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	var brand models.Brand
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&brand)
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *BrandRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

func (r *BrandRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Brand, error) {
	updates["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var brand models.Brand
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&brand)
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *BrandRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	var brand models.Brand
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&brand)
	if err != nil {
		return nil, err
	}
	return &brand, nil
}
