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

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariant projects the product name plus the single matching variant
// using the positional operator.
func (r *ProductRepository) FindVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error) {
	filter := bson.M{"_id": id, "variants._id": variantID}
	projection := bson.M{"name": 1, "variants.$": 1}

	var product models.Product
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetProjection(projection)).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

// UpdateByID applies a $set update and returns the post-update document.
func (r *ProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error) {
	updates["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateVariant applies a positional $set against a single variant.
func (r *ProductRepository) UpdateVariant(ctx context.Context, id, variantID primitive.ObjectID, updates bson.M) (*models.Product, error) {
	updates["updatedAt"] = time.Now().UTC()
	filter := bson.M{"_id": id, "variants._id": variantID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": updates}, opts).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// PullVariant removes a single variant from a product.
func (r *ProductRepository) PullVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error) {
	filter := bson.M{"_id": id, "variants._id": variantID}
	update := bson.M{
		"$pull": bson.M{"variants": bson.M{"_id": variantID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteByRef removes every product referencing the given brand or category.
func (r *ProductRepository) DeleteByRef(ctx context.Context, field string, id primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{field: id})
	return err
}

// DetachRef clears the brand or category reference on every product that
// carries it, preserving the products themselves.
func (r *ProductRepository) DetachRef(ctx context.Context, field string, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{field: nil, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateMany(ctx, bson.M{field: id}, update)
	return err
}
