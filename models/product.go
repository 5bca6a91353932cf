package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is a purchasable configuration of a product. Options are stored
// upper-cased and deduplicated; Quantity keys always mirror the option set.
type Variant struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Image     string             `json:"image" bson:"image"`
	Attribute string             `json:"attribute" bson:"attribute"`
	Price     float64            `json:"price" bson:"price"`
	Options   []string           `json:"options" bson:"options"`
	Quantity  map[string]int     `json:"quantity" bson:"quantity"`
}

type Product struct {
	ID          primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Description string              `json:"description" bson:"description"`
	Variants    []Variant           `json:"variants" bson:"variants"`
	CategoryID  *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	BrandID     *primitive.ObjectID `json:"brandId,omitempty" bson:"brandId,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}
