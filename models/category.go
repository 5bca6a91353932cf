package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category carries a materialized path: ParentPath is the slash-terminated
// chain of ancestor ids from the root down to and including the category
// itself, e.g. "<rootId>/<parentId>/<ownId>/". Subtree queries match a
// category id anywhere in the stored path.
type Category struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	ParentPath string             `json:"parentPath" bson:"parentPath"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
