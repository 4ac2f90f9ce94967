package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeQuantity holds the available quantity for one size label of a product
type SizeQuantity struct {
	Size     string `json:"size" bson:"size"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Product represents a product document in the catalog
type Product struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Price float64            `json:"price" bson:"price"`
	Sizes []SizeQuantity     `json:"sizes" bson:"sizes"`
}

// ProductSummary is the projected list view of a product; sizes are
// intentionally excluded from listings
type ProductSummary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Price float64            `json:"price" bson:"price"`
}
