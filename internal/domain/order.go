package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a single product reference inside an order
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Qty       int                `json:"qty" bson:"qty"`
}

// Order represents an order document. Totals and product details are not
// stored; they are resolved against the product collection at read time.
type Order struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID string             `json:"userId" bson:"userId"`
	Items  []OrderItem        `json:"items" bson:"items"`
}
