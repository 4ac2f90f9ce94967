package repository

import (
	"context"
	"fmt"

	"storefront/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
}

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository creates a new OrderRepository backed by the given mongo
// collection
func NewOrderRepository(coll *mongo.Collection) OrderRepository {
	return &orderRepository{coll: coll}
}

// Create inserts a new order document and returns the generated identifier
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create order: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}

	return id, nil
}

// ListByUser retrieves a user's orders sorted by identifier ascending, so
// pagination is stable across requests
func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}
