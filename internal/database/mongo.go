package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// Collection names used by the storefront
	ProductsCollection = "products"
	OrdersCollection   = "orders"

	connectTimeout = 10 * time.Second
)

// Service owns the mongo client for the process lifetime. It is constructed
// once at startup and injected into the repositories.
type Service struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to the document database and verifies the connection with a
// ping before returning.
func New(ctx context.Context, uri, database string) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Service{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Database returns the handle for the configured database
func (s *Service) Database() *mongo.Database {
	return s.db
}

// Products returns the product collection handle
func (s *Service) Products() *mongo.Collection {
	return s.db.Collection(ProductsCollection)
}

// Orders returns the order collection handle
func (s *Service) Orders() *mongo.Collection {
	return s.db.Collection(OrdersCollection)
}

// Health reports the connection status, suitable for the /health endpoint
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status":   "up",
		"database": s.db.Name(),
	}

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
	}

	return status
}

// Close disconnects the client. Called during graceful shutdown.
func (s *Service) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
