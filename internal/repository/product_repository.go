package repository

import (
	"context"
	"fmt"
	"regexp"

	"storefront/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilter carries the optional list filters. Name is matched as a
// case-insensitive substring; Size must equal a size label exactly.
type ProductFilter struct {
	Name string
	Size string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]domain.ProductSummary, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error)
	CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new ProductRepository backed by the given
// mongo collection
func NewProductRepository(coll *mongo.Collection) ProductRepository {
	return &productRepository{coll: coll}
}

// Create inserts a new product document and returns the generated identifier
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create product: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}

	return id, nil
}

// List retrieves products matching the filter in natural (insertion) order,
// skipping offset documents and returning at most limit. Only the fields of
// the list projection are fetched.
func (r *productRepository) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]domain.ProductSummary, error) {
	query := bson.M{}

	if filter.Name != "" {
		// Escape user input so regex metacharacters match literally
		query["name"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Name),
			Options: "i",
		}
	}

	if filter.Size != "" {
		query["sizes.size"] = filter.Size
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1, "name": 1, "price": 1})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.ProductSummary{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// FindByIDs fetches the products for the given identifiers, keyed by ID.
// Identifiers with no matching document are simply absent from the result.
func (r *productRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]domain.Product{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	products := make(map[primitive.ObjectID]domain.Product, len(ids))
	for cursor.Next(ctx) {
		var product domain.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products[product.ID] = product
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// CountByIDs counts how many of the given identifiers reference an existing
// product document
func (r *productRepository) CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
