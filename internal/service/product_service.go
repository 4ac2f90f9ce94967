package service

import (
	"context"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProductInput is the validated input for product creation
type CreateProductInput struct {
	Name  string
	Price float64
	Sizes []domain.SizeQuantity
}

// ListProductsInput carries the optional filters and pagination window for a
// product listing
type ListProductsInput struct {
	Name   string
	Size   string
	Limit  int
	Offset int
}

// ProductService defines the product business operations
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (primitive.ObjectID, error)
	List(ctx context.Context, input ListProductsInput) ([]domain.ProductSummary, Page, error)
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

// Create inserts a new product and returns its generated identifier.
// Duplicate names are allowed.
func (s *productService) Create(ctx context.Context, input CreateProductInput) (primitive.ObjectID, error) {
	product := &domain.Product{
		Name:  input.Name,
		Price: input.Price,
		Sizes: input.Sizes,
	}

	return s.products.Create(ctx, product)
}

// List retrieves a page of products. Filter values are trimmed before use;
// the repository handles regex escaping for the name filter.
func (s *productService) List(ctx context.Context, input ListProductsInput) ([]domain.ProductSummary, Page, error) {
	filter := repository.ProductFilter{
		Name: strings.TrimSpace(input.Name),
		Size: strings.TrimSpace(input.Size),
	}

	products, err := s.products.List(ctx, filter, input.Limit, input.Offset)
	if err != nil {
		return nil, Page{}, err
	}

	return products, NewPage(input.Limit, input.Offset, len(products)), nil
}
