package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidProductID signals an item product ID that is not a valid
	// document identifier
	ErrInvalidProductID = errors.New("invalid product ID")
	// ErrUnknownProducts signals an order referencing products that do not
	// exist in the catalog
	ErrUnknownProducts = errors.New("one or more products do not exist")
)

// OrderItemInput is one validated order line as received from the client,
// with the product identifier still in its wire (hex string) form
type OrderItemInput struct {
	ProductID string
	Qty       int
}

// CreateOrderInput is the validated input for order creation
type CreateOrderInput struct {
	UserID string
	Items  []OrderItemInput
}

// ProductDetails is the resolved product information attached to an order
// item at read time
type ProductDetails struct {
	ID   string
	Name string
}

// OrderItemView is an order line with its product resolved against the
// current catalog. ProductDetails is nil when the referenced product no
// longer exists.
type OrderItemView struct {
	ProductDetails *ProductDetails
	Qty            int
}

// OrderView is an order as returned by listings: items with resolved product
// details plus a total computed from current product prices
type OrderView struct {
	ID    primitive.ObjectID
	Items []OrderItemView
	Total float64
}

// OrderService defines the order business operations
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]OrderView, Page, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
	}
}

// Create validates that every referenced product exists, then inserts the
// order as a single document write. The existence check and the insert are
// not transactional; a product removed in between still ends up referenced.
func (s *orderService) Create(ctx context.Context, input CreateOrderInput) (primitive.ObjectID, error) {
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidProductID, item.ProductID)
		}
		items = append(items, domain.OrderItem{
			ProductID: productID,
			Qty:       item.Qty,
		})
	}

	// The same product may appear on several lines, so compare against the
	// distinct ID count.
	distinct := distinctProductIDs(items)
	count, err := s.products.CountByIDs(ctx, distinct)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if count != int64(len(distinct)) {
		return primitive.NilObjectID, ErrUnknownProducts
	}

	order := &domain.Order{
		UserID: input.UserID,
		Items:  items,
	}

	return s.orders.Create(ctx, order)
}

// ListByUser retrieves a page of a user's orders and resolves each item
// against the product collection. Items whose product has since disappeared
// keep their quantity, carry no product details, and contribute nothing to
// the order total.
func (s *orderService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]OrderView, Page, error) {
	orders, err := s.orders.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, Page{}, err
	}

	var ids []primitive.ObjectID
	for _, order := range orders {
		ids = append(ids, distinctProductIDs(order.Items)...)
	}

	resolved, err := s.products.FindByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, Page{}, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view := OrderView{
			ID:    order.ID,
			Items: make([]OrderItemView, 0, len(order.Items)),
		}

		for _, item := range order.Items {
			itemView := OrderItemView{Qty: item.Qty}
			if product, ok := resolved[item.ProductID]; ok {
				itemView.ProductDetails = &ProductDetails{
					ID:   product.ID.Hex(),
					Name: product.Name,
				}
				view.Total += float64(item.Qty) * product.Price
			}
			view.Items = append(view.Items, itemView)
		}

		views = append(views, view)
	}

	return views, NewPage(limit, offset, len(views)), nil
}

func distinctProductIDs(items []domain.OrderItem) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return dedupe(ids)
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
