package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockOrderRepository struct {
	orders []domain.Order
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) (primitive.ObjectID, error) {
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, *order)
	return order.ID, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	matched := []domain.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	if offset >= len(matched) {
		return []domain.Order{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func newOrderRouter(orders *mockOrderRepository, products *mockProductRepository) chi.Router {
	router := chi.NewRouter()
	handler := NewOrderHandler(service.NewOrderService(orders, products), zap.NewNop())
	handler.RegisterRoutes(router)
	return router
}

func TestCreateOrder_Valid(t *testing.T) {
	products := newMockProductRepository()
	productID := products.add(domain.Product{Name: "T-Shirt", Price: 25.99})
	orders := &mockOrderRepository{}
	router := newOrderRouter(orders, products)

	body := fmt.Sprintf(`{"userId":"user-1","items":[{"productId":%q,"qty":2}]}`, productID.Hex())
	req := httptest.NewRequest("POST", "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var res CreatedResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, err := primitive.ObjectIDFromHex(res.ID); err != nil {
		t.Errorf("response ID %q is not a valid object ID", res.ID)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected one stored order, got %d", len(orders.orders))
	}
}

func TestCreateOrder_ValidationFailures(t *testing.T) {
	products := newMockProductRepository()
	productID := products.add(domain.Product{Name: "T-Shirt", Price: 25.99})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing userId", fmt.Sprintf(`{"items":[{"productId":%q,"qty":1}]}`, productID.Hex()), http.StatusUnprocessableEntity},
		{"blank userId", fmt.Sprintf(`{"userId":"   ","items":[{"productId":%q,"qty":1}]}`, productID.Hex()), http.StatusUnprocessableEntity},
		{"empty items", `{"userId":"user-1","items":[]}`, http.StatusUnprocessableEntity},
		{"missing items", `{"userId":"user-1"}`, http.StatusUnprocessableEntity},
		{"zero qty", fmt.Sprintf(`{"userId":"user-1","items":[{"productId":%q,"qty":0}]}`, productID.Hex()), http.StatusUnprocessableEntity},
		{"negative qty", fmt.Sprintf(`{"userId":"user-1","items":[{"productId":%q,"qty":-2}]}`, productID.Hex()), http.StatusUnprocessableEntity},
		{"malformed productId", `{"userId":"user-1","items":[{"productId":"zzz","qty":1}]}`, http.StatusUnprocessableEntity},
		{"unknown product", fmt.Sprintf(`{"userId":"user-1","items":[{"productId":%q,"qty":1}]}`, primitive.NewObjectID().Hex()), http.StatusUnprocessableEntity},
		{"malformed JSON", `{"userId":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&mockOrderRepository{}, products)

			req := httptest.NewRequest("POST", "/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestListOrders_UnknownUserGetsEmptyPage(t *testing.T) {
	router := newOrderRouter(&mockOrderRepository{}, newMockProductRepository())

	req := httptest.NewRequest("GET", "/orders/nobody", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown user, got %d", w.Code)
	}

	var res OrderListResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if res.Data == nil || len(res.Data) != 0 {
		t.Errorf("expected empty data list, got %v", res.Data)
	}
	if res.Page.Next != nil || res.Page.Previous != nil {
		t.Errorf("expected nil next/previous, got %+v", res.Page)
	}
	if res.Page.Limit != 10 || res.Page.Offset != 0 {
		t.Errorf("expected default page window, got %+v", res.Page)
	}
}

func TestListOrders_ResolvesProductsAndTotal(t *testing.T) {
	products := newMockProductRepository()
	shirt := products.add(domain.Product{Name: "T-Shirt", Price: 25.99})
	missing := primitive.NewObjectID()

	orders := &mockOrderRepository{orders: []domain.Order{{
		ID:     primitive.NewObjectID(),
		UserID: "user-1",
		Items: []domain.OrderItem{
			{ProductID: shirt, Qty: 2},
			{ProductID: missing, Qty: 4},
		},
	}}}

	router := newOrderRouter(orders, products)

	req := httptest.NewRequest("GET", "/orders/user-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res OrderListResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(res.Data) != 1 {
		t.Fatalf("expected one order, got %d", len(res.Data))
	}

	order := res.Data[0]
	if math.Abs(order.Total-51.98) > 1e-9 {
		t.Errorf("expected total 51.98, got %v", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(order.Items))
	}
	if order.Items[0].ProductDetails == nil || order.Items[0].ProductDetails.Name != "T-Shirt" {
		t.Errorf("expected resolved product details, got %+v", order.Items[0].ProductDetails)
	}
	if order.Items[1].ProductDetails != nil {
		t.Errorf("expected null product details for missing product, got %+v", order.Items[1].ProductDetails)
	}
	if order.Items[1].Qty != 4 {
		t.Errorf("expected dangling item to keep qty 4, got %d", order.Items[1].Qty)
	}
}

func TestListOrders_PageQueryValidation(t *testing.T) {
	router := newOrderRouter(&mockOrderRepository{}, newMockProductRepository())

	for _, query := range []string{"?limit=0", "?limit=200", "?offset=-3", "?limit=abc"} {
		req := httptest.NewRequest("GET", "/orders/user-1"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("query %q: expected 422, got %d", query, w.Code)
		}
	}
}
