package transport

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderItemRequest is one line in an order creation payload
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       *int   `json:"qty" validate:"required,gt=0"`
}

// OrderCreateRequest represents the order creation payload
type OrderCreateRequest struct {
	UserID string             `json:"userId" validate:"required"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderProductDetails is the resolved product information on an order item
type OrderProductDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderItemResponse is an order line in the list view. ProductDetails is
// null when the referenced product no longer exists.
type OrderItemResponse struct {
	ProductDetails *OrderProductDetails `json:"productDetails"`
	Qty            int                  `json:"qty"`
}

// OrderListItem is an order as rendered in the list view
type OrderListItem struct {
	ID    string              `json:"id"`
	Items []OrderItemResponse `json:"items"`
	Total float64             `json:"total"`
}

// OrderListResponse represents the paginated order listing
type OrderListResponse struct {
	Data []OrderListItem `json:"data"`
	Page Pagination      `json:"page"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders/{userId}", h.ListByUser)
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "userId", Message: "This field is required"},
		})
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Qty:       *item.Qty,
		})
	}

	id, err := h.orderService.Create(r.Context(), service.CreateOrderInput{
		UserID: userID,
		Items:  items,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProductID) {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "items", Message: err.Error()},
			})
			return
		}
		if errors.Is(err, service.ErrUnknownProducts) {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "items", Message: err.Error()},
			})
			return
		}

		h.logger.Error("Failed to create order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", id.Hex()),
		zap.String("user_id", userID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CreatedResponse{ID: id.Hex()})
}

// ListByUser handles GET /orders/{userId}. Unknown users get an empty page,
// not an error.
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(chi.URLParam(r, "userId"))
	if userID == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "userId", Message: "This field is required"},
		})
		return
	}

	page, validationErrors := parsePageQuery(r)
	if len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	orders, pageMeta, err := h.orderService.ListByUser(r.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		h.logger.Error("Failed to list orders",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to retrieve orders")
		return
	}

	data := make([]OrderListItem, 0, len(orders))
	for _, order := range orders {
		item := OrderListItem{
			ID:    order.ID.Hex(),
			Items: make([]OrderItemResponse, 0, len(order.Items)),
			Total: order.Total,
		}
		for _, line := range order.Items {
			res := OrderItemResponse{Qty: line.Qty}
			if line.ProductDetails != nil {
				res.ProductDetails = &OrderProductDetails{
					ID:   line.ProductDetails.ID,
					Name: line.ProductDetails.Name,
				}
			}
			item.Items = append(item.Items, res)
		}
		data = append(data, item)
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderListResponse{
		Data: data,
		Page: toPagination(pageMeta),
	})
}
