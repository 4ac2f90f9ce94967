package transport

import (
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SizeQuantityRequest is one size entry in a product creation payload
type SizeQuantityRequest struct {
	Size     string `json:"size" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

// ProductCreateRequest represents the product creation payload
type ProductCreateRequest struct {
	Name  string                `json:"name" validate:"required"`
	Price *float64              `json:"price" validate:"required,gt=0"`
	Sizes []SizeQuantityRequest `json:"sizes" validate:"required,min=1,dive"`
}

// ProductListItem is a product as rendered in the list view; sizes are not
// part of the projection
type ProductListItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductListResponse represents the paginated product listing
type ProductListResponse struct {
	Data []ProductListItem `json:"data"`
	Page Pagination        `json:"page"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/products", h.Create)
	r.Get("/products", h.List)
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sizes := make([]domain.SizeQuantity, 0, len(req.Sizes))
	for _, s := range req.Sizes {
		sizes = append(sizes, domain.SizeQuantity{
			Size:     s.Size,
			Quantity: *s.Quantity,
		})
	}

	id, err := h.productService.Create(r.Context(), service.CreateProductInput{
		Name:  req.Name,
		Price: *req.Price,
		Sizes: sizes,
	})
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", id.Hex()))
	middleware.RespondWithJSON(w, http.StatusCreated, CreatedResponse{ID: id.Hex()})
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, validationErrors := parsePageQuery(r)
	if len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	size := strings.TrimSpace(r.URL.Query().Get("size"))

	if len(name) > maxNameFilterLen {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "name", Message: "Value is too long"},
		})
		return
	}
	if len(size) > maxSizeFilterLen {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "size", Message: "Value is too long"},
		})
		return
	}

	products, pageMeta, err := h.productService.List(r.Context(), service.ListProductsInput{
		Name:   name,
		Size:   size,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to retrieve products")
		return
	}

	data := make([]ProductListItem, 0, len(products))
	for _, p := range products {
		data = append(data, ProductListItem{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Price: p.Price,
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Data: data,
		Page: toPagination(pageMeta),
	})
}
