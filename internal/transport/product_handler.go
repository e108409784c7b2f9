package transport

import (
	"errors"
	"net/http"

	"github.com/VijayBuddhi/phase-zero-project/internal/domain"
	"github.com/VijayBuddhi/phase-zero-project/internal/middleware"
	"github.com/VijayBuddhi/phase-zero-project/internal/repository"
	"github.com/VijayBuddhi/phase-zero-project/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. An id in
// the body is ignored; ids are server-assigned.
type CreateProductRequest struct {
	PartNumber string  `json:"partNumber" validate:"required"`
	PartName   string  `json:"partName" validate:"required"`
	Category   string  `json:"category" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
}

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Get("/search", h.Search)
		r.Get("/filter", h.Filter)
		r.Get("/sort", h.Sort)
		r.Get("/inventory/value", h.InventoryValue)
	})
}

// Create handles product creation. Duplicate part numbers are reported as
// 409 Conflict; validation failures as 400.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		PartNumber: req.PartNumber,
		PartName:   req.PartName,
		Category:   req.Category,
		Price:      req.Price,
		Stock:      req.Stock,
	}

	created, err := h.catalogService.AddProduct(r.Context(), product)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePartNumber) {
			middleware.RespondWithError(w, http.StatusConflict, "duplicate part number not allowed")
			return
		}
		if service.IsValidationError(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Failed to add product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", created.ID),
		zap.String("part_number", created.PartNumber),
	)
	middleware.RespondWithJSON(w, http.StatusOK, created)
}

// GetAll returns every product in the catalog.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.GetAllProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Search returns products whose name contains the name query parameter.
// The parameter must be present; an empty value matches every product.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("name") {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing required query parameter: name")
		return
	}

	products, err := h.catalogService.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.logger.Error("Failed to search products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Filter returns products whose category matches the category query
// parameter exactly, ignoring case.
func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("category") {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing required query parameter: category")
		return
	}

	products, err := h.catalogService.FilterByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("Failed to filter products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to filter products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Sort returns every product ordered by price ascending.
func (h *ProductHandler) Sort(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.SortByPrice(r.Context())
	if err != nil {
		h.logger.Error("Failed to sort products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sort products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// InventoryValue returns the total inventory value as a JSON number.
func (h *ProductHandler) InventoryValue(w http.ResponseWriter, r *http.Request) {
	value, err := h.catalogService.GetTotalInventoryValue(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute inventory value", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute inventory value")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, value)
}
