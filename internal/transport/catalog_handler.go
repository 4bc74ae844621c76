package transport

import (
	"net/http"
	"strconv"

	"atelier-boutique/internal/catalog"
	"atelier-boutique/internal/domain"
	"atelier-boutique/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SizeView is a product size with its UI low-stock annotation.
type SizeView struct {
	Size     string `json:"size"`
	Stock    int    `json:"stock"`
	LowStock bool   `json:"low_stock"`
}

// ProductResponse is a catalog product as the storefront renders it.
type ProductResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Price       int64      `json:"price"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Sizes       []SizeView `json:"sizes"`
	TotalStock  int        `json:"total_stock"`
	InStock     bool       `json:"in_stock"`
}

// CatalogHandler handles HTTP requests for product browsing
type CatalogHandler struct {
	logger *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/featured", h.FeaturedProducts)
		r.Get("/{id}", h.GetProduct)
	})
}

// ListProducts returns the catalog, optionally filtered by category, name
// query, price ceiling and stock availability.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("Session not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	criteria := catalog.FilterCriteria{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}

	if raw := r.URL.Query().Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid max_price")
			return
		}
		criteria.MaxPrice = &maxPrice
	}

	if raw := r.URL.Query().Get("in_stock"); raw != "" {
		inStockOnly, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid in_stock")
			return
		}
		criteria.InStockOnly = inStockOnly
	}

	products := sess.FilterProducts(criteria)
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products, sess.LowStockThreshold()))
}

// FeaturedProducts returns the hero carousel products.
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("Session not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	products := sess.FeaturedProducts()
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products, sess.LowStockThreshold()))
}

// GetProduct returns a single product with its low-stock annotations.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("Session not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	product, err := sess.FindProduct(chi.URLParam(r, "id"))
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(*product, sess.LowStockThreshold()))
}

func toProductResponse(p domain.Product, lowStockThreshold int) ProductResponse {
	sizes := make([]SizeView, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, SizeView{
			Size:     s.Size,
			Stock:    s.Stock,
			LowStock: s.Stock <= lowStockThreshold,
		})
	}

	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Sizes:       sizes,
		TotalStock:  p.TotalStock(),
		InStock:     p.InStock(),
	}
}

func toProductResponses(products []domain.Product, lowStockThreshold int) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, lowStockThreshold))
	}
	return out
}
