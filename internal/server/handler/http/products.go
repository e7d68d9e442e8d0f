package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ilyakh/ShopKeeper/internal/models"
	"github.com/ilyakh/ShopKeeper/internal/repository"
)

// ProductService defines the interface for catalog operations required
// by the product handlers.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p models.Product) (*models.Product, error)
	Update(ctx context.Context, p models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductHandler handles HTTP requests for product CRUD.
type ProductHandler struct {
	ProductService ProductService
}

// productID parses the {id} URL parameter.
func productID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// List handles GET /api/products and responds with the full catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductService.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.ProductService.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(product)
}

// Create handles POST /api/products. The request body carries name, price,
// and description; any id is ignored. Responds 201 with the stored record.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.ID = 0

	product, err := h.ProductService.Create(r.Context(), req)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(product)
}

// Update handles PUT /api/products/{id}. Responds 200 with the stored record.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req models.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.ID = id

	product, err := h.ProductService.Update(r.Context(), req)
	if errors.Is(err, repository.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(product)
}

// Delete handles DELETE /api/products/{id}. Responds 204 on success.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	err = h.ProductService.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
