package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/invtrack/apiserver/internal/services"
	"github.com/invtrack/apiserver/internal/store"
	"github.com/invtrack/apiserver/types"
)

// ItemsHandler provides HTTP handlers for the inventory.
type ItemsHandler struct {
	inventory *services.InventoryService
}

// NewItemsHandler constructs a handler over the inventory service.
func NewItemsHandler(inventory *services.InventoryService) *ItemsHandler {
	return &ItemsHandler{inventory: inventory}
}

// ItemsRouter registers item routes on the given router. Every route is
// session-gated.
func ItemsRouter(r chi.Router, inventory *services.InventoryService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewItemsHandler(inventory)

	r.Use(authMiddleware)
	r.Get("/", handler.ListItems)
	r.Post("/", handler.CreateItem)
	r.Put("/{name}", handler.UpdateItem)
	r.Delete("/{name}", handler.DeleteItem)
}

func (h *ItemsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	listing, err := h.inventory.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ItemListResponse{
		Source: listing.Source,
		Items:  listing.Items,
	})
}

func (h *ItemsHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	if err := h.inventory.Create(r.Context(), req.Name, *req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, StatusResponse{Status: "created"})
}

func (h *ItemsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	if err := h.inventory.Update(r.Context(), name, *req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
}

func (h *ItemsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.inventory.Delete(r.Context(), name); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// writeServiceError maps the service error taxonomy onto response statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusBadRequest, "item already exists")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type CreateItemRequest struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity *int `json:"quantity"`
}

type ItemListResponse struct {
	Source string       `json:"source"`
	Items  []types.Item `json:"items"`
}
