package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/backend/internal/logger"
	"github.com/stockroom/backend/internal/models"
	"github.com/stockroom/backend/internal/services"
	"github.com/stockroom/backend/internal/validate"
)

type ItemHandler struct {
	items services.ItemService
	log   logger.Logger
}

func NewItemHandler(items services.ItemService, log logger.Logger) *ItemHandler {
	return &ItemHandler{
		items: items,
		log:   log,
	}
}

// ListItems handles GET /api/items?name=&minPrice=&maxPrice=. All three
// parameters are optional; active ones combine with AND.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minPrice, err := parseOptionalFloat(query.Get("minPrice"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid minPrice")
		return
	}
	maxPrice, err := parseOptionalFloat(query.Get("maxPrice"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid maxPrice")
		return
	}

	filter := models.ItemFilter{
		Name:     query.Get("name"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	items, err := h.items.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, "list items", err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.items.GetByID(r.Context(), itemID)
	if err != nil {
		h.writeServiceError(w, r, "get item", err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeValidationError(w, validate.Fields(err))
		return
	}

	item, err := h.items.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, "create item", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeValidationError(w, validate.Fields(err))
		return
	}

	item, err := h.items.Update(r.Context(), itemID, &req)
	if err != nil {
		h.writeServiceError(w, r, "update item", err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	if err := h.items.Delete(r.Context(), itemID); err != nil {
		h.writeServiceError(w, r, "delete item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service sentinels to status codes. Unrecognized
// errors become a generic 500; the detail is logged, not leaked.
func (h *ItemHandler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, services.ErrStoreUnavailable):
		h.log.ErrorContext(r.Context(), op, "error", err)
		writeError(w, http.StatusServiceUnavailable, "backing store unavailable")
	default:
		h.log.ErrorContext(r.Context(), op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
