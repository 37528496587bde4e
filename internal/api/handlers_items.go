package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bucketbuddy/bucketbuddy/internal/api/respond"
	"github.com/bucketbuddy/bucketbuddy/internal/api/validate"
	"github.com/bucketbuddy/bucketbuddy/internal/auth"
	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/services"
)

// ItemHandler is the HTTP transport over ItemService. All routes run
// behind the auth middleware, so a resolved user is always on the context.
type ItemHandler struct {
	svc *services.ItemService
}

func NewItemHandler(svc *services.ItemService) *ItemHandler { return &ItemHandler{svc: svc} }

// ListItems GET /results
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	items, err := h.svc.ListItems(r.Context(), user.UserID)
	if err != nil {
		respond.WriteInternalError(w, "Failed to fetch items")
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// CreateItem POST /results
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	var req struct {
		Title      string `json:"title"`
		Category   string `json:"category"`
		Priority   string `json:"priority"`
		TargetDate string `json:"targetDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	target, err := validate.CreateItem(req.Title, req.Category, req.Priority, req.TargetDate)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	item := &model.Item{
		OwnerID:    user.UserID,
		Title:      req.Title,
		Category:   req.Category,
		Priority:   req.Priority,
		TargetDate: target,
	}
	out, err := h.svc.CreateItem(r.Context(), item)
	if err != nil {
		respond.WriteInternalError(w, "Failed to add item")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// CompleteItem PUT /results/{id}
func (h *ItemHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	id := mux.Vars(r)["id"]

	ok, err := h.svc.CompleteItem(r.Context(), id, user.UserID)
	if err != nil {
		respond.WriteInternalError(w, "Failed to update item")
		return
	}
	if !ok {
		respond.WriteNotFound(w, "Item not found")
		return
	}
	respond.WriteText(w, http.StatusOK, "Marked completed")
}

// DeleteItem DELETE /results/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	id := mux.Vars(r)["id"]

	ok, err := h.svc.DeleteItem(r.Context(), id, user.UserID)
	if err != nil {
		respond.WriteInternalError(w, "Failed to delete item")
		return
	}
	if !ok {
		respond.WriteNotFound(w, "Item not found")
		return
	}
	respond.WriteText(w, http.StatusOK, "Deleted")
}
