// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/egghunt/auth"
	"github.com/danielhkuo/egghunt/cliparse"
	"github.com/danielhkuo/egghunt/middleware"
	"github.com/danielhkuo/egghunt/models"
)

// Item field limits
const (
	ItemNameMin        = 3
	ItemNameMax        = 100
	ItemDescriptionMax = 500
)

type ItemHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewItemHandler(db *sql.DB, cfg cliparse.Config) *ItemHandler {
	return &ItemHandler{db: db, cfg: cfg}
}

// validateItem trims name and description in place and returns a message
// describing the first violation, or "" if both are valid
func validateItem(name, description *string) string {
	*name = strings.TrimSpace(*name)
	*description = strings.TrimSpace(*description)

	switch n := utf8.RuneCountInString(*name); {
	case n == 0:
		return "Item name is required"
	case n < ItemNameMin:
		return "Item name must be at least 3 characters long"
	case n > ItemNameMax:
		return "Item name cannot exceed 100 characters"
	}
	if utf8.RuneCountInString(*description) > ItemDescriptionMax {
		return "Description cannot exceed 500 characters"
	}
	return ""
}

// ListItems handles GET /api/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM item
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		slog.Error("failed to query items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
			slog.Error("failed to scan item", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// CreateItem handles POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	var req models.CreateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateItem(&req.Name, &req.Description); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now().UTC()
	item := models.Item{
		ID:          auth.NewID(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := h.db.Exec(`
		INSERT INTO item (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.UserID, item.Name, item.Description, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		slog.Error("failed to insert item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	slog.Info("item created", "item_id", item.ID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, item)
}

// loadItem resolves the {id} path value. On failure it writes the error
// response and returns false.
func (h *ItemHandler) loadItem(w http.ResponseWriter, r *http.Request) (models.Item, bool) {
	var it models.Item

	itemID := r.PathValue("id")
	if !auth.ValidID(itemID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid item ID format")
		return it, false
	}

	err := h.db.QueryRow(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM item WHERE id = $1
	`, itemID).Scan(&it.ID, &it.UserID, &it.Name, &it.Description, &it.CreatedAt, &it.UpdatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return it, false
	}
	if err != nil {
		slog.Error("failed to query item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return it, false
	}
	return it, true
}

// GetItem handles GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	// Don't reveal items of other users
	if item.UserID != userID {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found (or not authorized)")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, item)
}

// UpdateItem handles PUT /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	var req models.UpdateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if item.UserID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Forbidden: You do not own this item")
		return
	}

	// An empty name keeps the current one
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if msg := validateItem(&item.Name, &item.Description); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	item.UpdatedAt = time.Now().UTC()

	_, err := h.db.Exec(`
		UPDATE item SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`, item.Name, item.Description, item.UpdatedAt, item.ID)
	if err != nil {
		slog.Error("failed to update item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	slog.Info("item updated", "item_id", item.ID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized, user ID missing")
		return
	}

	item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if item.UserID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Forbidden: You do not own this item")
		return
	}

	if _, err := h.db.Exec("DELETE FROM item WHERE id = $1", item.ID); err != nil {
		slog.Error("failed to delete item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	slog.Info("item deleted", "item_id", item.ID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Item deleted successfully"})
}
