package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/JMaramara/boardgame/internal/api/middleware"
	"github.com/JMaramara/boardgame/internal/api/request"
	"github.com/JMaramara/boardgame/internal/api/response"
	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/services/collection"
)

// CollectionHandler handles collection list endpoints
type CollectionHandler struct {
	collection *collection.Service
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService *collection.Service) *CollectionHandler {
	return &CollectionHandler{
		collection: collectionService,
	}
}

// List handles GET /api/collection?is_wishlist=
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	isWishlist := r.URL.Query().Get("is_wishlist") == "true"

	items, err := h.collection.List(r.Context(), user.ID, isWishlist)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CollectionItemsFromModel(items))
}

// Add handles POST /api/collection
func (h *CollectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.AddCollectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.BGGID == "" {
		WriteError(w, NewInvalidRequestError("bgg_id is required"))
		return
	}

	item, err := h.collection.Add(r.Context(), user.ID, req.BGGID, req.UserNotes, req.CustomTags, req.IsWishlist, req.WishlistPriority)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CollectionItemFromModel(item))
}

// Update handles PUT /api/collection/{id}
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	itemID := model.ItemID(mux.Vars(r)["id"])

	var req request.UpdateCollectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	item, err := h.collection.Update(r.Context(), user.ID, itemID, req.UserNotes, req.CustomTags)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CollectionItemFromModel(item))
}

// Remove handles DELETE /api/collection/{id}
func (h *CollectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	itemID := model.ItemID(mux.Vars(r)["id"])

	if err := h.collection.Remove(r.Context(), user.ID, itemID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
