package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/JMaramara/boardgame/internal/api/response"
	"github.com/JMaramara/boardgame/internal/services/catalog"
)

// MinQueryLength is the shortest search query the catalog accepts.
// Upstream full-text search is expensive and low-precision below this.
const MinQueryLength = 2

// CatalogHandler handles catalog search and game detail endpoints
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
	}
}

// Search handles GET /api/search?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if utf8.RuneCountInString(query) < MinQueryLength {
		WriteError(w, NewInvalidRequestError("query must be at least 2 characters"))
		return
	}

	entries, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SearchResponseFromModel(entries))
}

// GameDetail handles GET /api/games/{bgg_id}
func (h *CatalogHandler) GameDetail(w http.ResponseWriter, r *http.Request) {
	bggID := mux.Vars(r)["bgg_id"]

	detail, err := h.catalog.GameDetail(r.Context(), bggID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameDetailFromModel(detail))
}
