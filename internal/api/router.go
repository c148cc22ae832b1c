package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/JMaramara/boardgame/internal/api/handler"
	"github.com/JMaramara/boardgame/internal/api/middleware"
	"github.com/JMaramara/boardgame/internal/services/account"
	"github.com/JMaramara/boardgame/internal/services/catalog"
	"github.com/JMaramara/boardgame/internal/services/collection"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AccountService    *account.Service
	CatalogService    *catalog.Service
	CollectionService *collection.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AccountService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)
	collectionHandler := handler.NewCollectionHandler(cfg.CollectionService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AccountService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Profile requires a valid bearer token
	profile := api.PathPrefix("/auth/profile").Subrouter()
	profile.Use(authMiddleware)
	profile.HandleFunc("", authHandler.Profile).Methods(http.MethodGet)

	// Catalog routes (search is public)
	api.HandleFunc("/search", catalogHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/games/{bgg_id}", catalogHandler.GameDetail).Methods(http.MethodGet)

	// Collection routes (all require auth)
	coll := api.PathPrefix("/collection").Subrouter()
	coll.Use(authMiddleware)
	coll.HandleFunc("", collectionHandler.List).Methods(http.MethodGet)
	coll.HandleFunc("", collectionHandler.Add).Methods(http.MethodPost)
	coll.HandleFunc("/{id}", collectionHandler.Update).Methods(http.MethodPut)
	coll.HandleFunc("/{id}", collectionHandler.Remove).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
