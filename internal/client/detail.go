package client

import (
	"context"

	"github.com/JMaramara/boardgame/internal/model"
)

// detailAPI is what the resolver needs from the API client
type detailAPI interface {
	GameDetail(ctx context.Context, bggID string) (*model.GameDetail, error)
}

// DetailResolver fetches enriched metadata for one catalog entry on demand.
// Every view re-fetches: one request, no retry, no cache. The description
// field is passed through exactly as the catalog returns it.
type DetailResolver struct {
	api detailAPI
}

// NewDetailResolver creates a new detail resolver
func NewDetailResolver(api detailAPI) *DetailResolver {
	return &DetailResolver{api: api}
}

// FetchDetail returns the full record for a catalog entry, or
// model.ErrGameNotFound for entries the catalog no longer knows
func (r *DetailResolver) FetchDetail(ctx context.Context, bggID string) (*model.GameDetail, error) {
	return r.api.GameDetail(ctx, bggID)
}
