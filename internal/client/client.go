package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/JMaramara/boardgame/internal/api/apierr"
	"github.com/JMaramara/boardgame/internal/api/request"
	"github.com/JMaramara/boardgame/internal/model"
)

// Client is an HTTP client for the board-game catalog API. The bearer token
// is written only by SessionStore transitions; every request reads it at
// call time.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken attaches or detaches the bearer token for outgoing requests.
// An empty token detaches.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently attached bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// StatusError is an API error response that does not map to a known
// condition. Callers treat it like a transport failure: retryable, generic.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Do performs an HTTP request
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Map error responses to typed conditions where the code is known
	if resp.StatusCode >= 400 {
		var errResp apierr.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return mapAPIError(resp.StatusCode, errResp.Error)
		}
		return &StatusError{Status: resp.StatusCode, Message: string(respBody)}
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// mapAPIError converts a decoded API error body to a sentinel error, falling
// back to StatusError for codes without a dedicated condition
func mapAPIError(status int, apiError apierr.APIError) error {
	switch apiError.Code {
	case apierr.CodeInvalidCredentials:
		return model.ErrInvalidCredentials
	case apierr.CodeUnauthorized:
		return model.ErrInvalidSession
	case apierr.CodeUsernameExists:
		return model.ErrUsernameExists
	case apierr.CodeEmailExists:
		return model.ErrEmailExists
	case apierr.CodeGameNotFound:
		return model.ErrGameNotFound
	case apierr.CodeItemNotFound:
		return model.ErrItemNotFound
	case apierr.CodeDuplicateItem:
		return model.ErrDuplicateItem
	case apierr.CodeCatalogUnavailable:
		return model.ErrCatalogUnavailable
	}
	return &StatusError{Status: status, Code: apiError.Code, Message: apiError.Message}
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Typed API operations

// tokenResponse mirrors the auth endpoints' response body
type tokenResponse struct {
	Token string `json:"token"`
}

// searchResponse mirrors the search endpoint's response body
type searchResponse struct {
	Results []model.CatalogEntry `json:"results"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	req := request.LoginRequest{Username: username, Password: password}
	if err := c.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns its first bearer token
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	var resp tokenResponse
	req := request.RegisterRequest{Username: username, Email: email, Password: password}
	if err := c.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Profile fetches the current user's profile using the attached token
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.Get(ctx, "/api/auth/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SearchCatalog queries the catalog for games matching the query text
func (c *Client) SearchCatalog(ctx context.Context, query string) ([]model.CatalogEntry, error) {
	var resp searchResponse
	if err := c.Get(ctx, "/api/search?q="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GameDetail fetches the full record for one catalog entry
func (c *Client) GameDetail(ctx context.Context, bggID string) (*model.GameDetail, error) {
	var detail model.GameDetail
	if err := c.Get(ctx, "/api/games/"+url.PathEscape(bggID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListCollection fetches one of the user's two lists
func (c *Client) ListCollection(ctx context.Context, isWishlist bool) ([]model.CollectionItem, error) {
	var items []model.CollectionItem
	path := fmt.Sprintf("/api/collection?is_wishlist=%t", isWishlist)
	if err := c.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCollectionItem submits a new item to one of the user's lists
func (c *Client) AddCollectionItem(ctx context.Context, req request.AddCollectionItemRequest) (*model.CollectionItem, error) {
	var item model.CollectionItem
	if err := c.Post(ctx, "/api/collection", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCollectionItem replaces the notes and/or tags on an item
func (c *Client) UpdateCollectionItem(ctx context.Context, itemID model.ItemID, notes *string, tags []string) (*model.CollectionItem, error) {
	var item model.CollectionItem
	req := request.UpdateCollectionItemRequest{UserNotes: notes, CustomTags: tags}
	if err := c.Put(ctx, "/api/collection/"+url.PathEscape(string(itemID)), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCollectionItem deletes an item from the user's lists
func (c *Client) RemoveCollectionItem(ctx context.Context, itemID model.ItemID) error {
	return c.Delete(ctx, "/api/collection/"+url.PathEscape(string(itemID)))
}
