// Package api implements the typed HTTP client for the product catalog API.
// It builds authenticated JSON requests against a single base URL and maps
// responses into typed results or typed errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ilyakh/ShopKeeper/internal/models"
)

// TokenKey is the credential store key under which the bearer token lives.
const TokenKey = "authToken"

// CredentialStore defines the credential persistence operations required
// by the client.
type CredentialStore interface {
	// Set stores value under key, overwriting any existing entry.
	Set(key string, value []byte) error
	// Get returns the value for key; absence is reported via the bool.
	Get(key string) ([]byte, bool, error)
	// Remove deletes the entry for key; absent keys are not an error.
	Remove(key string) error
	// ClearAll deletes every entry in the store's namespace.
	ClearAll() error
}

// SessionStore defines the session record operations required by the client.
type SessionStore interface {
	// Record inserts a SessionUser row.
	Record(id int64, name string) error
	// Current returns the first stored record, or nil.
	Current() (*models.SessionUser, error)
	// Clear deletes all records.
	Clear() error
}

// Client issues requests for the catalog API operations. Each call performs
// one request and produces exactly one result: a typed value or a typed
// error. There is no retry; failures are terminal for that call.
type Client struct {
	http     *http.Client
	baseURL  string
	creds    CredentialStore
	sessions SessionStore
	log      *zap.Logger
}

// New constructs a Client against baseURL using the provided stores.
// The stores must already be opened by the surrounding application.
func New(baseURL string, creds CredentialStore, sessions SessionStore, log *zap.Logger) *Client {
	return &Client{
		http:     &http.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		creds:    creds,
		sessions: sessions,
		log:      log,
	}
}

// newRequest builds a request for path. A non-nil body is serialized as
// JSON. When auth is set, the bearer token is attached if present; an
// absent token is not pre-validated, the server rejects the call instead.
func (c *Client) newRequest(ctx context.Context, method, path string, auth bool, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &EncodeError{Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token, ok, err := c.creds.Get(TokenKey)
		if err != nil {
			c.log.Warn("failed to read auth token", zap.Error(err))
		} else if ok {
			req.Header.Set("Authorization", "Bearer "+string(token))
		}
	}
	return req, nil
}

// do issues the request and checks the status against the accepted set.
func (c *Client) do(req *http.Request, accepted ...int) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for _, code := range accepted {
		if resp.StatusCode == code {
			return resp, nil
		}
	}
	resp.Body.Close()
	return nil, &InvalidResponseError{Status: resp.StatusCode}
}

// Login authenticates with the given credentials. On success the bearer
// token and a SessionUser record are persisted as a side effect; those
// writes are best-effort relative to the authentication result and are
// logged on failure.
func (c *Client) Login(ctx context.Context, in models.LoginRequest) (*models.LoginResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/signin", false, in)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	c.persistAuth(out.ID, in.Username, out.Token)
	return &out, nil
}

// Register creates a new account. Side effects match Login.
func (c *Client) Register(ctx context.Context, in models.RegistrationRequest) (*models.RegistrationResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/signup", false, in)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.RegistrationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	c.persistAuth(out.ID, in.Username, out.Token)
	return &out, nil
}

// Products lists the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/products", true, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return out, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), true, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &out, nil
}

// productBody is the request payload for create and update: the id is
// server-owned and never sent.
type productBody struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// CreateProduct creates a new product and returns the server record.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	body := productBody{Name: p.Name, Price: p.Price, Description: p.Description}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/products", true, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &out, nil
}

// UpdateProduct replaces the product identified by p.ID. A 200 response
// carries the updated record; on 204 the locally supplied product is echoed
// back unchanged.
func (c *Client) UpdateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	body := productBody{Name: p.Name, Price: p.Price, Description: p.Description}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), true, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.StatusOK, http.StatusNoContent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return &p, nil
	}
	var out models.Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &out, nil
}

// DeleteProduct removes the product by id. No local state is mutated.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), true, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req, http.StatusOK, http.StatusNoContent)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// CurrentUser returns the locally recorded session user, or nil if no
// session has been recorded.
func (c *Client) CurrentUser() (*models.SessionUser, error) {
	u, err := c.sessions.Current()
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return u, nil
}

// Logout clears the stored credential and all session records.
func (c *Client) Logout() error {
	if err := c.creds.ClearAll(); err != nil {
		return &StorageError{Err: err}
	}
	if err := c.sessions.Clear(); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

// persistAuth stores the token and records the session user after a
// successful login or registration. Failures here must not turn the
// authentication success into an error.
func (c *Client) persistAuth(id int64, username, token string) {
	if err := c.creds.Set(TokenKey, []byte(token)); err != nil {
		c.log.Warn("failed to store auth token", zap.Error(err))
	}
	if err := c.sessions.Record(id, username); err != nil {
		c.log.Warn("failed to record session user", zap.Error(err))
	}
}
