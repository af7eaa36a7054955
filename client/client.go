// Package client is a Go client for the storefront API. It carries the
// session state the browser front end kept client-side: the bearer
// token, the logged-in profile, and the capability check that redirects
// unauthenticated navigation before any request is made.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/freshfruit/storefront/models"
	"github.com/freshfruit/storefront/services"
)

// ErrUnauthenticated is returned by guarded calls made with no session
// token, before any request is sent.
var ErrUnauthenticated = errors.New("not logged in")

// APIError is a non-2xx response from the storefront.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: status=%d message=%s", e.StatusCode, e.Message)
}

// Client talks to the storefront API and maintains a Session.
type Client struct {
	baseURL string
	client  *http.Client
	session *Session
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		session: NewSession(),
	}
}

// Session exposes the client's session state.
func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.PublicUser, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out struct {
		User models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", body, false, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and populates the session on success.
func (c *Client) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, false, &out); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, out.User)
	return &out.User, nil
}

// Logout tells the server goodbye and clears the session. The server
// call is a stateless acknowledgement; clearing is what logs out.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, false, nil)
	c.session.Clear()
	return err
}

// Me fetches the account behind the session token.
func (c *Client) Me(ctx context.Context) (*models.PublicUser, error) {
	var out struct {
		User models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, true, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Products fetches the catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches one catalog entry.
func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists the session user's orders, oldest first.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder submits a checkout with the cart snapshot and the
// client-computed total.
func (c *Client) CreateOrder(ctx context.Context, req services.CreateOrderRequest) (*models.Order, error) {
	var out struct {
		OK    bool         `json:"ok"`
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, true, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, guarded bool, out interface{}) error {
	token := c.session.Token()
	if guarded && token == "" {
		return ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if guarded {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &errBody)
		if errBody.Error == "" {
			errBody.Error = string(data)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
