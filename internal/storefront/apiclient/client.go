// Package apiclient is the storefront's typed client for the REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/api/dto"
)

// DefaultErrorMessage is shown when the API gives no usable error text.
const DefaultErrorMessage = "Something went wrong, please try again"

// APIError is a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message returns the text to show a visitor for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return DefaultErrorMessage
}

// Client calls the REST API through AuthTransport.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL. Every call is bounded by timeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return NewWithTransport(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: &AuthTransport{Base: http.DefaultTransport, Logger: logger},
	})
}

// NewWithTransport creates a client around an existing http.Client.
func NewWithTransport(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Signup registers an account and returns the API's confirmation message.
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (string, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts returns the catalog visible to the caller, optionally filtered.
func (c *Client) ListProducts(ctx context.Context, search string) ([]dto.ProductResponse, error) {
	path := "/api/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var resp []dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	var resp dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProduct adds a product for the signed in seller.
func (c *Client) CreateProduct(ctx context.Context, req dto.ProductRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/products", req)
}

// UpdateProduct edits a product of the signed in seller.
func (c *Client) UpdateProduct(ctx context.Context, id int64, req dto.ProductRequest) (string, error) {
	return c.message(ctx, http.MethodPut, productPath(id), req)
}

// DeleteProduct removes a product of the signed in seller.
func (c *Client) DeleteProduct(ctx context.Context, id int64) (string, error) {
	return c.message(ctx, http.MethodDelete, productPath(id), nil)
}

// AddToCart puts quantity units of productID into the buyer's cart.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: productID, Quantity: quantity})
}

// RemoveFromCart drops productID from the buyer's cart.
func (c *Client) RemoveFromCart(ctx context.Context, productID int64) (string, error) {
	return c.message(ctx, http.MethodDelete, "/api/cart/"+strconv.FormatInt(productID, 10), nil)
}

// Cart returns the buyer's cart lines.
func (c *Client) Cart(ctx context.Context) ([]dto.CartItemResponse, error) {
	var resp []dto.CartItemResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CartCount returns the total quantity in the buyer's cart.
func (c *Client) CartCount(ctx context.Context) (int, error) {
	var resp dto.CartCountResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.CartItemCount, nil
}

func productPath(id int64) string {
	return "/api/products/" + strconv.FormatInt(id, 10)
}

func (c *Client) message(ctx context.Context, method, path string, body any) (string, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		msg := envelope.Error
		if msg == "" {
			msg = envelope.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
