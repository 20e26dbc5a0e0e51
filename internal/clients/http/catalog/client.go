package catalog

import (
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

	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIKeyHeader authenticates requests against the product API.
const APIKeyHeader = "X-API-Key"

// ErrNotFound is returned when the product API answers 404.
var ErrNotFound = errors.New("product API: not found")

// FallbackCategories is served when the categories endpoint is unavailable.
var FallbackCategories = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books", "Health & Beauty"}

// ProductPayload is the product API wire shape.
type ProductPayload struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating,omitempty"`
}

// PagePayload is the paginated listing envelope.
type PagePayload struct {
	Content       []ProductPayload `json:"content"`
	TotalElements int              `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
}

// ListParams map onto the listing query string.
type ListParams struct {
	Page     *int
	Size     *int
	Search   string
	Category string
	SortBy   string
	SortDir  string
}

// StatusError carries a non-2xx response from the product API.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("product API error: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("product API error: %s", e.Status)
}

// Client talks to the remote product API.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a product API client. A nil httpClient gets a 5s timeout and an
// OpenTelemetry-instrumented transport.
func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("product API base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse product API base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: parsed, apiKey: strings.TrimSpace(apiKey), httpClient: httpClient}, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*ProductPayload, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return nil, fmt.Errorf("encode product id: %w", err)
	}
	var payload ProductPayload
	if err := c.get(ctx, "/products/"+pathParam, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListProducts fetches one page of the catalog listing.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*PagePayload, error) {
	query := url.Values{}
	if params.Page != nil {
		query.Set("page", strconv.Itoa(*params.Page))
	}
	if params.Size != nil {
		query.Set("size", strconv.Itoa(*params.Size))
	}
	setIfPresent(query, "search", params.Search)
	setIfPresent(query, "category", params.Category)
	setIfPresent(query, "sortBy", params.SortBy)
	setIfPresent(query, "sortDir", params.SortDir)

	var payload PagePayload
	if err := c.get(ctx, "/products", query, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Categories lists product categories, falling back to FallbackCategories on failure.
func (c *Client) Categories(ctx context.Context) []string {
	var categories []string
	if err := c.get(ctx, "/products/categories", nil, &categories); err != nil || len(categories) == 0 {
		return append([]string(nil), FallbackCategories...)
	}
	return categories
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("product API client not configured")
	}
	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build product API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call product API: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return &StatusError{StatusCode: res.StatusCode, Status: res.Status, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode product API response: %w", err)
	}
	return nil
}

func setIfPresent(values url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		values.Set(key, value)
	}
}
