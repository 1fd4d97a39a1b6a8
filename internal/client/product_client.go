// Package client implements the product repository client: the translation
// of logical product operations into REST calls against the backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vitrina/internal/models"
)

// ProductAPI defines the logical product operations the dashboard needs.
type ProductAPI interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	GetOne(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, id uint, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	Reset(ctx context.Context) ([]models.Product, error)
}

// HTTPError is returned for any backend response with a 4xx or 5xx status.
// Error bodies are not parsed; the status code is the whole diagnosis.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// SeedProducts is the fixed catalog Reset repopulates the backend with,
// in the order Reset returns them. Prices are CLP.
var SeedProducts = []models.Product{
	{Name: "iPhone 15", Price: 849990, Stock: 10},
	{Name: "MacBook Pro", Price: 2499990, Stock: 5},
	{Name: "iPad Air", Price: 649990, Stock: 15},
	{Name: "Apple Watch Series 9", Price: 399990, Stock: 20},
	{Name: "AirPods Pro", Price: 249990, Stock: 25},
	{Name: "Mac Studio", Price: 1999990, Stock: 3},
}

// ProductClient is the HTTP implementation of ProductAPI.
type ProductClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductClient creates a ProductClient against the given base URL
// (e.g. "http://localhost:8080"). A nil httpClient falls back to a default
// client with the transport's own timeouts.
func NewProductClient(baseURL string, httpClient *http.Client) *ProductClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ProductClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// List retrieves all products. An empty catalog yields an empty slice.
func (c *ProductClient) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Create persists a new product and returns it with its assigned ID.
func (c *ProductClient) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = 0
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOne retrieves a single product by its ID.
func (c *ProductClient) GetOne(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces the product with the given ID wholesale and returns the
// updated record.
func (c *ProductClient) Update(ctx context.Context, id uint, product models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the product with the given ID.
func (c *ProductClient) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// Reset restores the backend to the seed catalog: it deletes every existing
// product concurrently, waits, then creates the seed products concurrently,
// and returns them in seed order with their fresh IDs.
//
// A failed delete or create aborts Reset with the first error; the backend
// may then hold a mix of old and new data. No rollback is attempted.
func (c *ProductClient) Reset(ctx context.Context) ([]models.Product, error) {
	existing, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset: listing existing products: %w", err)
	}

	// Skip the fan-out entirely when there is nothing to delete rather
	// than waiting on an empty group.
	if len(existing) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, p := range existing {
			p := p
			g.Go(func() error {
				return c.Delete(gctx, p.ID)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("reset: deleting existing products: %w", err)
		}
	}

	created := make([]models.Product, len(SeedProducts))
	g, gctx := errgroup.WithContext(ctx)
	for i, seed := range SeedProducts {
		i, seed := i, seed
		g.Go(func() error {
			p, err := c.Create(gctx, seed)
			if err != nil {
				return err
			}
			created[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reset: creating seed products: %w", err)
	}
	return created, nil
}

// do issues one request. in is marshaled as the JSON body when non-nil; out
// is filled from the response body when non-nil. Any 4xx/5xx status becomes
// an *HTTPError.
func (c *ProductClient) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &HTTPError{Status: resp.StatusCode}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}
