package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

// Top-level product categories.
const (
	CategoryFood         = "Food"
	CategoryPersonalCare = "Personal Care"
	CategoryHomeCleaning = "Home Cleaning"
)

const (
	defaultProductName = "Unknown Product"
	defaultBrand       = "Unknown Brand"
)

// ProductInfo is a product as reported by an external catalog.
type ProductInfo struct {
	Name           string
	Brand          string
	Ingredients    string
	Category       string
	SourceCategory string
	ImageURL       string
	Source         string
}

// ProductSource looks products up by barcode. A product the source does
// not know is nil, nil.
type ProductSource interface {
	Name() string
	Lookup(ctx context.Context, barcode string) (*ProductInfo, error)
}

// OpenFactsClient talks to one of the Open Food Facts family of APIs.
type OpenFactsClient struct {
	name       string
	baseURL    string
	userAgent  string
	category   string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

type OpenFactsOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Requests per second; zero or less means unlimited.
	RequestsPerSecond float64
	Metrics           *metrics.Metrics
}

func newOpenFactsClient(name, category string, opts OpenFactsOptions) *OpenFactsClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &OpenFactsClient{
		name:       name,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		category:   category,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		metrics:    opts.Metrics,
	}
}

// NewOpenFoodFactsClient returns a client whose hits are food products.
func NewOpenFoodFactsClient(opts OpenFactsOptions) *OpenFactsClient {
	return newOpenFactsClient(store.SourceOpenFoodFacts, CategoryFood, opts)
}

// NewOpenBeautyFactsClient returns a client whose hits are personal care
// products.
func NewOpenBeautyFactsClient(opts OpenFactsOptions) *OpenFactsClient {
	return newOpenFactsClient(store.SourceOpenBeautyFacts, CategoryPersonalCare, opts)
}

func (c *OpenFactsClient) Name() string { return c.name }

type openFactsResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName     string `json:"product_name"`
		Brands          string `json:"brands"`
		Categories      string `json:"categories"`
		IngredientsText string `json:"ingredients_text"`
		ImageURL        string `json:"image_url"`
	} `json:"product"`
}

func (c *OpenFactsClient) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	start := time.Now()
	info, err := c.lookup(ctx, barcode)
	outcome := "hit"
	switch {
	case err != nil:
		outcome = "error"
	case info == nil:
		outcome = "miss"
	}
	c.metrics.ObserveExternal(c.name, outcome, time.Since(start))
	return info, err
}

func (c *OpenFactsClient) lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	data, status, err := c.doReq(ctx, http.MethodGet, "/api/v0/product/"+barcode+".json")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	var resp openFactsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode product: %w", c.name, err)
	}
	if resp.Status != 1 || resp.Product == nil {
		return nil, nil
	}
	p := resp.Product
	info := &ProductInfo{
		Name:           strings.TrimSpace(p.ProductName),
		Brand:          strings.TrimSpace(p.Brands),
		Ingredients:    strings.TrimSpace(p.IngredientsText),
		Category:       c.category,
		SourceCategory: p.Categories,
		ImageURL:       p.ImageURL,
		Source:         c.name,
	}
	if info.Name == "" {
		info.Name = defaultProductName
	}
	if info.Brand == "" {
		info.Brand = defaultBrand
	}
	return info, nil
}

func (c *OpenFactsClient) doReq(ctx context.Context, method, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return nil, resp.StatusCode, fmt.Errorf("%s %s %s: %d %s", c.name, method, path, resp.StatusCode, string(body))
	}
	return body, resp.StatusCode, nil
}
