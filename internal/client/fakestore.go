package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fakestore/shop/internal/config"
	"fakestore/shop/internal/domain"
	"fakestore/shop/internal/proxy"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// CatalogClient reads the product list from the remote store API
type CatalogClient interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	Close() error
}

type fakeStoreClient struct {
	baseURL    string
	httpClient *resty.Client
}

func NewCatalogClient(cfg config.CatalogConfig, proxySupplier proxy.Supplier) CatalogClient {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "fakestore-shop/1.0")

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	return &fakeStoreClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: client,
	}
}

// GetProducts fetches the whole catalog in one request, unsorted
func (c *fakeStoreClient) GetProducts(ctx context.Context) ([]domain.Product, error) {
	url := c.baseURL + "/products"

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(resp.String()), &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	log.Debugf("Fetched %d products from %s", len(products), url)
	return products, nil
}

// Close releases the idle connections held by the HTTP client
func (c *fakeStoreClient) Close() error {
	return c.httpClient.Close()
}
