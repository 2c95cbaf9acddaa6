// Package catalog fetches the product list and answers filtered views of it
// locally; no server-side filter support is required.
package catalog

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

// Filter is the local re-filtering input. Filters apply in order: name
// substring (case-insensitive), category equality, inclusive price bounds.
type Filter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type ProductsAPI interface {
	List(ctx context.Context, q api.ProductQuery) ([]api.Product, error)
}

type Cache struct {
	api    ProductsAPI
	store  Store
	logger *log.Logger

	mu     sync.Mutex
	filter Filter
}

func NewCache(productsAPI ProductsAPI, store Store, logger *log.Logger) *Cache {
	if store == nil {
		store = NewMemStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{api: productsAPI, store: store, logger: logger}
}

// Refresh replaces the cached base list with a fresh fetch. The query is
// forwarded for optional server-side pre-filtering.
func (c *Cache) Refresh(ctx context.Context, q api.ProductQuery) error {
	products, err := c.api.List(ctx, q)
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, products); err != nil {
		// A dead cache store should not hide a good fetch.
		c.logger.Printf("catalog: save to store: %v", err)
	}
	return nil
}

func (c *Cache) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

// Products returns the cached list with the current filter applied. The
// filtering is pure: the base list in the store is never mutated. When the
// store is cold, the list is fetched first.
func (c *Cache) Products(ctx context.Context) ([]api.Product, error) {
	products, ok, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := c.Refresh(ctx, api.ProductQuery{}); err != nil {
			return nil, err
		}
		if products, _, err = c.store.Load(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	f := c.filter
	c.mu.Unlock()

	return applyFilter(products, f), nil
}

func applyFilter(products []api.Product, f Filter) []api.Product {
	out := make([]api.Product, 0, len(products))
	name := strings.ToLower(f.Name)
	for _, p := range products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}
