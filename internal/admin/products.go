// Package admin holds the privileged CRUD managers over the /admin
// endpoints. The managers attach the caller's bearer token but do not
// re-verify the role; that gate lives in the app container.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

type Products struct {
	api     *api.AdminClient
	confirm Confirmer

	mu    sync.Mutex
	items []api.Product
}

func NewProducts(client *api.AdminClient, confirm Confirmer) *Products {
	if confirm == nil {
		confirm = AutoConfirm
	}
	return &Products{api: client, confirm: confirm}
}

func (p *Products) List(ctx context.Context) ([]api.Product, error) {
	products, err := p.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.items = products
	p.mu.Unlock()
	return products, nil
}

func (p *Products) Create(ctx context.Context, fields api.ProductFields) (api.Product, error) {
	created, err := p.api.CreateProduct(ctx, fields)
	if err != nil {
		return api.Product{}, err
	}
	p.mu.Lock()
	p.items = append(p.items, created)
	p.mu.Unlock()
	return created, nil
}

func (p *Products) Update(ctx context.Context, id int64, fields api.ProductFields) (api.Product, error) {
	updated, err := p.api.UpdateProduct(ctx, id, fields)
	if err != nil {
		return api.Product{}, err
	}
	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == id {
			p.items[i] = updated
			break
		}
	}
	p.mu.Unlock()
	return updated, nil
}

func (p *Products) Delete(ctx context.Context, id int64) error {
	if !p.confirm.Confirm(fmt.Sprintf("delete product %d", id)) {
		return ErrDeclined
	}
	if err := p.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	p.mu.Lock()
	kept := p.items[:0]
	for _, it := range p.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	p.items = kept
	p.mu.Unlock()
	return nil
}

// Cached returns the local record list from the last List call, adjusted by
// create/update/delete responses since.
func (p *Products) Cached() []api.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]api.Product, len(p.items))
	copy(out, p.items)
	return out
}
