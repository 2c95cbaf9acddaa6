package admin

import (
	"context"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

type Orders struct {
	api *api.AdminClient

	mu    sync.Mutex
	items []api.Order
}

func NewOrders(client *api.AdminClient) *Orders {
	return &Orders{api: client}
}

func (o *Orders) List(ctx context.Context) ([]api.Order, error) {
	orders, err := o.api.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.items = orders
	o.mu.Unlock()
	return orders, nil
}

// SetStatus moves an order through fulfillment; the response replaces the
// local record in place.
func (o *Orders) SetStatus(ctx context.Context, id int64, status string) (api.Order, error) {
	updated, err := o.api.SetOrderStatus(ctx, id, status)
	if err != nil {
		return api.Order{}, err
	}
	o.mu.Lock()
	for i := range o.items {
		if o.items[i].ID == id {
			o.items[i] = updated
			break
		}
	}
	o.mu.Unlock()
	return updated, nil
}

func (o *Orders) Cached() []api.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]api.Order, len(o.items))
	copy(out, o.items)
	return out
}
