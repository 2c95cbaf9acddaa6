// Package checkout collects the order form, submits it, and clears the cart
// once the server confirms.
package checkout

import (
	"context"
	"log"
	"strings"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

// Form is the checkout input; every field is required.
type Form struct {
	CustomerName string
	Phone        string
	Address      string
}

type OrdersAPI interface {
	Create(ctx context.Context, req api.OrderRequest) (api.Order, error)
	List(ctx context.Context) ([]api.Order, error)
}

// CartResetter is the slice of the cart synchronizer checkout needs: the
// server empties its cart as part of order creation, so only the local
// mirror is dropped.
type CartResetter interface {
	ResetLocal()
}

type Flow struct {
	orders OrdersAPI
	cart   CartResetter
	logger *log.Logger
	done   chan api.Order
}

func NewFlow(orders OrdersAPI, cart CartResetter, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.Default()
	}
	return &Flow{orders: orders, cart: cart, logger: logger, done: make(chan api.Order, 1)}
}

// Submit validates the form locally, creates the order, and on success
// clears the local cart and emits a completion signal on Done. Validation
// failures never reach the network.
func (f *Flow) Submit(ctx context.Context, form Form, items []api.CartItem) (api.Order, error) {
	if err := validate(form); err != nil {
		return api.Order{}, err
	}
	if len(items) == 0 {
		return api.Order{}, api.Validation("cart is empty")
	}

	req := api.OrderRequest{
		CustomerName: form.CustomerName,
		Phone:        form.Phone,
		Address:      form.Address,
		Items:        make([]api.OrderItem, 0, len(items)),
	}
	for _, it := range items {
		req.Items = append(req.Items, api.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}

	order, err := f.orders.Create(ctx, req)
	if err != nil {
		return api.Order{}, err
	}

	f.cart.ResetLocal()
	f.logger.Printf("checkout: order %d created", order.ID)

	// Completion signal; the consumer may already have gone away.
	select {
	case f.done <- order:
	default:
	}
	return order, nil
}

// Done signals completed orders; the UI uses it to offer navigation to the
// order history.
func (f *Flow) Done() <-chan api.Order { return f.done }

// History returns the read-only order list for display.
func (f *Flow) History(ctx context.Context) ([]api.Order, error) {
	return f.orders.List(ctx)
}

func validate(form Form) error {
	switch {
	case strings.TrimSpace(form.CustomerName) == "":
		return api.Validation("customer name is required")
	case strings.TrimSpace(form.Phone) == "":
		return api.Validation("phone is required")
	case strings.TrimSpace(form.Address) == "":
		return api.Validation("address is required")
	}
	return nil
}
