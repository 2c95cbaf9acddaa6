package api

import (
	"context"
	"net/http"
	"strconv"
)

// AdminClient covers the /admin endpoints plus the promote-to-admin call.
// Every request rides on the caller's bearer token; the server enforces the
// ADMIN role.
type AdminClient struct{ c *Client }

func NewAdminClient(c *Client) *AdminClient { return &AdminClient{c: c} }

func (a *AdminClient) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := a.c.Do(ctx, http.MethodGet, "/admin/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *AdminClient) CreateProduct(ctx context.Context, fields ProductFields) (Product, error) {
	var p Product
	if err := a.c.Do(ctx, http.MethodPost, "/admin/products", "", fields, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (a *AdminClient) UpdateProduct(ctx context.Context, id int64, fields ProductFields) (Product, error) {
	var p Product
	path := "/admin/products/" + strconv.FormatInt(id, 10)
	if err := a.c.Do(ctx, http.MethodPut, path, "", fields, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (a *AdminClient) DeleteProduct(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodDelete, "/admin/products/"+strconv.FormatInt(id, 10), "", nil, nil)
}

func (a *AdminClient) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := a.c.Do(ctx, http.MethodGet, "/admin/users", "", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *AdminClient) DeleteUser(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodDelete, "/admin/users/"+strconv.FormatInt(id, 10), "", nil, nil)
}

func (a *AdminClient) PromoteUser(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodPost, "/auth/promote-to-admin/"+strconv.FormatInt(id, 10), "", nil, nil)
}

func (a *AdminClient) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := a.c.Do(ctx, http.MethodGet, "/admin/orders", "", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *AdminClient) SetOrderStatus(ctx context.Context, id int64, status string) (Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var order Order
	path := "/admin/orders/" + strconv.FormatInt(id, 10) + "/status"
	if err := a.c.Do(ctx, http.MethodPatch, path, "", body, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}
