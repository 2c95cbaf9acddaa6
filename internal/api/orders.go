package api

import (
	"context"
	"net/http"
)

// OrderRequest is the POST /orders body assembled at checkout.
type OrderRequest struct {
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
}

type OrdersClient struct{ c *Client }

func NewOrdersClient(c *Client) *OrdersClient { return &OrdersClient{c: c} }

func (oc *OrdersClient) Create(ctx context.Context, req OrderRequest) (Order, error) {
	var order Order
	if err := oc.c.Do(ctx, http.MethodPost, "/orders", "", req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (oc *OrdersClient) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := oc.c.Do(ctx, http.MethodGet, "/orders", "", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
