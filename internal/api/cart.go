package api

import (
	"context"
	"net/http"
	"strconv"
)

type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

func (cc *CartClient) Get(ctx context.Context) ([]CartItem, error) {
	var res struct {
		Items []CartItem `json:"items"`
	}
	if err := cc.c.Do(ctx, http.MethodGet, "/cart", "", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Create asks the server to open an empty cart for the current user. Used by
// the missing-cart recovery path.
func (cc *CartClient) Create(ctx context.Context) error {
	return cc.c.Do(ctx, http.MethodPost, "/cart", "", nil, nil)
}

func (cc *CartClient) Add(ctx context.Context, productID int64, quantity int) (CartItem, error) {
	body := struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	var item CartItem
	if err := cc.c.Do(ctx, http.MethodPost, "/cart/add", "", body, &item); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (cc *CartClient) Update(ctx context.Context, cartItemID int64, quantity int) (CartItem, error) {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	var item CartItem
	path := "/cart/update/" + strconv.FormatInt(cartItemID, 10)
	if err := cc.c.Do(ctx, http.MethodPut, path, "", body, &item); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (cc *CartClient) Remove(ctx context.Context, cartItemID int64) error {
	path := "/cart/remove/" + strconv.FormatInt(cartItemID, 10)
	return cc.c.Do(ctx, http.MethodDelete, path, "", nil, nil)
}

func (cc *CartClient) ClearAll(ctx context.Context, userID string) error {
	return cc.c.Do(ctx, http.MethodDelete, "/cart/clear/"+userID, "", nil, nil)
}
