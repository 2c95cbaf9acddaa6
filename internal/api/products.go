package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ProductQuery carries the optional server-side filters of GET /products.
type ProductQuery struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	return v.Encode()
}

type ProductsClient struct{ c *Client }

func NewProductsClient(c *Client) *ProductsClient { return &ProductsClient{c: c} }

func (pc *ProductsClient) List(ctx context.Context, q ProductQuery) ([]Product, error) {
	var products []Product
	if err := pc.c.Do(ctx, http.MethodGet, "/products", q.encode(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (pc *ProductsClient) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	if err := pc.c.Do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), "", nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}
