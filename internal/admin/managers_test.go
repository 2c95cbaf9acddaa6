package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

// newAdminFixture spins up a stub of the /admin endpoints and returns a
// client against it plus a request counter.
func newAdminFixture(t *testing.T, handler http.HandlerFunc) (*api.AdminClient, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return api.NewAdminClient(api.NewClient(srv.URL, srv.Client(), nil)), &calls
}

func decline() Confirmer { return ConfirmFunc(func(string) bool { return false }) }

func TestProductsDeleteDeclined(t *testing.T) {
	client, calls := newAdminFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	p := NewProducts(client, decline())

	err := p.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, calls.Load(), "declined delete must not reach the network")
}

func TestProductsCRUD(t *testing.T) {
	products := map[int64]api.Product{
		1: {ID: 1, Name: "old", Price: 5, Category: "Футболки"},
	}
	var nextID atomic.Int64
	nextID.Store(1)

	client, _ := newAdminFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			out := make([]api.Product, 0, len(products))
			for _, p := range products {
				out = append(out, p)
			}
			_ = json.NewEncoder(w).Encode(out)
		case r.Method == http.MethodPost:
			var fields api.ProductFields
			_ = json.NewDecoder(r.Body).Decode(&fields)
			p := api.Product{ID: nextID.Add(1), Name: fields.Name, Price: fields.Price, Category: fields.Category}
			products[p.ID] = p
			_ = json.NewEncoder(w).Encode(p)
		case r.Method == http.MethodPut:
			var fields api.ProductFields
			_ = json.NewDecoder(r.Body).Decode(&fields)
			p := api.Product{ID: 1, Name: fields.Name, Price: fields.Price, Category: fields.Category}
			products[1] = p
			_ = json.NewEncoder(w).Encode(p)
		case r.Method == http.MethodDelete:
			delete(products, 1)
			w.WriteHeader(http.StatusOK)
		}
	})

	mgr := NewProducts(client, AutoConfirm)

	listed, err := mgr.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	created, err := mgr.Create(context.Background(), api.ProductFields{Name: "new", Price: 10, Category: "Шорты"})
	require.NoError(t, err)
	assert.Len(t, mgr.Cached(), 2, "create appends to the local records")

	updated, err := mgr.Update(context.Background(), 1, api.ProductFields{Name: "renamed", Price: 6, Category: "Футболки"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	for _, p := range mgr.Cached() {
		if p.ID == 1 {
			assert.Equal(t, "renamed", p.Name, "update replaces the record in place")
		}
		if p.ID == created.ID {
			assert.Equal(t, "new", p.Name)
		}
	}

	require.NoError(t, mgr.Delete(context.Background(), 1))
	for _, p := range mgr.Cached() {
		assert.NotEqual(t, int64(1), p.ID, "delete removes the record")
	}
}

func TestUsersPromote(t *testing.T) {
	t.Run("declined promote makes no call", func(t *testing.T) {
		client, calls := newAdminFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		u := NewUsers(client, decline())

		assert.ErrorIs(t, u.Promote(context.Background(), 3), ErrDeclined)
		assert.Zero(t, calls.Load())
	})

	t.Run("confirmed promote updates the cached role", func(t *testing.T) {
		client, _ := newAdminFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				_ = json.NewEncoder(w).Encode([]api.User{{ID: 3, Email: "u@shop.io", Role: "USER"}})
				return
			}
			assert.Equal(t, "/auth/promote-to-admin/3", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		u := NewUsers(client, AutoConfirm)

		_, err := u.List(context.Background())
		require.NoError(t, err)
		require.NoError(t, u.Promote(context.Background(), 3))

		cached := u.Cached()
		require.Len(t, cached, 1)
		assert.Equal(t, "ADMIN", cached[0].Role)
	})
}

func TestOrdersSetStatus(t *testing.T) {
	client, _ := newAdminFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode([]api.Order{{ID: 9, Status: "NEW"}})
			return
		}
		require.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/admin/orders/9/status", r.URL.Path)
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(api.Order{ID: 9, Status: body.Status})
	})
	o := NewOrders(client)

	_, err := o.List(context.Background())
	require.NoError(t, err)

	updated, err := o.SetStatus(context.Background(), 9, "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", updated.Status)

	cached := o.Cached()
	require.Len(t, cached, 1)
	assert.Equal(t, "SHIPPED", cached[0].Status)
}
