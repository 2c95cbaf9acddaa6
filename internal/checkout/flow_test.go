package checkout

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

type ordersAPIMock struct {
	createFunc  func(ctx context.Context, req api.OrderRequest) (api.Order, error)
	listFunc    func(ctx context.Context) ([]api.Order, error)
	createCalls int
}

func (m *ordersAPIMock) Create(ctx context.Context, req api.OrderRequest) (api.Order, error) {
	m.createCalls++
	return m.createFunc(ctx, req)
}

func (m *ordersAPIMock) List(ctx context.Context) ([]api.Order, error) {
	return m.listFunc(ctx)
}

type cartResetterMock struct{ resets int }

func (c *cartResetterMock) ResetLocal() { c.resets++ }

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

var items = []api.CartItem{
	{ID: 1, ProductID: 7, Quantity: 2, Product: api.Product{ID: 7, Price: 10}},
}

func validForm() Form {
	return Form{CustomerName: "Ivan", Phone: "+7 900 000 00 00", Address: "Main street 1"}
}

func TestSubmitValidation(t *testing.T) {
	tests := map[string]Form{
		"missing name":    {Phone: "1", Address: "a"},
		"missing phone":   {CustomerName: "n", Address: "a"},
		"missing address": {CustomerName: "n", Phone: "1"},
		"blank name":      {CustomerName: "   ", Phone: "1", Address: "a"},
	}

	for name, form := range tests {
		t.Run(name, func(t *testing.T) {
			m := &ordersAPIMock{}
			cart := &cartResetterMock{}
			flow := NewFlow(m, cart, quiet())

			_, err := flow.Submit(context.Background(), form, items)
			assert.True(t, api.IsKind(err, api.KindValidation), "got %v", err)
			assert.Zero(t, m.createCalls, "validation failures must not reach the network")
			assert.Zero(t, cart.resets)
		})
	}

	t.Run("empty cart", func(t *testing.T) {
		m := &ordersAPIMock{}
		flow := NewFlow(m, &cartResetterMock{}, quiet())

		_, err := flow.Submit(context.Background(), validForm(), nil)
		assert.True(t, api.IsKind(err, api.KindValidation))
		assert.Zero(t, m.createCalls)
	})
}

func TestSubmitSuccess(t *testing.T) {
	var gotReq api.OrderRequest
	m := &ordersAPIMock{createFunc: func(ctx context.Context, req api.OrderRequest) (api.Order, error) {
		gotReq = req
		return api.Order{ID: 501, Items: []api.OrderItem{{ProductID: 7, Quantity: 2}}}, nil
	}}
	cart := &cartResetterMock{}
	flow := NewFlow(m, cart, quiet())

	order, err := flow.Submit(context.Background(), validForm(), items)
	require.NoError(t, err)
	assert.Equal(t, int64(501), order.ID)

	require.Len(t, gotReq.Items, 1)
	assert.Equal(t, int64(7), gotReq.Items[0].ProductID)
	assert.Equal(t, 10.0, gotReq.Items[0].Price)

	assert.Equal(t, 1, cart.resets, "cart must be emptied after a confirmed order")

	select {
	case done := <-flow.Done():
		assert.Equal(t, int64(501), done.ID)
	default:
		t.Fatal("expected a completion signal on Done")
	}
}

func TestSubmitServerFailure(t *testing.T) {
	m := &ordersAPIMock{createFunc: func(ctx context.Context, req api.OrderRequest) (api.Order, error) {
		return api.Order{}, &api.Error{Kind: api.KindRemote, Status: 500, Message: "insufficient stock"}
	}}
	cart := &cartResetterMock{}
	flow := NewFlow(m, cart, quiet())

	_, err := flow.Submit(context.Background(), validForm(), items)
	require.Error(t, err)
	assert.Equal(t, "insufficient stock", err.Error(), "server message surfaced verbatim")
	assert.Zero(t, cart.resets, "cart untouched on failure")

	select {
	case <-flow.Done():
		t.Fatal("no completion signal on failure")
	default:
	}
}

func TestHistory(t *testing.T) {
	want := []api.Order{{ID: 1}, {ID: 2}}
	m := &ordersAPIMock{listFunc: func(ctx context.Context) ([]api.Order, error) {
		return want, nil
	}}
	flow := NewFlow(m, &cartResetterMock{}, quiet())

	got, err := flow.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
