package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCartNotFound(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"english phrase":        {&Error{Kind: KindRemote, Status: 400, Message: "Cart not found"}, true},
		"localized phrase":      {&Error{Kind: KindRemote, Status: 400, Message: "Корзина не найдена"}, true},
		"plain 404":             {&Error{Kind: KindNotFound, Status: 404, Message: "whatever"}, true},
		"wrapped api error":     {fmt.Errorf("refresh: %w", &Error{Kind: KindNotFound, Status: 404}), true},
		"unrelated server fail": {&Error{Kind: KindRemote, Status: 500, Message: "db down"}, false},
		"plain go error":        {errors.New("cart not found"), false},
		"nil":                   {nil, false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCartNotFound(tc.err))
		})
	}
}

func TestIsKind(t *testing.T) {
	err := Validation("quantity must be positive")
	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindRemote))
	assert.False(t, IsKind(errors.New("x"), KindValidation))

	wrapped := fmt.Errorf("add item: %w", Unauthenticated("login required"))
	assert.True(t, IsKind(wrapped, KindUnauthenticated))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unauthenticated", KindUnauthenticated.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "remote", KindRemote.String())
}
