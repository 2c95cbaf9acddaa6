package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

type Users struct {
	api     *api.AdminClient
	confirm Confirmer

	mu    sync.Mutex
	items []api.User
}

func NewUsers(client *api.AdminClient, confirm Confirmer) *Users {
	if confirm == nil {
		confirm = AutoConfirm
	}
	return &Users{api: client, confirm: confirm}
}

func (u *Users) List(ctx context.Context) ([]api.User, error) {
	users, err := u.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.items = users
	u.mu.Unlock()
	return users, nil
}

func (u *Users) Delete(ctx context.Context, id int64) error {
	if !u.confirm.Confirm(fmt.Sprintf("delete user %d", id)) {
		return ErrDeclined
	}
	if err := u.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	u.mu.Lock()
	kept := u.items[:0]
	for _, it := range u.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	u.items = kept
	u.mu.Unlock()
	return nil
}

// Promote elevates a user to ADMIN. Role promotion is destructive enough to
// sit behind the same confirmation gate as delete.
func (u *Users) Promote(ctx context.Context, id int64) error {
	if !u.confirm.Confirm(fmt.Sprintf("promote user %d to admin", id)) {
		return ErrDeclined
	}
	if err := u.api.PromoteUser(ctx, id); err != nil {
		return err
	}
	u.mu.Lock()
	for i := range u.items {
		if u.items[i].ID == id {
			u.items[i].Role = session.RoleAdmin
			break
		}
	}
	u.mu.Unlock()
	return nil
}

func (u *Users) Cached() []api.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]api.User, len(u.items))
	copy(out, u.items)
	return out
}
