// Package cart mirrors the server-side cart into local state and keeps the
// two consistent across reloads, missing-cart recovery, and rapid quantity
// edits.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

// Status is the synchronizer's position in its lifecycle:
// Empty -> Loading -> {Ready, Missing, Failed}.
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusReady
	StatusMissing
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return "empty"
	}
}

// ErrClosed is returned for operations issued, or resolving, after Close.
// Late responses are discarded rather than applied to stale state.
var ErrClosed = errors.New("cart: synchronizer closed")

// API is the slice of the cart endpoints the synchronizer drives.
type API interface {
	Get(ctx context.Context) ([]api.CartItem, error)
	Create(ctx context.Context) error
	Add(ctx context.Context, productID int64, quantity int) (api.CartItem, error)
	Update(ctx context.Context, cartItemID int64, quantity int) (api.CartItem, error)
	Remove(ctx context.Context, cartItemID int64) error
	ClearAll(ctx context.Context, userID string) error
}

// Session is what the synchronizer needs to know about the current user.
type Session interface {
	IsAuthenticated() bool
	UserID() string
}

// State is an observable snapshot of the cart.
type State struct {
	Status Status
	Items  []api.CartItem
	Err    string
}

func (s State) Loading() bool { return s.Status == StatusLoading }

// Synchronizer serializes every cart operation through one queue per cart
// identity, so rapid +/- edits cannot race each other into lost updates.
type Synchronizer struct {
	api    API
	sess   Session
	logger *log.Logger

	// opMu is the single-flight queue: one in-flight request per cart.
	opMu sync.Mutex

	mu     sync.Mutex
	status Status
	items  []api.CartItem
	errMsg string
	closed bool

	created bool // one-shot guard for missing-cart recovery
}

func NewSynchronizer(cartAPI API, sess Session, logger *log.Logger) *Synchronizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Synchronizer{api: cartAPI, sess: sess, logger: logger}
}

// Snapshot returns a copy of the current state. Mutating the returned items
// never affects the synchronizer.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]api.CartItem, len(s.items))
	copy(items, s.items)
	return State{Status: s.status, Items: items, Err: s.errMsg}
}

// Refresh fetches the server cart and replaces the local item list
// wholesale. When the server answers "cart not found", it issues exactly one
// create-cart request: success lands in Ready with an empty cart, failure in
// Failed with no further automatic retries.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.begin(); err != nil {
		return err
	}

	items, err := s.api.Get(ctx)
	if err == nil {
		return s.finish(func() {
			s.status = StatusReady
			s.items = items
		})
	}
	if !api.IsCartNotFound(err) {
		return s.fail(err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.status = StatusMissing
	alreadyCreated := s.created
	s.created = true
	s.mu.Unlock()

	if alreadyCreated {
		// The one recovery shot was already spent; stay Missing.
		return err
	}

	s.logger.Printf("cart: not found for current user, creating")
	if cerr := s.api.Create(ctx); cerr != nil {
		return s.fail(cerr)
	}
	return s.finish(func() {
		s.status = StatusReady
		s.items = nil
	})
}

// AddItem puts quantity units of a product in the cart. Unauthenticated
// callers are rejected locally with no network call. The server-confirmed
// item replaces any local row for the same product, so the product never
// appears twice.
func (s *Synchronizer) AddItem(ctx context.Context, productID int64, quantity int) error {
	if !s.sess.IsAuthenticated() {
		return api.Unauthenticated("login required to add items to the cart")
	}
	if quantity <= 0 {
		return api.Validation("quantity must be positive")
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.begin(); err != nil {
		return err
	}

	item, err := s.api.Add(ctx, productID, quantity)
	if err != nil {
		return s.fail(err)
	}
	return s.finish(func() {
		s.status = StatusReady
		for i := range s.items {
			if s.items[i].ProductID == item.ProductID {
				s.items[i] = item
				return
			}
		}
		s.items = append(s.items, item)
	})
}

// UpdateQuantity sets the quantity of an existing cart item. Non-positive
// quantities are rejected locally: no network call, no state change.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int) error {
	if quantity <= 0 {
		return api.Validation("quantity must be positive")
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.begin(); err != nil {
		return err
	}

	item, err := s.api.Update(ctx, cartItemID, quantity)
	if err != nil {
		return s.fail(err)
	}
	return s.finish(func() {
		s.status = StatusReady
		for i := range s.items {
			if s.items[i].ID == item.ID {
				s.items[i] = item
				break
			}
		}
	})
}

// RemoveItem deletes a cart item. An id absent from the local list is a
// no-op, not an error.
func (s *Synchronizer) RemoveItem(ctx context.Context, cartItemID int64) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.begin(); err != nil {
		return err
	}

	if err := s.api.Remove(ctx, cartItemID); err != nil {
		return s.fail(err)
	}
	return s.finish(func() {
		s.status = StatusReady
		kept := s.items[:0]
		for _, it := range s.items {
			if it.ID != cartItemID {
				kept = append(kept, it)
			}
		}
		s.items = kept
	})
}

// Clear empties the cart server-side and locally.
func (s *Synchronizer) Clear(ctx context.Context) error {
	userID := s.sess.UserID()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.begin(); err != nil {
		return err
	}

	if err := s.api.ClearAll(ctx, userID); err != nil {
		return s.fail(err)
	}
	return s.finish(func() {
		s.status = StatusReady
		s.items = nil
	})
}

// ResetLocal drops the local state back to Empty without a network call.
// Checkout uses it after a successful order, when the server has already
// emptied its side; logout uses it to discard the departing user's items.
func (s *Synchronizer) ResetLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.status = StatusEmpty
	s.items = nil
	s.errMsg = ""
}

// Close marks the synchronizer dead. In-flight responses resolving after
// Close are discarded instead of written into stale state.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// begin marks the start of an attempt: loading on, previous error cleared,
// items untouched.
func (s *Synchronizer) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.status = StatusLoading
	s.errMsg = ""
	return nil
}

// finish applies a successful result unless the synchronizer was closed
// while the request was in flight.
func (s *Synchronizer) finish(apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	apply()
	return nil
}

// fail records the failure message and leaves the item list exactly as it
// was: a failed mutation never corrupts the displayed cart.
func (s *Synchronizer) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.status = StatusFailed
	s.errMsg = err.Error()
	return err
}
