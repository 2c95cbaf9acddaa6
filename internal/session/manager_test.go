package session

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func freshToken(t *testing.T) string {
	t.Helper()
	return signedToken(t, jwt.MapClaims{"sub": "42", "exp": time.Now().Add(time.Hour).Unix()})
}

func TestManagerInitialize(t *testing.T) {
	store := NewMemStore()
	tok := freshToken(t)
	require.NoError(t, store.Save(Credentials{Token: tok, Role: RoleUser, UserID: "42"}))

	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, RoleUser, m.Role())
	assert.Equal(t, "42", m.UserID())

	// Idempotent: a second call must not re-read the store.
	require.NoError(t, store.Save(Credentials{Token: "other"}))
	require.NoError(t, m.Initialize())
	assert.Equal(t, tok, m.Token())
}

func TestManagerLogin(t *testing.T) {
	store := NewMemStore()
	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())

	tok := freshToken(t)
	m.Login(tok, RoleUser)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "42", m.UserID(), "user id resolved from the token subject")

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{Token: tok, Role: RoleUser, UserID: "42"}, persisted)
}

func TestManagerLogout(t *testing.T) {
	store := NewMemStore()
	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())
	m.Login(freshToken(t), RoleUser)

	m.Logout()
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.True(t, persisted.Empty())

	// Logging out again is a no-op, not an error.
	m.Logout()
}

func TestManagerExpiredToken(t *testing.T) {
	store := NewMemStore()
	expired := func(t *testing.T) string {
		t.Helper()
		return signedToken(t, jwt.MapClaims{"sub": "42", "exp": time.Now().Add(-time.Minute).Unix()})
	}
	require.NoError(t, store.Save(Credentials{Token: expired(t), Role: RoleUser}))

	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())

	assert.False(t, m.IsAuthenticated(), "expired token means logged out, not an error")
}

func TestManagerMalformedToken(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Save(Credentials{Token: "not-a-jwt", Role: RoleAdmin}))

	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())

	assert.False(t, m.IsAuthenticated())
}

func TestManagerSyncFromStore(t *testing.T) {
	store := NewMemStore()
	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())
	m.Login(freshToken(t), RoleUser)

	// Another process logged out through the shared store.
	require.NoError(t, store.Clear())
	m.SyncFromStore()

	assert.False(t, m.IsAuthenticated())
}

func TestManagerOnChange(t *testing.T) {
	store := NewMemStore()
	m := NewManager(store, quietLogger())
	require.NoError(t, m.Initialize())

	var events []bool
	m.OnChange(func(authed bool) { events = append(events, authed) })

	m.Login(freshToken(t), RoleUser)
	m.Logout()
	m.Logout() // already logged out: no event

	assert.Equal(t, []bool{true, false}, events)
}
