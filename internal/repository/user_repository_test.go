package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/kv"
)

func newBoltStore(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.OpenBolt(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUserRepository_Users(t *testing.T) {
	ctx := context.Background()
	store := newBoltStore(t)
	repo := NewUserRepository(store)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	want := []model.User{{Name: "A", Email: "a@x.com", Password: "h1"}, {Name: "B", Email: "b@x.com", Password: "h2"}}
	require.NoError(t, repo.SaveAll(ctx, want))

	users, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, users)

	raw, ok, err := store.Get(ctx, "users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"name":"A","email":"a@x.com","password":"h1"},{"name":"B","email":"b@x.com","password":"h2"}]`, raw)
}

func TestUserRepository_MalformedReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "{not json"},
		{name: "wrong shape", raw: `{"name":"A"}`},
		{name: "null", raw: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newBoltStore(t)
			require.NoError(t, store.Set(ctx, "users", tt.raw))
			repo := NewUserRepository(store)

			users, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestUserRepository_MalformedMarkerReadsAsLoggedOut(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{oops", "null", `{"name":"A"}`, `[]`} {
		t.Run(raw, func(t *testing.T) {
			store := newBoltStore(t)
			require.NoError(t, store.Set(ctx, "client:c1:current_user", raw))

			got, err := NewUserRepository(store).CurrentUser(ctx, "c1")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestUserRepository_CurrentUserIsPerClient(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newBoltStore(t))

	require.NoError(t, repo.SetCurrentUser(ctx, "c1", model.SessionMarker{Name: "A", Email: "a@x.com"}))

	got, err := repo.CurrentUser(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, &model.SessionMarker{Name: "A", Email: "a@x.com"}, got)

	other, err := repo.CurrentUser(ctx, "c2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.ClearCurrentUser(ctx, "c1"))
	require.NoError(t, repo.ClearCurrentUser(ctx, "c1"))
	got, err = repo.CurrentUser(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
