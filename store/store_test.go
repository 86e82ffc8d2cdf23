package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func setupTestRedis(t *testing.T) *RedisBackend {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBackend(client)
}

func backends(t *testing.T) map[string]Backend {
	file, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	out := map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   file,
		"redis":  setupTestRedis(t),
	}
	if dsn := os.Getenv("STATE_TEST_DATABASE_URL"); dsn != "" {
		pg, err := ConnectPostgres(context.Background(), dsn)
		require.NoError(t, err)
		t.Cleanup(func() { pg.Close() })
		out["postgres"] = pg
	}
	return out
}

func TestBackends_LocalStorageSemantics(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := NewLocal(b, "visitor-a-"+name)
			other := NewLocal(b, "visitor-b-"+name)

			_, ok, err := a.GetItem(ctx, KeyToken)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, a.SetItem(ctx, KeyToken, "abc"))
			require.NoError(t, a.SetItem(ctx, KeyUserType, "customer"))
			require.NoError(t, other.SetItem(ctx, KeyToken, "xyz"))

			v, ok, err := a.GetItem(ctx, KeyToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc", v)

			require.NoError(t, a.RemoveItem(ctx, KeyToken))
			_, ok, _ = a.GetItem(ctx, KeyToken)
			assert.False(t, ok)

			require.NoError(t, a.Clear(ctx))
			_, ok, _ = a.GetItem(ctx, KeyUserType)
			assert.False(t, ok)

			v, ok, _ = other.GetItem(ctx, KeyToken)
			assert.True(t, ok, "clearing one namespace must not touch another")
			assert.Equal(t, "xyz", v)
		})
	}
}

func TestState_CorruptCartFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	local := NewLocal(NewMemoryBackend(), "v1")
	require.NoError(t, local.SetItem(ctx, KeyCartItems, "not json"))

	items, err := NewState(local).LoadCart(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestState_CartRoundTripThroughFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	require.NoError(t, err)

	state := NewState(NewLocal(fb, "visitor/1"))
	lines := []models.CartItem{{ProductID: 7, Quantity: 2, Price: 9.5, ProductName: "Mug"}}
	require.NoError(t, state.SaveCart(ctx, lines))

	_, err = os.Stat(filepath.Join(dir, "visitor_1.json"))
	require.NoError(t, err, "namespace is sanitized into a file name")

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)
	got, err := NewState(NewLocal(reopened, "visitor/1")).LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestState_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	state := NewState(NewLocal(NewMemoryBackend(), "v1"))

	rec := SessionRecord{
		Token:    "tok",
		UserType: UserEmployee,
		Employee: &models.Employee{ID: 3, Username: "ops", Role: models.RoleAdmin},
	}
	require.NoError(t, state.SaveSession(ctx, rec))

	got, err := state.LoadSession(ctx)
	require.NoError(t, err)
	assert.True(t, got.LoggedIn())
	assert.Equal(t, UserEmployee, got.UserType)
	require.NotNil(t, got.Employee)
	assert.Equal(t, "ops", got.Employee.Username)
	assert.Nil(t, got.Customer)

	require.NoError(t, state.Clear(ctx))
	got, err = state.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, got.LoggedIn())
}
