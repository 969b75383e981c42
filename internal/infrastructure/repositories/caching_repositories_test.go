package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/core/domain/favorite"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/repositories"
	"github.com/avatarctic/wishlist-api/internal/mocks"
)

func TestCachingClientRepository_GetByIDHitsStoreOnce(t *testing.T) {
	calls := 0
	inner := &mocks.ClientRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
		calls++
		return &client.Client{ID: id, Name: "Ana", Email: "ana@mail.com"}, nil
	}}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingClientRepository(inner, cache, time.Minute)

	for i := 0; i < 3; i++ {
		c, err := repo.GetByID(context.Background(), "c-cached")
		require.NoError(t, err)
		require.Equal(t, "Ana", c.Name)
	}
	require.Equal(t, 1, calls)
	require.True(t, cache.Has("client:id:c-cached"))
}

func TestCachingClientRepository_NotFoundIsNotCached(t *testing.T) {
	inner := &mocks.ClientRepositoryMock{}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingClientRepository(inner, cache, time.Minute)

	_, err := repo.GetByID(context.Background(), "c-missing")
	require.ErrorIs(t, err, client.ErrNotFound)
	require.False(t, cache.Has("client:id:c-missing"))
}

func TestCachingClientRepository_WritesRefreshBothKeys(t *testing.T) {
	inner := &mocks.ClientRepositoryMock{
		CreateFn: func(ctx context.Context, c *client.Client) error {
			c.ID = "c-new"
			return nil
		},
		UpdateNameFn: func(ctx context.Context, id, name string) (*client.Client, error) {
			return &client.Client{ID: id, Name: name, Email: "ana@mail.com"}, nil
		},
		GetByEmailFn: func(ctx context.Context, email string) (*client.Client, error) {
			t.Fatal("email lookup must be served from cache")
			return nil, nil
		},
	}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingClientRepository(inner, cache, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &client.Client{Name: "Ana", Email: "ana@mail.com"}))
	require.True(t, cache.Has("client:id:c-new"))
	require.True(t, cache.Has("client:email:ana@mail.com"))

	_, err := repo.UpdateName(ctx, "c-new", "Ana Maria")
	require.NoError(t, err)

	byEmail, err := repo.GetByEmail(ctx, "ana@mail.com")
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", byEmail.Name)
}

func TestCachingClientRepository_DeleteEvictsEverything(t *testing.T) {
	inner := &mocks.ClientRepositoryMock{
		GetByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
			return &client.Client{ID: id, Email: "ana@mail.com"}, nil
		},
	}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingClientRepository(inner, cache, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "c-del")
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "client:email:ana@mail.com", []byte(`{}`), 0))
	require.NoError(t, cache.Set(ctx, "favorites:client:c-del", []byte(`[]`), 0))

	require.NoError(t, repo.Delete(ctx, "c-del"))
	require.False(t, cache.Has("client:id:c-del"))
	require.False(t, cache.Has("client:email:ana@mail.com"))
	require.False(t, cache.Has("favorites:client:c-del"))
}

func TestCachingFavoriteRepository_ListInvalidatedOnWrite(t *testing.T) {
	stored := []*favorite.FavoriteProduct{{ID: "f1", ClientID: "c-fav", ProductID: "p1"}}
	listCalls := 0
	inner := &mocks.FavoriteRepositoryMock{
		ListFn: func(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error) {
			listCalls++
			return stored, nil
		},
		CreateFn: func(ctx context.Context, f *favorite.FavoriteProduct) error {
			f.ID = "f2"
			stored = append(stored, f)
			return nil
		},
	}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingFavoriteRepository(inner, cache, time.Minute)
	ctx := context.Background()

	list, err := repo.List(ctx, "c-fav", favorite.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = repo.List(ctx, "c-fav", favorite.Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, listCalls)

	require.NoError(t, repo.Create(ctx, &favorite.FavoriteProduct{ClientID: "c-fav", ProductID: "p2"}))
	require.False(t, cache.Has("favorites:client:c-fav"))

	list, err = repo.List(ctx, "c-fav", favorite.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 2, listCalls)
}

func TestCachingFavoriteRepository_FilteredListBypassesCache(t *testing.T) {
	listCalls := 0
	inner := &mocks.FavoriteRepositoryMock{ListFn: func(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error) {
		listCalls++
		return []*favorite.FavoriteProduct{}, nil
	}}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingFavoriteRepository(inner, cache, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := repo.List(context.Background(), "c-filter", favorite.Filter{ProductID: "p1"})
		require.NoError(t, err)
	}
	require.Equal(t, 2, listCalls)
	require.False(t, cache.Has("favorites:client:c-filter"))
}

func TestCachingClientRepository_LoadIgnoresCallerCancellation(t *testing.T) {
	inner := &mocks.ClientRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &client.Client{ID: id, Name: "Ana", Email: "ana@mail.com"}, nil
	}}
	cache := mocks.NewMemoryCache()
	repo := repositories.NewCachingClientRepository(inner, cache, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := repo.GetByID(ctx, "c-cancelled")
	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.True(t, cache.Has("client:id:c-cancelled"))
}
