package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/core/domain/favorite"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

func cacheDelete(c ports.Cache, ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	for _, k := range keys {
		_ = c.Delete(ctx, k)
	}
}

// loadWithSingleflight coalesces concurrent cache-miss loads of key and caches the result.
// The shared load runs detached from any single caller's cancellation.
func loadWithSingleflight[T any](cache ports.Cache, ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := cacheGet[T](cache, ctx, key); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		if v, ok := cacheGet[T](cache, loadCtx, key); ok {
			return *v, nil
		}
		v, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		cacheSetSilently(cache, loadCtx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected type from singleflight result")
	}
	return v, nil
}

func clientIDKey(id string) string       { return "client:id:" + id }
func clientEmailKey(email string) string { return "client:email:" + email }
func favoritesKey(clientID string) string {
	return "favorites:client:" + clientID
}

// CachingClientRepository decorates a ClientRepository with cache-aside.
type CachingClientRepository struct {
	inner ports.ClientRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingClientRepository(inner ports.ClientRepository, cache ports.Cache, ttl time.Duration) ports.ClientRepository {
	return &CachingClientRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingClientRepository) Create(ctx context.Context, cl *client.Client) error {
	if err := c.inner.Create(ctx, cl); err != nil {
		return err
	}
	c.store(ctx, cl)
	return nil
}

func (c *CachingClientRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	cl, err := loadWithSingleflight(c.cache, ctx, clientIDKey(id), c.ttl, func(ctx context.Context) (*client.Client, error) {
		return c.inner.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func (c *CachingClientRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	if v, ok := cacheGet[client.Client](c.cache, ctx, clientEmailKey(email)); ok {
		return v, nil
	}
	cl, err := c.inner.GetByEmail(ctx, email)
	if err == nil {
		c.store(ctx, cl)
	}
	return cl, err
}

// List is not cached; filtered listings are rare and must observe fresh uniqueness.
func (c *CachingClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	return c.inner.List(ctx, filter)
}

func (c *CachingClientRepository) UpdateName(ctx context.Context, id, name string) (*client.Client, error) {
	cl, err := c.inner.UpdateName(ctx, id, name)
	if err != nil {
		cacheDelete(c.cache, ctx, clientIDKey(id))
		return nil, err
	}
	c.store(ctx, cl)
	return cl, nil
}

func (c *CachingClientRepository) ConfirmEmail(ctx context.Context, id string) (*client.Client, error) {
	cl, err := c.inner.ConfirmEmail(ctx, id)
	if err != nil {
		cacheDelete(c.cache, ctx, clientIDKey(id))
		return nil, err
	}
	c.store(ctx, cl)
	return cl, nil
}

func (c *CachingClientRepository) Delete(ctx context.Context, id string) error {
	// Need email to delete email key
	var email string
	if v, ok := cacheGet[client.Client](c.cache, ctx, clientIDKey(id)); ok {
		email = v.Email
	} else if cl, err := c.inner.GetByID(ctx, id); err == nil {
		email = cl.Email
	}
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	cacheDelete(c.cache, ctx, clientIDKey(id), favoritesKey(id))
	if email != "" {
		cacheDelete(c.cache, ctx, clientEmailKey(email))
	}
	return nil
}

func (c *CachingClientRepository) store(ctx context.Context, cl *client.Client) {
	cacheSetSilently(c.cache, ctx, clientIDKey(cl.ID), cl, c.ttl)
	cacheSetSilently(c.cache, ctx, clientEmailKey(cl.Email), cl, c.ttl)
}

// CachingFavoriteRepository caches each client's full favorite list.
type CachingFavoriteRepository struct {
	inner ports.FavoriteRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingFavoriteRepository(inner ports.FavoriteRepository, cache ports.Cache, ttl time.Duration) ports.FavoriteRepository {
	return &CachingFavoriteRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingFavoriteRepository) Create(ctx context.Context, f *favorite.FavoriteProduct) error {
	if err := c.inner.Create(ctx, f); err != nil {
		return err
	}
	cacheDelete(c.cache, ctx, favoritesKey(f.ClientID))
	return nil
}

func (c *CachingFavoriteRepository) List(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error) {
	// Filtered lookups back the duplicate check and always hit the store.
	if filter.ProductID != "" {
		return c.inner.List(ctx, clientID, filter)
	}
	return loadWithSingleflight(c.cache, ctx, favoritesKey(clientID), c.ttl, func(ctx context.Context) ([]*favorite.FavoriteProduct, error) {
		return c.inner.List(ctx, clientID, filter)
	})
}

func (c *CachingFavoriteRepository) GetByID(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error) {
	return c.inner.GetByID(ctx, clientID, id)
}

func (c *CachingFavoriteRepository) GetByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	return c.inner.GetByProduct(ctx, clientID, productID)
}

func (c *CachingFavoriteRepository) Delete(ctx context.Context, clientID, id string) error {
	if err := c.inner.Delete(ctx, clientID, id); err != nil {
		return err
	}
	cacheDelete(c.cache, ctx, favoritesKey(clientID))
	return nil
}

func (c *CachingFavoriteRepository) DeleteByProduct(ctx context.Context, clientID, productID string) error {
	if err := c.inner.DeleteByProduct(ctx, clientID, productID); err != nil {
		return err
	}
	cacheDelete(c.cache, ctx, favoritesKey(clientID))
	return nil
}

func (c *CachingFavoriteRepository) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	n, err := c.inner.DeleteByClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	cacheDelete(c.cache, ctx, favoritesKey(clientID))
	return n, nil
}

// Simple validation to ensure decorators implement interfaces at compile time
var _ ports.ClientRepository = (*CachingClientRepository)(nil)
var _ ports.FavoriteRepository = (*CachingFavoriteRepository)(nil)

// singleflight group for coalescing cache-miss loads in-process
var sf singleflight.Group
