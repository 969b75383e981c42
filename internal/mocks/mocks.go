package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/wishlist-api/internal/core/domain/auth"
	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/core/domain/favorite"
	"github.com/avatarctic/wishlist-api/internal/core/domain/product"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// ClientRepositoryMock is a lightweight mock for ClientRepository
type ClientRepositoryMock struct {
	CreateFn       func(ctx context.Context, c *client.Client) error
	GetByIDFn      func(ctx context.Context, id string) (*client.Client, error)
	GetByEmailFn   func(ctx context.Context, email string) (*client.Client, error)
	ListFn         func(ctx context.Context, filter client.Filter) ([]*client.Client, error)
	UpdateNameFn   func(ctx context.Context, id, name string) (*client.Client, error)
	ConfirmEmailFn func(ctx context.Context, id string) (*client.Client, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (m *ClientRepositoryMock) Create(ctx context.Context, c *client.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *ClientRepositoryMock) GetByID(ctx context.Context, id string) (*client.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, client.ErrNotFound
}
func (m *ClientRepositoryMock) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, client.ErrNotFound
}
func (m *ClientRepositoryMock) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []*client.Client{}, nil
}
func (m *ClientRepositoryMock) UpdateName(ctx context.Context, id, name string) (*client.Client, error) {
	if m.UpdateNameFn != nil {
		return m.UpdateNameFn(ctx, id, name)
	}
	return nil, client.ErrNotFound
}
func (m *ClientRepositoryMock) ConfirmEmail(ctx context.Context, id string) (*client.Client, error) {
	if m.ConfirmEmailFn != nil {
		return m.ConfirmEmailFn(ctx, id)
	}
	return nil, client.ErrNotFound
}
func (m *ClientRepositoryMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// FavoriteRepositoryMock is a lightweight mock for FavoriteRepository
type FavoriteRepositoryMock struct {
	CreateFn          func(ctx context.Context, f *favorite.FavoriteProduct) error
	ListFn            func(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error)
	GetByIDFn         func(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error)
	GetByProductFn    func(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error)
	DeleteFn          func(ctx context.Context, clientID, id string) error
	DeleteByProductFn func(ctx context.Context, clientID, productID string) error
	DeleteByClientFn  func(ctx context.Context, clientID string) (int64, error)
}

func (m *FavoriteRepositoryMock) Create(ctx context.Context, f *favorite.FavoriteProduct) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}
func (m *FavoriteRepositoryMock) List(ctx context.Context, clientID string, filter favorite.Filter) ([]*favorite.FavoriteProduct, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, clientID, filter)
	}
	return []*favorite.FavoriteProduct{}, nil
}
func (m *FavoriteRepositoryMock) GetByID(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, clientID, id)
	}
	return nil, favorite.ErrNotFound
}
func (m *FavoriteRepositoryMock) GetByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	if m.GetByProductFn != nil {
		return m.GetByProductFn(ctx, clientID, productID)
	}
	return nil, favorite.ErrNotFound
}
func (m *FavoriteRepositoryMock) Delete(ctx context.Context, clientID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, clientID, id)
	}
	return nil
}
func (m *FavoriteRepositoryMock) DeleteByProduct(ctx context.Context, clientID, productID string) error {
	if m.DeleteByProductFn != nil {
		return m.DeleteByProductFn(ctx, clientID, productID)
	}
	return nil
}
func (m *FavoriteRepositoryMock) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	if m.DeleteByClientFn != nil {
		return m.DeleteByClientFn(ctx, clientID)
	}
	return 0, nil
}

// ClientServiceMock is a lightweight mock for ClientService
type ClientServiceMock struct {
	StoreFn        func(ctx context.Context, req *client.CreateClientRequest) (*client.Client, error)
	IndexFn        func(ctx context.Context, filter client.Filter) ([]*client.Client, error)
	FindByEmailFn  func(ctx context.Context, email string) (*client.Client, error)
	ShowFn         func(ctx context.Context, id string) (*client.Client, error)
	UpdateNameFn   func(ctx context.Context, id, name string) (*client.Client, error)
	DeleteFn       func(ctx context.Context, id string) error
	ConfirmEmailFn func(ctx context.Context, id string) (*client.Client, error)
}

func (m *ClientServiceMock) Store(ctx context.Context, req *client.CreateClientRequest) (*client.Client, error) {
	if m.StoreFn != nil {
		return m.StoreFn(ctx, req)
	}
	return nil, nil
}
func (m *ClientServiceMock) Index(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	if m.IndexFn != nil {
		return m.IndexFn(ctx, filter)
	}
	return []*client.Client{}, nil
}
func (m *ClientServiceMock) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *ClientServiceMock) Show(ctx context.Context, id string) (*client.Client, error) {
	if m.ShowFn != nil {
		return m.ShowFn(ctx, id)
	}
	return &client.Client{ID: id}, nil
}
func (m *ClientServiceMock) UpdateName(ctx context.Context, id, name string) (*client.Client, error) {
	if m.UpdateNameFn != nil {
		return m.UpdateNameFn(ctx, id, name)
	}
	return &client.Client{ID: id, Name: name}, nil
}
func (m *ClientServiceMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *ClientServiceMock) ConfirmEmail(ctx context.Context, id string) (*client.Client, error) {
	if m.ConfirmEmailFn != nil {
		return m.ConfirmEmailFn(ctx, id)
	}
	return &client.Client{ID: id, EmailConfirmation: true}, nil
}

// FavoriteServiceMock is a lightweight mock for FavoriteService
type FavoriteServiceMock struct {
	StoreFn           func(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error)
	IndexFn           func(ctx context.Context, clientID string) ([]*favorite.FavoriteProduct, error)
	ShowFn            func(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error)
	ShowByProductFn   func(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error)
	DeleteFn          func(ctx context.Context, clientID, id string) error
	DeleteByProductFn func(ctx context.Context, clientID, productID string) error
}

func (m *FavoriteServiceMock) Store(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	if m.StoreFn != nil {
		return m.StoreFn(ctx, clientID, productID)
	}
	return &favorite.FavoriteProduct{ClientID: clientID, ProductID: productID}, nil
}
func (m *FavoriteServiceMock) Index(ctx context.Context, clientID string) ([]*favorite.FavoriteProduct, error) {
	if m.IndexFn != nil {
		return m.IndexFn(ctx, clientID)
	}
	return []*favorite.FavoriteProduct{}, nil
}
func (m *FavoriteServiceMock) Show(ctx context.Context, clientID, id string) (*favorite.FavoriteProduct, error) {
	if m.ShowFn != nil {
		return m.ShowFn(ctx, clientID, id)
	}
	return &favorite.FavoriteProduct{ID: id, ClientID: clientID}, nil
}
func (m *FavoriteServiceMock) ShowByProduct(ctx context.Context, clientID, productID string) (*favorite.FavoriteProduct, error) {
	if m.ShowByProductFn != nil {
		return m.ShowByProductFn(ctx, clientID, productID)
	}
	return &favorite.FavoriteProduct{ClientID: clientID, ProductID: productID}, nil
}
func (m *FavoriteServiceMock) Delete(ctx context.Context, clientID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, clientID, id)
	}
	return nil
}
func (m *FavoriteServiceMock) DeleteByProduct(ctx context.Context, clientID, productID string) error {
	if m.DeleteByProductFn != nil {
		return m.DeleteByProductFn(ctx, clientID, productID)
	}
	return nil
}

// ProductCatalogMock is a lightweight mock for ProductCatalog
type ProductCatalogMock struct {
	ListProductsFn func(ctx context.Context, page int) (*product.Page, error)
	GetProductFn   func(ctx context.Context, id string) (*product.Product, error)
}

func (m *ProductCatalogMock) ListProducts(ctx context.Context, page int) (*product.Page, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, page)
	}
	return &product.Page{}, nil
}
func (m *ProductCatalogMock) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, product.ErrNotFound
}

// ProductServiceMock is a lightweight mock for ProductService
type ProductServiceMock struct {
	IndexFn func(ctx context.Context, page int) (*product.Page, error)
	ShowFn  func(ctx context.Context, id string) (*product.Product, error)
}

func (m *ProductServiceMock) Index(ctx context.Context, page int) (*product.Page, error) {
	if m.IndexFn != nil {
		return m.IndexFn(ctx, page)
	}
	return &product.Page{}, nil
}
func (m *ProductServiceMock) Show(ctx context.Context, id string) (*product.Product, error) {
	if m.ShowFn != nil {
		return m.ShowFn(ctx, id)
	}
	return &product.Product{ID: id}, nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	AuthenticateFn func(ctx context.Context, req *auth.AuthenticateRequest) (*auth.TokenResponse, error)
	RefreshFn      func(ctx context.Context, clientID string) (*auth.TokenResponse, error)
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, req *auth.AuthenticateRequest) (*auth.TokenResponse, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, req)
	}
	return &auth.TokenResponse{}, nil
}
func (m *AuthServiceMock) Refresh(ctx context.Context, clientID string) (*auth.TokenResponse, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, clientID)
	}
	return &auth.TokenResponse{}, nil
}

// EmailServiceMock records sent mails
type EmailServiceMock struct {
	SendConfirmationEmailFn    func(ctx context.Context, to, name, clientID string) error
	SendDatabaseFailureAlertFn func(ctx context.Context, cause error) error
}

func (m *EmailServiceMock) SendConfirmationEmail(ctx context.Context, to, name, clientID string) error {
	if m.SendConfirmationEmailFn != nil {
		return m.SendConfirmationEmailFn(ctx, to, name, clientID)
	}
	return nil
}
func (m *EmailServiceMock) SendDatabaseFailureAlert(ctx context.Context, cause error) error {
	if m.SendDatabaseFailureAlertFn != nil {
		return m.SendDatabaseFailureAlertFn(ctx, cause)
	}
	return nil
}

// RateLimiterServiceMock allows every request unless AllowFn says otherwise
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientID string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientID)
	}
	return true, 100, 100, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, key, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// HealthCheckerMock reports CheckErr for Name
type HealthCheckerMock struct {
	NameValue string
	CheckErr  error
}

func (m *HealthCheckerMock) Name() string                { return m.NameValue }
func (m *HealthCheckerMock) Check(context.Context) error { return m.CheckErr }

// MemoryCache is an in-process Cache
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	// Gets counts Get calls, hits and misses.
	Gets int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// Compile-time checks
var (
	_ ports.ClientRepository    = (*ClientRepositoryMock)(nil)
	_ ports.FavoriteRepository  = (*FavoriteRepositoryMock)(nil)
	_ ports.ClientService       = (*ClientServiceMock)(nil)
	_ ports.FavoriteService     = (*FavoriteServiceMock)(nil)
	_ ports.ProductCatalog      = (*ProductCatalogMock)(nil)
	_ ports.ProductService      = (*ProductServiceMock)(nil)
	_ ports.AuthService         = (*AuthServiceMock)(nil)
	_ ports.EmailService        = (*EmailServiceMock)(nil)
	_ ports.RateLimiterService  = (*RateLimiterServiceMock)(nil)
	_ ports.RateLimitRepository = (*RateLimitRepositoryMock)(nil)
	_ ports.HealthChecker       = (*HealthCheckerMock)(nil)
	_ ports.Cache               = (*MemoryCache)(nil)
)
