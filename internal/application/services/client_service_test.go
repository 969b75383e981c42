package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/wishlist-api/internal/application/services"
	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/core/domain/client"
	"github.com/avatarctic/wishlist-api/internal/mocks"
)

// clientStore backs a ClientRepositoryMock with a map.
type clientStore struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*client.Client
}

func newClientRepo() (*clientStore, *mocks.ClientRepositoryMock) {
	s := &clientStore{byID: map[string]*client.Client{}}
	repo := &mocks.ClientRepositoryMock{
		CreateFn: func(ctx context.Context, c *client.Client) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, existing := range s.byID {
				if existing.Email == c.Email {
					return client.ErrEmailTaken
				}
			}
			s.seq++
			c.ID = fmt.Sprintf("c%d", s.seq)
			cp := *c
			s.byID[c.ID] = &cp
			return nil
		},
		GetByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.byID[id]; ok {
				cp := *c
				return &cp, nil
			}
			return nil, client.ErrNotFound
		},
		GetByEmailFn: func(ctx context.Context, email string) (*client.Client, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, c := range s.byID {
				if c.Email == email {
					cp := *c
					return &cp, nil
				}
			}
			return nil, client.ErrNotFound
		},
		ListFn: func(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			out := []*client.Client{}
			for _, c := range s.byID {
				if filter.ID != "" && c.ID != filter.ID {
					continue
				}
				if filter.Email != "" && c.Email != filter.Email {
					continue
				}
				cp := *c
				out = append(out, &cp)
			}
			return out, nil
		},
		UpdateNameFn: func(ctx context.Context, id, name string) (*client.Client, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			c, ok := s.byID[id]
			if !ok {
				return nil, client.ErrNotFound
			}
			c.Name = name
			cp := *c
			return &cp, nil
		},
		ConfirmEmailFn: func(ctx context.Context, id string) (*client.Client, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			c, ok := s.byID[id]
			if !ok {
				return nil, client.ErrNotFound
			}
			c.EmailConfirmation = true
			cp := *c
			return &cp, nil
		},
		DeleteFn: func(ctx context.Context, id string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.byID[id]; !ok {
				return client.ErrNotFound
			}
			delete(s.byID, id)
			return nil
		},
	}
	return s, repo
}

func TestClientStore_CreatesAndSendsConfirmation(t *testing.T) {
	_, repo := newClientRepo()
	var sentTo, sentID string
	mailer := &mocks.EmailServiceMock{SendConfirmationEmailFn: func(ctx context.Context, to, name, clientID string) error {
		sentTo, sentID = to, clientID
		return nil
	}}
	svc := impl.NewClientService(repo, nil, mailer, impl.ClientServiceConfig{}, nil)

	created, err := svc.Store(context.Background(), &client.CreateClientRequest{Name: " Ana ", Email: "Ana@Mail.COM"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Ana", created.Name)
	require.Equal(t, "ana@mail.com", created.Email)
	require.False(t, created.EmailConfirmation)
	require.Equal(t, "ana@mail.com", sentTo)
	require.Equal(t, created.ID, sentID)
}

func TestClientStore_DuplicateEmailIgnoresCase(t *testing.T) {
	_, repo := newClientRepo()
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{}, nil)

	_, err := svc.Store(context.Background(), &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	_, err = svc.Store(context.Background(), &client.CreateClientRequest{Name: "Other", Email: "ANA@mail.com"})
	require.ErrorIs(t, err, apperror.ErrClientExists)
}

func TestClientStore_UniqueIndexRaceMapsToExists(t *testing.T) {
	repo := &mocks.ClientRepositoryMock{CreateFn: func(ctx context.Context, c *client.Client) error {
		return client.ErrEmailTaken
	}}
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{}, nil)

	_, err := svc.Store(context.Background(), &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.ErrorIs(t, err, apperror.ErrClientExists)
}

func TestClientStore_MailFailureDoesNotFailSignup(t *testing.T) {
	_, repo := newClientRepo()
	mailer := &mocks.EmailServiceMock{SendConfirmationEmailFn: func(ctx context.Context, to, name, clientID string) error {
		return errors.New("smtp down")
	}}
	svc := impl.NewClientService(repo, nil, mailer, impl.ClientServiceConfig{}, nil)

	created, err := svc.Store(context.Background(), &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
}

func TestClientStore_RepositoryFailure(t *testing.T) {
	repo := &mocks.ClientRepositoryMock{CreateFn: func(ctx context.Context, c *client.Client) error {
		return errors.New("connection reset")
	}}
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{}, nil)

	_, err := svc.Store(context.Background(), &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.ErrorIs(t, err, apperror.ErrClientFailedToStore)
}

func TestClientShow_NotFound(t *testing.T) {
	_, repo := newClientRepo()
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{}, nil)

	_, err := svc.Show(context.Background(), "missing")
	require.ErrorIs(t, err, apperror.ErrClientNotFound)
}

func TestClientShow_RequiresConfirmationWhenEnabled(t *testing.T) {
	_, repo := newClientRepo()
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{RequireEmailConfirmation: true}, nil)
	ctx := context.Background()

	created, err := svc.Store(ctx, &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	_, err = svc.Show(ctx, created.ID)
	require.ErrorIs(t, err, apperror.ErrEmailNotConfirmed)

	confirmed, err := svc.ConfirmEmail(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, confirmed.EmailConfirmation)

	found, err := svc.Show(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
}

func TestClientUpdateName(t *testing.T) {
	_, repo := newClientRepo()
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{}, nil)
	ctx := context.Background()

	created, err := svc.Store(ctx, &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	updated, err := svc.UpdateName(ctx, created.ID, "  Ana Maria ")
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", updated.Name)
	require.Equal(t, "ana@mail.com", updated.Email)

	_, err = svc.UpdateName(ctx, "missing", "x")
	require.ErrorIs(t, err, apperror.ErrClientNotFound)
}

func TestClientDelete_RemovesFavorites(t *testing.T) {
	store, repo := newClientRepo()
	var removedFor string
	favorites := &mocks.FavoriteRepositoryMock{DeleteByClientFn: func(ctx context.Context, clientID string) (int64, error) {
		removedFor = clientID
		return 3, nil
	}}
	svc := impl.NewClientService(repo, favorites, nil, impl.ClientServiceConfig{}, nil)
	ctx := context.Background()

	created, err := svc.Store(ctx, &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.Equal(t, created.ID, removedFor)
	require.Empty(t, store.byID)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), apperror.ErrClientNotFound)
}

func TestClientDelete_FavoriteCleanupFailureKeepsClient(t *testing.T) {
	store, repo := newClientRepo()
	deleteCalls := 0
	favorites := &mocks.FavoriteRepositoryMock{DeleteByClientFn: func(ctx context.Context, clientID string) (int64, error) {
		deleteCalls++
		if deleteCalls == 1 {
			return 0, errors.New("primary stepped down")
		}
		return 2, nil
	}}
	svc := impl.NewClientService(repo, favorites, nil, impl.ClientServiceConfig{}, nil)
	ctx := context.Background()

	created, err := svc.Store(ctx, &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, apperror.ErrClientFailedToDelete)
	require.Contains(t, store.byID, created.ID)

	// retry succeeds once the favorites can be removed
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.Empty(t, store.byID)
	require.Equal(t, 2, deleteCalls)
}

func TestClientIndex_NormalizesEmailFilter(t *testing.T) {
	_, repo := newClientRepo()
	svc := impl.NewClientService(repo, nil, nil, impl.ClientServiceConfig{}, nil)
	ctx := context.Background()

	_, err := svc.Store(ctx, &client.CreateClientRequest{Name: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	found, err := svc.Index(ctx, client.Filter{Email: " ANA@mail.com"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	byEmail, err := svc.FindByEmail(ctx, "Ana@Mail.com")
	require.NoError(t, err)
	require.Equal(t, found[0].ID, byEmail.ID)

	_, err = svc.FindByEmail(ctx, "other@mail.com")
	require.ErrorIs(t, err, apperror.ErrClientNotFound)
}
