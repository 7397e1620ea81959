// Package service implements the account, profile and post use cases on top
// of the stores. Every mutation loads its aggregate, checks the caller against
// internal/authz, applies the change and persists it as one unit.
package service

import (
	"context"
	"time"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/models"
	"github.com/odm275/dev-network/internal/store"
	"github.com/odm275/dev-network/internal/validation"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ProfileStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Profile, error)
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
	List(ctx context.Context, params store.ListParams) ([]models.Profile, error)
	HandleTaken(ctx context.Context, handle string, exceptUserID string) (bool, error)
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Mutate(ctx context.Context, userID string, fn func(p *models.Profile) error) (*models.Profile, error)
	DeleteWithUser(ctx context.Context, userID string) (store.DeleteSummary, error)
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, params store.ListParams) ([]models.Post, error)
	Delete(ctx context.Context, id string) error
	Mutate(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error)
}

type Service struct {
	users    UserStore
	profiles ProfileStore
	posts    PostStore
	now      func() time.Time
}

func New(users UserStore, profiles ProfileStore, posts PostStore) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		posts:    posts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func validate(payload any) error {
	if fields, ok := validation.Validate(payload); !ok {
		return apperr.Validation(fields)
	}
	return nil
}

func requireActor(actorID string) error {
	if actorID == "" {
		return apperr.ErrUnauthenticated
	}
	return nil
}
