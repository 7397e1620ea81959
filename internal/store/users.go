package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/models"
)

const userColumns = `id, name, email, avatar, password, created_at`

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts u, assigning its id. A taken email yields apperr.ErrEmailTaken.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = normalizeEmail(u.Email)

	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO users (id, name, email, avatar, password) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		u.ID, u.Name, u.Email, u.Avatar, u.Password,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, usersEmailKey) {
			return apperr.ErrEmailTaken
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		normalizeEmail(email),
	)
	if err != nil {
		return false, errors.Wrap(err, "check email")
	}
	return exists, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		normalizeEmail(email),
	)
	if err != nil {
		if isMissing(err) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		if isMissing(err) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user by id")
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
