package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/database"
	"github.com/odm275/dev-network/internal/models"
)

const postColumns = `id, user_id, text, name, avatar, likes, comments, created_at`

type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Likes == nil {
		p.Likes = models.Likes{}
	}
	if p.Comments == nil {
		p.Comments = models.Comments{}
	}

	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO posts (id, user_id, text, name, avatar, likes, comments)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		p.ID, p.UserID, p.Text, p.Name, p.Avatar, p.Likes, p.Comments,
	).Scan(&p.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert post")
	}
	return nil
}

func (s *PostStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := s.db.GetContext(ctx, &p, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err != nil {
		if isMissing(err) {
			return nil, apperr.ErrPostNotFound
		}
		return nil, errors.Wrap(err, "find post")
	}
	return &p, nil
}

// List returns posts newest first.
func (s *PostStore) List(ctx context.Context, params ListParams) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := s.db.SelectContext(ctx, &posts,
		`SELECT `+postColumns+`
		 FROM posts
		 WHERE ($1 = '' OR lower(text) LIKE $1 OR lower(name) LIKE $1)
		 ORDER BY created_at DESC, id DESC
		 LIMIT NULLIF($2, 0) OFFSET $3`,
		params.Pattern, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return posts, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		if isMissing(err) {
			return apperr.ErrPostNotFound
		}
		return errors.Wrap(err, "delete post")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if rowsAffected == 0 {
		return apperr.ErrPostNotFound
	}
	return nil
}

// Mutate loads the post under a row lock, applies fn and persists its likes
// and comments in the same transaction. Nothing is written when fn fails.
func (s *PostStore) Mutate(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error) {
	var post models.Post

	err := database.WithTx(ctx, s.db, "mutate post", func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if isMissing(err) {
				return apperr.ErrPostNotFound
			}
			return errors.Wrap(err, "lock post")
		}

		if err := fn(&post); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET likes = $1, comments = $2 WHERE id = $3`,
			post.Likes, post.Comments, post.ID,
		); err != nil {
			return errors.Wrap(err, "update post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
