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

// profileSelect joins the owning user so reads carry its name and avatar.
const profileSelect = `SELECT p.id, p.user_id, p.handle, p.company, p.website, p.location,
	p.bio, p.status, p.github_username, p.skills, p.social, p.experience, p.education,
	p.created_at, p.updated_at,
	u.id AS "user.id", u.name AS "user.name", u.avatar AS "user.avatar"
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

type ProfileStore struct {
	db *sqlx.DB
}

func NewProfileStore(db *sqlx.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// DeleteSummary reports what an account deletion removed.
type DeleteSummary struct {
	UserID         string `json:"user_id"`
	DeletedProfile bool   `json:"deleted_profile"`
	DeletedPosts   int64  `json:"deleted_posts"`
}

func (s *ProfileStore) getOne(ctx context.Context, q sqlx.QueryerContext, where string, arg any) (*models.Profile, error) {
	var p models.Profile
	if err := sqlx.GetContext(ctx, q, &p, profileSelect+` WHERE `+where, arg); err != nil {
		if isMissing(err) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "find profile")
	}
	return &p, nil
}

func (s *ProfileStore) FindByUser(ctx context.Context, userID string) (*models.Profile, error) {
	return s.getOne(ctx, s.db, `p.user_id = $1`, userID)
}

func (s *ProfileStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.getOne(ctx, s.db, `p.handle = $1`, handle)
}

func (s *ProfileStore) List(ctx context.Context, params ListParams) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	err := s.db.SelectContext(ctx, &profiles,
		profileSelect+`
		 WHERE ($1 = '' OR lower(p.handle) LIKE $1 OR lower(u.name) LIKE $1)
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT NULLIF($2, 0) OFFSET $3`,
		params.Pattern, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	return profiles, nil
}

// HandleTaken reports whether a profile other than exceptUserID's uses handle.
func (s *ProfileStore) HandleTaken(ctx context.Context, handle string, exceptUserID string) (bool, error) {
	var taken bool
	err := s.db.GetContext(ctx, &taken,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE handle = $1 AND user_id <> $2)`,
		handle, exceptUserID,
	)
	if err != nil {
		return false, errors.Wrap(err, "check handle")
	}
	return taken, nil
}

// Create inserts p and reloads it with its owner.
func (s *ProfileStore) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Social == nil {
		p.Social = models.SocialLinks{}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, handle, company, website, location, bio, status,
		  github_username, skills, social, experience, education)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status,
		p.GithubUsername, p.Skills, p.Social, p.Experience, p.Education,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, profilesHandleKey):
			return nil, apperr.ErrHandleTaken
		case isUniqueViolation(err, profilesUserIDKey):
			return nil, ErrProfileExists
		}
		return nil, errors.Wrap(err, "insert profile")
	}

	return s.FindByUser(ctx, p.UserID)
}

// Mutate locks the profile of userID, applies fn and writes the whole row back.
func (s *ProfileStore) Mutate(ctx context.Context, userID string, fn func(p *models.Profile) error) (*models.Profile, error) {
	var profile *models.Profile

	err := database.WithTx(ctx, s.db, "mutate profile", func(tx *sqlx.Tx) error {
		p, err := s.getOne(ctx, tx, `p.user_id = $1 FOR UPDATE OF p`, userID)
		if err != nil {
			return err
		}

		if err := fn(p); err != nil {
			return err
		}

		err = tx.QueryRowxContext(ctx,
			`UPDATE profiles SET handle = $1, company = $2, website = $3, location = $4, bio = $5,
			  status = $6, github_username = $7, skills = $8, social = $9, experience = $10,
			  education = $11, updated_at = NOW()
			 WHERE id = $12
			 RETURNING updated_at`,
			p.Handle, p.Company, p.Website, p.Location, p.Bio,
			p.Status, p.GithubUsername, p.Skills, p.Social, p.Experience,
			p.Education, p.ID,
		).Scan(&p.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err, profilesHandleKey) {
				return apperr.ErrHandleTaken
			}
			return errors.Wrap(err, "update profile")
		}

		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteWithUser removes the user row; the profile and the user's posts go
// with it through ON DELETE CASCADE.
func (s *ProfileStore) DeleteWithUser(ctx context.Context, userID string) (DeleteSummary, error) {
	summary := DeleteSummary{UserID: userID}

	err := database.WithTx(ctx, s.db, "delete account", func(tx *sqlx.Tx) error {
		var existing string
		if err := tx.GetContext(ctx, &existing, `SELECT id FROM users WHERE id = $1`, userID); err != nil {
			if isMissing(err) {
				return apperr.ErrUserNotFound
			}
			return errors.Wrap(err, "find user")
		}

		if err := tx.GetContext(ctx, &summary.DeletedProfile,
			`SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)`, userID,
		); err != nil {
			return errors.Wrap(err, "check profile")
		}

		if err := tx.GetContext(ctx, &summary.DeletedPosts,
			`SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID,
		); err != nil {
			return errors.Wrap(err, "count posts")
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
		if err != nil {
			return errors.Wrap(err, "delete user")
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "delete user")
		}
		if rowsAffected == 0 {
			return apperr.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return DeleteSummary{UserID: userID}, err
	}
	return summary, nil
}
