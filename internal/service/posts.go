package service

import (
	"context"

	"github.com/odm275/dev-network/internal/authz"
	"github.com/odm275/dev-network/internal/models"
	"github.com/odm275/dev-network/internal/store"
)

// CreatePost publishes a post owned by actor. Name and avatar default to the
// actor's own.
func (s *Service) CreatePost(ctx context.Context, actor models.Actor, in PostInput) (*models.Post, error) {
	if err := requireActor(actor.ID); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   actor.ID,
		Text:     in.Text,
		Name:     orDefault(in.Name, actor.Name),
		Avatar:   orDefault(in.Avatar, actor.Avatar),
		Likes:    models.Likes{},
		Comments: models.Comments{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) Post(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// ListPosts returns posts newest first.
func (s *Service) ListPosts(ctx context.Context, params store.ListParams) ([]models.Post, error) {
	return s.posts.List(ctx, params)
}

func (s *Service) DeletePost(ctx context.Context, actorID string, postID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actorID, post, authz.DeletePost); err != nil {
		return err
	}
	return s.posts.Delete(ctx, postID)
}

func (s *Service) LikePost(ctx context.Context, actorID string, postID string) (*models.Post, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	return s.posts.Mutate(ctx, postID, func(p *models.Post) error {
		if err := authz.Authorize(actorID, p, authz.LikePost); err != nil {
			return err
		}
		return p.Like(actorID)
	})
}

func (s *Service) UnlikePost(ctx context.Context, actorID string, postID string) (*models.Post, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	return s.posts.Mutate(ctx, postID, func(p *models.Post) error {
		if err := authz.Authorize(actorID, p, authz.UnlikePost); err != nil {
			return err
		}
		return p.Unlike(actorID)
	})
}

func (s *Service) AddComment(ctx context.Context, actor models.Actor, postID string, in CommentInput) (*models.Post, error) {
	if err := requireActor(actor.ID); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	comment := models.Comment{
		UserID:    actor.ID,
		Text:      in.Text,
		Name:      orDefault(in.Name, actor.Name),
		Avatar:    orDefault(in.Avatar, actor.Avatar),
		CreatedAt: s.now(),
	}
	return s.posts.Mutate(ctx, postID, func(p *models.Post) error {
		if err := authz.Authorize(actor.ID, p, authz.CommentPost); err != nil {
			return err
		}
		p.AddComment(comment)
		return nil
	})
}

// DeleteComment removes a comment from the post. Like commenting, it is open
// to any authenticated user.
func (s *Service) DeleteComment(ctx context.Context, actorID string, postID string, commentID string) (*models.Post, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	return s.posts.Mutate(ctx, postID, func(p *models.Post) error {
		if err := authz.Authorize(actorID, p, authz.DeleteComment); err != nil {
			return err
		}
		return p.RemoveComment(commentID)
	})
}

func orDefault(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
