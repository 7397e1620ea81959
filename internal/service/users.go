package service

import (
	"context"
	"errors"
	"log"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/models"
	"github.com/odm275/dev-network/internal/utils"
)

// Register creates a user with a hashed password and a gravatar avatar.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrEmailTaken
	}

	digest, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Avatar:   utils.GravatarURL(in.Email),
		Password: digest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("user_registered user_id=%s", user.ID)
	return user, nil
}

// Login checks the credentials and returns a "Bearer " prefixed token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := validate(in); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}

	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return "", apperr.ErrBadPassword
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Avatar)
	if err != nil {
		return "", err
	}
	return utils.BearerToken(token), nil
}

func (s *Service) CurrentUser(ctx context.Context, actorID string) (*models.User, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actorID)
	if errors.Is(err, apperr.ErrUserNotFound) {
		return nil, apperr.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
