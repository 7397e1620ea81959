package service

import (
	"context"
	"errors"
	"log"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/authz"
	"github.com/odm275/dev-network/internal/models"
	"github.com/odm275/dev-network/internal/store"
)

// UpsertProfile creates the actor's profile or patches the existing one.
func (s *Service) UpsertProfile(ctx context.Context, actorID string, in ProfileInput) (*models.Profile, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	in = in.normalized()
	if err := validate(in); err != nil {
		return nil, err
	}

	update := in.update()
	if update.Handle != nil {
		taken, err := s.profiles.HandleTaken(ctx, *update.Handle, actorID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrHandleTaken
		}
	}

	_, err := s.profiles.FindByUser(ctx, actorID)
	switch {
	case errors.Is(err, apperr.ErrProfileNotFound):
		profile := &models.Profile{UserID: actorID}
		profile.Apply(update)
		created, err := s.profiles.Create(ctx, profile)
		switch {
		case err == nil:
			log.Printf("profile_created user_id=%s handle=%s", actorID, created.Handle)
			return created, nil
		case !errors.Is(err, store.ErrProfileExists):
			return nil, err
		}
		// Lost the race against a concurrent create: patch that profile instead.
	case err != nil:
		return nil, err
	}

	return s.profiles.Mutate(ctx, actorID, func(p *models.Profile) error {
		if err := authz.Authorize(actorID, p, authz.UpdateProfile); err != nil {
			return err
		}
		p.Apply(update)
		return nil
	})
}

func (s *Service) ProfileForUser(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.FindByUser(ctx, userID)
}

func (s *Service) ProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.profiles.FindByHandle(ctx, handle)
}

func (s *Service) ListProfiles(ctx context.Context, params store.ListParams) ([]models.Profile, error) {
	return s.profiles.List(ctx, params)
}

func (s *Service) AddExperience(ctx context.Context, actorID string, in ExperienceInput) (*models.Profile, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	entry := in.entry()
	return s.profiles.Mutate(ctx, actorID, func(p *models.Profile) error {
		if err := authz.Authorize(actorID, p, authz.UpdateProfile); err != nil {
			return err
		}
		p.AddExperience(entry)
		return nil
	})
}

func (s *Service) DeleteExperience(ctx context.Context, actorID string, experienceID string) (*models.Profile, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	return s.profiles.Mutate(ctx, actorID, func(p *models.Profile) error {
		if err := authz.Authorize(actorID, p, authz.DeleteProfileEntry); err != nil {
			return err
		}
		return p.RemoveExperience(experienceID)
	})
}

func (s *Service) AddEducation(ctx context.Context, actorID string, in EducationInput) (*models.Profile, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	entry := in.entry()
	return s.profiles.Mutate(ctx, actorID, func(p *models.Profile) error {
		if err := authz.Authorize(actorID, p, authz.UpdateProfile); err != nil {
			return err
		}
		p.AddEducation(entry)
		return nil
	})
}

func (s *Service) DeleteEducation(ctx context.Context, actorID string, educationID string) (*models.Profile, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}

	return s.profiles.Mutate(ctx, actorID, func(p *models.Profile) error {
		if err := authz.Authorize(actorID, p, authz.DeleteProfileEntry); err != nil {
			return err
		}
		return p.RemoveEducation(educationID)
	})
}

// DeleteAccount removes the actor's profile, posts and user record.
func (s *Service) DeleteAccount(ctx context.Context, actorID string) (store.DeleteSummary, error) {
	if err := requireActor(actorID); err != nil {
		return store.DeleteSummary{}, err
	}

	summary, err := s.profiles.DeleteWithUser(ctx, actorID)
	if err != nil {
		return store.DeleteSummary{}, err
	}
	log.Printf("account_deleted user_id=%s profile=%t posts=%d", actorID, summary.DeletedProfile, summary.DeletedPosts)
	return summary, nil
}
