package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists audit-trail
// entries for recipe mutations.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	entry := &domain.Activity{
		UserID:    in.UserID,
		Action:    in.Action,
		RecipeID:  in.RecipeID,
		Title:     in.Title,
		Timestamp: in.Timestamp,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("user_id", in.UserID).
		Str("action", in.Action).
		Int64("recipe_id", in.RecipeID).
		Msg("activity recorded")

	return nil
}
