package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeService implements ownership-scoped CRUD over recipes. The owner is
// always the authenticated caller; it cannot be supplied by the client.
type RecipeService struct {
	repo     ports.RecipeRepository
	activity ports.ActivityDispatcher
	log      zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, activity ports.ActivityDispatcher, log zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, activity: activity, log: log}
}

func (s *RecipeService) Create(ctx context.Context, userID string, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	if err := validateRecipeInput(input.TimeMinutes, input.Price); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create recipe")
		return nil, err
	}

	s.record(domain.ActionRecipeCreated, recipe)
	return recipe, nil
}

// List returns the caller's recipes, most recently created first.
func (s *RecipeService) List(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *RecipeService) Get(ctx context.Context, userID string, id int64) (*domain.Recipe, error) {
	return s.repo.FindByID(ctx, id, userID)
}

// Update applies a partial change to a recipe the caller owns. Nil fields
// keep their stored values.
func (s *RecipeService) Update(ctx context.Context, userID string, id int64, input ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	if err := validateRecipeInput(recipe.TimeMinutes, recipe.Price); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	s.record(domain.ActionRecipeUpdated, recipe)
	return recipe, nil
}

// Replace overwrites every mutable field, PUT-style. Owner and ID stay fixed.
func (s *RecipeService) Replace(ctx context.Context, userID string, id int64, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	if err := validateRecipeInput(input.TimeMinutes, input.Price); err != nil {
		return nil, err
	}

	recipe, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	recipe.Title = input.Title
	recipe.TimeMinutes = input.TimeMinutes
	recipe.Price = input.Price
	recipe.Description = input.Description
	recipe.Link = input.Link

	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	s.record(domain.ActionRecipeUpdated, recipe)
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, userID string, id int64) error {
	recipe, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.record(domain.ActionRecipeDeleted, recipe)
	return nil
}

func (s *RecipeService) record(action string, recipe *domain.Recipe) {
	if s.activity == nil {
		return
	}
	s.activity.Enqueue(ports.ActivityInput{
		UserID:    recipe.UserID,
		Action:    action,
		RecipeID:  recipe.ID,
		Title:     recipe.Title,
		Timestamp: time.Now().UTC(),
	})
}

func validateRecipeInput(timeMinutes int, price string) error {
	if timeMinutes < 0 {
		return domain.ErrInvalidTime
	}
	return domain.ValidatePrice(price)
}
