package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// CreateRecipeInput carries all data needed to create a recipe. The owner is
// never part of the input; it is always taken from the authenticated caller.
type CreateRecipeInput struct {
	Title       string
	TimeMinutes int
	Price       string
	Description string
	Link        string
}

// UpdateRecipeInput carries a partial update. Nil fields are left untouched.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *string
	Description *string
	Link        *string
}

// RecipeService defines ownership-scoped use-case operations for recipes.
// userID identifies the authenticated caller on every call.
type RecipeService interface {
	Create(ctx context.Context, userID string, input CreateRecipeInput) (*domain.Recipe, error)
	List(ctx context.Context, userID string) ([]*domain.Recipe, error)
	Get(ctx context.Context, userID string, id int64) (*domain.Recipe, error)
	Update(ctx context.Context, userID string, id int64, input UpdateRecipeInput) (*domain.Recipe, error)
	// Replace overwrites every mutable field, PUT-style.
	Replace(ctx context.Context, userID string, id int64, input CreateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, userID string, id int64) error
}
