package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeRepository defines persistence operations for recipes. Every lookup
// and mutation is filtered by owner, so a recipe owned by another user is
// indistinguishable from a missing one (domain.ErrRecipeNotFound).
type RecipeRepository interface {
	// Create inserts the recipe and assigns the next sequential ID.
	Create(ctx context.Context, r *domain.Recipe) error
	FindByID(ctx context.Context, id int64, userID string) (*domain.Recipe, error)
	// ListByUser returns the user's recipes ordered by descending ID.
	ListByUser(ctx context.Context, userID string) ([]*domain.Recipe, error)
	Update(ctx context.Context, r *domain.Recipe) error
	Delete(ctx context.Context, id int64, userID string) error
}
