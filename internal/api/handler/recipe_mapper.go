package handler

import (
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createRecipeRequest) ports.CreateRecipeInput {
	return ports.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}
}

func toUpdateInput(req updateRecipeRequest) ports.UpdateRecipeInput {
	return ports.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}
}

// --- Domain → HTTP response ---

func toSummaryResponse(r *domain.Recipe) recipeSummaryResponse {
	return recipeSummaryResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func toDetailResponse(r *domain.Recipe) recipeDetailResponse {
	return recipeDetailResponse{
		recipeSummaryResponse: toSummaryResponse(r),
		Description:           r.Description,
	}
}

func toListResponse(recipes []*domain.Recipe) []recipeSummaryResponse {
	out := make([]recipeSummaryResponse, len(recipes))
	for i, r := range recipes {
		out[i] = toSummaryResponse(r)
	}
	return out
}
