package handler

type createRecipeRequest struct {
	Title       string `json:"title"        validate:"required"`
	TimeMinutes int    `json:"time_minutes" validate:"gte=0"`
	Price       string `json:"price"        validate:"required,numeric"`
	Description string `json:"description"`
	Link        string `json:"link"         validate:"omitempty,url"`
}

type updateRecipeRequest struct {
	Title       *string `json:"title"`
	TimeMinutes *int    `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *string `json:"price"        validate:"omitempty,numeric"`
	Description *string `json:"description"`
	Link        *string `json:"link"         validate:"omitempty,url"`
}

// recipeSummaryResponse is the lightweight item used in list responses.
type recipeSummaryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link,omitempty"`
}

// recipeDetailResponse is the single-record view: the summary fields plus
// the description.
type recipeDetailResponse struct {
	recipeSummaryResponse
	Description string `json:"description,omitempty"`
}
