package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations. Every route
// runs behind the Auth middleware; the owner is always the caller.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// List handles GET /v1/recipes.
//
// @Summary      List the caller's recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   recipeSummaryResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	recipes, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(recipes))
}

// Create handles POST /v1/recipes. Any owner field in the payload is
// ignored; ownership comes from the token.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecipeRequest  true  "Recipe details"
// @Success      201   {object}  recipeDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Create(c.Request().Context(), user.ID, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.RecipesMutatedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toDetailResponse(recipe))
}

// Get handles GET /v1/recipes/:id.
//
// @Summary      Get a recipe by ID
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe ID"
// @Success      200  {object}  recipeDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := recipeID(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(recipe))
}

// Update handles PATCH /v1/recipes/:id. Omitted fields keep their values.
//
// @Summary      Partially update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Recipe ID"
// @Param        body  body      updateRecipeRequest  true  "Fields to update"
// @Success      200   {object}  recipeDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Update(c.Request().Context(), user.ID, id, toUpdateInput(req))
	if err != nil {
		return err
	}

	metrics.RecipesMutatedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, toDetailResponse(recipe))
}

// Replace handles PUT /v1/recipes/:id, overwriting every mutable field.
//
// @Summary      Replace a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Recipe ID"
// @Param        body  body      createRecipeRequest  true  "Recipe details"
// @Success      200   {object}  recipeDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/recipes/{id} [put]
func (h *RecipeHandler) Replace(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Replace(c.Request().Context(), user.ID, id, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.RecipesMutatedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, toDetailResponse(recipe))
}

// Delete handles DELETE /v1/recipes/:id.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  int  true  "Recipe ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := recipeID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}

	metrics.RecipesMutatedTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}

// recipeID parses the :id path parameter. A non-numeric ID can never match
// a record, so it is reported as not found rather than a bad request.
func recipeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrRecipeNotFound
	}
	return id, nil
}
