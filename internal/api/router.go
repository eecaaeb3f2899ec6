package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// Dependencies carries everything the router needs, passed in explicitly at
// startup instead of read from any process-wide state.
type Dependencies struct {
	Users   ports.UserService
	Recipes ports.RecipeService
	// Resolver maps bearer tokens to users for the Auth middleware. It is
	// usually the same object as Users.
	Resolver middleware.TokenResolver
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipebox"))

	userHandler := handler.NewUserHandler(deps.Users)
	recipeHandler := handler.NewRecipeHandler(deps.Recipes)
	auth := middleware.Auth(deps.Resolver)

	// --- Public user routes ---
	e.POST("/v1/users", userHandler.Register)
	e.POST("/v1/users/token", userHandler.Token)

	// --- Authenticated user routes ---
	// Registered per route rather than as a middleware-bearing group: a
	// group swallows unmatched methods with its own 404, and POST here
	// must answer 405.
	e.GET("/v1/users/me", userHandler.Me, auth)
	e.PATCH("/v1/users/me", userHandler.UpdateMe, auth)

	// --- Recipe routes (all authenticated, owner-scoped) ---
	recipes := e.Group("/v1/recipes", auth)
	recipes.GET("", recipeHandler.List)
	recipes.POST("", recipeHandler.Create)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PATCH("/:id", recipeHandler.Update)
	recipes.PUT("/:id", recipeHandler.Replace)
	recipes.DELETE("/:id", recipeHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", auth, middleware.StaffOnly())
	admin.POST("/users", userHandler.CreateSuperuser)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
