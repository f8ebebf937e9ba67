package router

import (
	"fmt"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/internal/token"
	"github.com/anonto42/nano-social/backend/internal/validators"
)

const bodyLimit = "5M"

// Dependencies is everything the HTTP layer needs. Firebase may be nil.
type Dependencies struct {
	Users         repositories.UserRepository
	Follows       repositories.FollowRepository
	Likes         repositories.LikeRepository
	Notifications repositories.NotificationRepository
	Posts         repositories.PostRepository
	Images        services.ImageStore
	Tokens        *token.JWT
	Firebase      handlers.FirebaseVerifier
	Logger        *logger.Logger
	BcryptCost    int
	SecureCookie  bool
}

// New builds a fully configured Echo instance.
func New(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(deps.Logger)

	SetupMiddleware(e, deps.Logger)
	if err := SetupRoutes(e, deps); err != nil {
		return nil, err
	}
	return e, nil
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *logger.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.BodyLimit(bodyLimit))
	e.Use(middleware.RequestLogger(log))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	v := validators.NewValidator()

	// --- Services ---
	auth, err := services.NewAuth(deps.Users, deps.Follows, deps.Likes, deps.Tokens, v, deps.BcryptCost, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	users := services.NewUsers(deps.Users, deps.Follows, deps.Likes, deps.Images, v, deps.BcryptCost, deps.Logger)
	posts := services.NewPosts(deps.Users, deps.Follows, deps.Likes, deps.Posts, deps.Images, v, deps.Logger)
	graph := services.NewGraph(deps.Users, deps.Follows, deps.Likes, deps.Posts, deps.Notifications, deps.Logger)
	notifications := services.NewNotifications(deps.Users, deps.Notifications, deps.Logger)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	protect := middleware.ProtectRoute(deps.Tokens, deps.Users)
	api := e.Group("/api")

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(auth, users, deps.Firebase, deps.Tokens.TTL(), deps.SecureCookie)
	authHandler.RegisterAuthRoutes(api.Group("/auth"), protect)

	// --- Protected routes ---
	postGroup := api.Group("/posts", protect)
	handlers.NewPostHandler(posts).RegisterPostRoutes(postGroup)
	handlers.NewCommentHandler(posts).RegisterCommentRoutes(postGroup)
	handlers.NewLikeHandler(graph).RegisterLikeRoutes(postGroup)
	handlers.NewFeedHandler(posts).RegisterFeedRoutes(postGroup)

	userGroup := api.Group("/users", protect)
	handlers.NewUserHandler(users).RegisterProfileRoutes(userGroup)
	handlers.NewFollowHandler(graph).RegisterFollowRoutes(userGroup)

	notificationGroup := api.Group("/notifications", protect)
	handlers.NewNotificationHandler(notifications).RegisterNotificationRoutes(notificationGroup)

	deps.Logger.Info("routes configured", "firebase_login", deps.Firebase != nil)
	return nil
}
