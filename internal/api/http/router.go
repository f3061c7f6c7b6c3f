package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litrevu/litrevu/internal/api/http/handlers"
	"github.com/litrevu/litrevu/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Reviews        *handlers.ReviewsHandler
	Follows        *handlers.FollowsHandler
	Feed           *handlers.FeedHandler
	Media          *handlers.MediaHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Put("/profile/photo", cfg.Auth.UpdateProfilePhoto)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Post("/tickets/with-review", cfg.Tickets.CreateTicketAndReview)
	protected.Put("/tickets/:id", cfg.Tickets.UpdateTicket)
	protected.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)

	protected.Post("/tickets/:id/reviews", cfg.Reviews.CreateReview)
	protected.Put("/reviews/:id", cfg.Reviews.UpdateReview)
	protected.Delete("/reviews/:id", cfg.Reviews.DeleteReview)

	protected.Post("/follows", cfg.Follows.Follow)
	protected.Delete("/follows/:userId", cfg.Follows.Unfollow)
	protected.Get("/follows", cfg.Follows.List)

	protected.Get("/feed", cfg.Feed.GetFeed)
	protected.Get("/posts", cfg.Feed.GetOwnPosts)

	protected.Post("/media", cfg.Media.Upload)
}
