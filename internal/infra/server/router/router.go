// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/infra/observability"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/controller"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers served by the router. A nil controller
// leaves its routes unregistered.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Score       *controller.ScoreController
	Transaction *controller.TransactionController
	Category    *controller.CategoryController
	Leaderboard *controller.LeaderboardController
	Coaching    *controller.CoachingController
	Goal        *controller.GoalController
	Dashboard   *controller.DashboardController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	authMiddleware   *middleware.AuthMiddleware
	loginRateLimiter *middleware.RateLimiter
	metrics          *observability.Metrics
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginRateLimiter *middleware.RateLimiter,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		controllers:      controllers,
		authMiddleware:   authMiddleware,
		loginRateLimiter: loginRateLimiter,
		metrics:          metrics,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if environment == "test" {
		r.engine = gin.New()
		r.engine.Use(gin.Recovery())
	} else {
		r.engine = gin.Default()
	}

	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
}

// setupAPIRoutes configures the main API routes. Read endpoints accept
// anonymous callers as the guest user; goal creation needs a token.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	if c.Auth != nil {
		auth := v1.Group("/auth")
		if r.loginRateLimiter != nil {
			auth.Use(r.loginRateLimiter.Middleware())
		}
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	if r.authMiddleware == nil {
		return
	}

	reads := v1.Group("")
	reads.Use(r.authMiddleware.OptionalAuthenticate())
	{
		if c.Score != nil {
			reads.GET("/score", c.Score.Get)
			reads.GET("/monthly-scores", c.Score.Monthly)
		}
		if c.Transaction != nil {
			reads.GET("/transactions", c.Transaction.List)
			reads.GET("/transactions/top", c.Transaction.Top)
		}
		if c.Category != nil {
			reads.GET("/categories", c.Category.List)
		}
		if c.Leaderboard != nil {
			reads.GET("/leaderboard", c.Leaderboard.Get)
		}
		if c.Coaching != nil {
			reads.GET("/coaching/suggestions", c.Coaching.Suggestions)
			reads.POST("/coaching/suggestions/ack", c.Coaching.Acknowledge)
		}
		if c.Goal != nil {
			reads.GET("/goals", c.Goal.List)
		}
		if c.Dashboard != nil {
			reads.GET("/dashboard", c.Dashboard.Get)
		}
	}

	if c.Goal != nil {
		goals := v1.Group("/goals")
		goals.Use(r.authMiddleware.Authenticate())
		goals.POST("", c.Goal.Create)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
