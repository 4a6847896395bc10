package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/artfusion/gallery-api/internal/config"
	"github.com/artfusion/gallery-api/internal/handler"
	"github.com/artfusion/gallery-api/internal/middleware"
)

// RegisterRoutes wires every endpoint onto the provided Echo instance.
// Public reads go through the Redis response cache and the rate limiter
// (both become pass-throughs when rdb is nil); everything under /admin sits
// behind the admin bearer-token gate.
func RegisterRoutes(e *echo.Echo, cfg config.Config, pub *handler.PublicHandler, auth *handler.AuthHandler, adm *handler.AdminHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Public catalog surface. Rating submission is the only anonymous
	// write, so it gets the limiter but never the cache.
	e.GET("/paintings", pub.List, limit, cache)
	e.POST("/paintings/:id/rating", pub.Rate, limit)

	// Session gate for the single admin identity.
	e.POST("/auth/login", auth.Login, limit)
	e.GET("/auth/verify", auth.Verify, middleware.AdminAuth(cfg.JWTSecret))

	// Mutating catalog routes require a valid, unexpired bearer token.
	g := e.Group("/admin", middleware.AdminAuth(cfg.JWTSecret))
	g.POST("/paintings", adm.Create)
	g.PUT("/paintings/:id", adm.Update)
	g.DELETE("/paintings/:id", adm.Delete)
}
