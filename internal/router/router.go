package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/restaurant-table-reservation/internal/config"     // cache and rate limit configuration
    "github.com/iliyamo/restaurant-table-reservation/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/restaurant-table-reservation/internal/middleware" // import middleware for JWT auth, caching and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems probe this endpoint to
    // verify that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while the protected profile endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Issue a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a JSON body containing a refresh_token and
    // invalidates that token; no JWT is required.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.PUT("/profile", a.UpdateProfile)
    auth.PUT("/change-password", a.ChangePassword)
}

// RegisterSearch registers the public availability search endpoint.
// Search responses are cached in Redis and the endpoint is rate
// limited per client; both middlewares degrade to passthrough when
// the Redis client is nil.
func RegisterSearch(e *echo.Echo, s *handler.SearchHandler, rdb *redis.Client) {
    e.GET("/v1/restaurants/search", s.Search,
        middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
        middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
    )
}
