package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"parkmate-backend/config"
	"parkmate-backend/internal/mw"
	"parkmate-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// Every endpoint is CORS-open: the mobile app talks to us directly.
	r.Use(cors.Default())

	handler := NewHandler(s, cfg.Search)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/spaces/search", handler.SearchNearby)

		api.POST("/vehicles/check-in", handler.CheckIn)
		api.POST("/vehicles/check-out", handler.CheckOut)
		api.POST("/vehicles/lookup", handler.Lookup)

		api.POST("/spaces", handler.CreateSpace)
		api.GET("/owners/:owner_id/spaces", caching, handler.OwnerSpaces)

		api.POST("/payments", handler.RecordPayment)
	}

	return r
}
