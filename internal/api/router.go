package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-recommender/internal/api/handlers/health"
	recipeHandler "recipe-recommender/internal/api/handlers/recipe"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/catalog"
	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/core/nutrition/cache"
	"recipe-recommender/internal/core/nutrition/fdc"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Whole-request deadline; the external lookup has its own shorter one.
	timeoutDuration = 30 * time.Second
	// Request body limit (1MB). Pantry and profile payloads are tiny.
	maxBodySize = 1 << 20
)

// SetupRouter assembles the gin engine and wires every service.
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		router.Use(middleware.Deduplication(cfg.DedupWindow))
	}

	recipes, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		common.LogError("failed to load recipe catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	provider := fdc.NewClient(cfg)
	resolver := nutrition.NewResolver(provider, store, cfg.FDC.Timeout)
	rules := recommend.NewRuleSet(cfg.Recommend.RenalSodiumMaxMg)
	engine := recommend.NewEngine(resolver, rules, recipes, cfg.Recommend.MaxResults)

	common.LogInfo("services initialized",
		zap.Int("catalog_recipes", len(recipes)),
		zap.Bool("cache_enabled", store != nil),
		zap.Int("max_results", cfg.Recommend.MaxResults),
	)

	// Per-request deadline plus context wiring for the health endpoint.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)
		c.Set("nutrient_cache", store)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	handler := recipeHandler.NewHandler(engine)

	api := router.Group("/api")
	{
		api.GET("/recipes", handler.HandleGetRecipes)
		api.POST("/recommend", handler.HandleRecommend)
	}

	common.LogInfo("router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// NewCacheStore creates the configured nutrient cache backend, or nil when
// caching is disabled.
func NewCacheStore(cfg *config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("nutrient cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisStore(cfg.Cache.RedisAddr, cfg.Cache.RedisTTL)
	default:
		return cache.NewMemoryStore(cfg.Cache.MaxSize), nil
	}
}
