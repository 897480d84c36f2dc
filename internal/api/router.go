package api

import (
	"context"
	"net/http"
	"time"

	groceryHandler "meal-planner/internal/api/handlers/grocery"
	"meal-planner/internal/api/handlers/health"
	planHandler "meal-planner/internal/api/handlers/plan"
	"meal-planner/internal/api/middleware"
	groceryService "meal-planner/internal/core/grocery"
	historyService "meal-planner/internal/core/history"
	planService "meal-planner/internal/core/plan"
	recipeService "meal-planner/internal/core/recipe"
	"meal-planner/internal/core/suggest"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)，本服務沒有大型請求
	maxBodySize = 1 << 20
)

// Services 路由所需的核心服務
type Services struct {
	Recipes    *recipeService.FileStore
	Grocery    *groceryService.Generator
	Planner    *planService.Planner
	Scorer     *planService.Scorer
	History    historyService.Store
	Suggestion suggest.SuggestionSource
}

// BuildServices 依設定組裝核心服務
func BuildServices(cfg *config.Config, cache *suggest.CacheManager) (*Services, error) {
	recipes := recipeService.NewFileStore(cfg.Planner.RecipesDir)

	// 建議來源未啟用時為 nil，計劃器會自行退化
	var source suggest.SuggestionSource
	var classifier suggest.CuisineClassifier
	if cfg.OpenRouter.Enabled {
		openRouter := suggest.NewOpenRouterSource(cfg, cache)
		source = openRouter
		classifier = openRouter
	}

	var history historyService.Store
	switch cfg.History.Backend {
	case "redis":
		store, err := historyService.NewRedisStore(&cfg.History)
		if err != nil {
			return nil, err
		}
		history = store
	default:
		history = historyService.NewFileStore(cfg.Planner.HistoryDir)
	}

	return &Services{
		Recipes:    recipes,
		Grocery:    groceryService.NewGenerator(recipes),
		Planner:    planService.NewPlanner(source),
		Scorer:     planService.NewScorer(classifier),
		History:    history,
		Suggestion: source,
	}, nil
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, services *Services) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.RateLimit(&cfg.RateLimit))
	router.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())

	// 全局中間件：請求超時與設定注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		grocery := groceryHandler.NewHandler(services.Grocery, cfg.Planner.PlansDir)
		groceryGroup := api.Group("/grocery")
		{
			// 從食譜列表產生購物清單
			groceryGroup.POST("/list", grocery.HandleList)

			// 從已保存的週計劃產生購物清單
			groceryGroup.POST("/from-plan", grocery.HandleFromPlan)
		}

		plans := planHandler.NewHandler(services.Recipes, services.Planner, services.Scorer, services.History, cfg)
		planGroup := api.Group("/plan")
		{
			// 產生一週餐食計劃並記入歷史
			planGroup.POST("/generate", plans.HandleGenerate)

			// 為既有計劃評分
			planGroup.POST("/score", plans.HandleScore)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("history_backend", cfg.History.Backend),
		zap.Bool("suggestions_enabled", cfg.OpenRouter.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
