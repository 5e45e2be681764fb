package router

import (
	"fmt"
	"strings"

	"github.com/peptide-store/internal/config"
	adminhandlers "github.com/peptide-store/internal/http/handlers/admin"
	publichandlers "github.com/peptide-store/internal/http/handlers/public"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/provider"

	"github.com/gin-gonic/gin"
)

const defaultMetricsPath = "/metrics"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ps"
	}
	redisClient := c.Cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many register attempts",
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		Message:       "Too many checkout attempts",
	}

	// 中间件
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	if c.Metrics != nil {
		r.Use(MetricsMiddleware(c.Metrics))
	}
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", healthHandler(c))
	if c.Metrics != nil {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = defaultMetricsPath
		}
		r.GET(metricsPath, gin.WrapH(c.Metrics.Handler()))
	}

	apiV1 := r.Group("/api/v1")
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
			auth.GET("/captcha", publicHandler.GetImageCaptcha)
		}

		// 公开只读接口
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		masterData := apiV1.Group("/master-data")
		{
			masterData.GET("/shipment-methods", publicHandler.ListShipmentMethods)
			masterData.GET("/payment-methods", publicHandler.ListPaymentMethods)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.Verifier), AuthzMiddleware(c.AuthzService))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.PATCH("/cart", publicHandler.UpdateCartItem)
			user.DELETE("/cart", publicHandler.RemoveCartItem)

			user.GET("/orders", publicHandler.ListOrders)
			user.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByUserID), publicHandler.CreateOrder)
			user.POST("/orders/quote", publicHandler.QuoteOrder)
			user.GET("/orders/:id", publicHandler.GetOrder)

			user.POST("/promotions/validate", publicHandler.ValidatePromotion)
			user.GET("/promotions", publicHandler.ListPromotions)
			user.POST("/promotions", publicHandler.CreatePromotion)
			user.PATCH("/promotions", publicHandler.TogglePromotion)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(c.Verifier), RequireAdminMiddleware(), AuthzMiddleware(c.AuthzService))
		{
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return r
}

// healthHandler 检查数据库与缓存连通性
func healthHandler(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{"database": "ok", "redis": "disabled"}
		healthy := true
		if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
			status["database"] = "unavailable"
			healthy = false
		}
		if c.Cache.Enabled() {
			status["redis"] = "ok"
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				status["redis"] = "unavailable"
				healthy = false
			}
		}
		if !healthy {
			logger.Warnw("health_check_failed", "status", status)
			response.Error(ctx, response.CodeInternal, "Service unhealthy")
			return
		}
		response.Success(ctx, "ok", status)
	}
}
