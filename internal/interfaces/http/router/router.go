package router

import (
	"github.com/gin-gonic/gin"
	"github.com/minishop/backend/internal/domain/identity"
	"github.com/minishop/backend/internal/infrastructure/auth"
	"github.com/minishop/backend/internal/infrastructure/config"
	"github.com/minishop/backend/internal/infrastructure/logger"
	"github.com/minishop/backend/internal/interfaces/http/handler"
	"github.com/minishop/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Dependencies holds everything the router needs to wire the API
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Users          identity.UserRepository

	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Carts    *handler.CartHandler
	Orders   *handler.OrderHandler
	System   *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes registered
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: deps.Config.HTTP.CORSAllowOrigins,
			AllowMethods: deps.Config.HTTP.CORSAllowMethods,
			AllowHeaders: deps.Config.HTTP.CORSAllowHeaders,
		}),
		middleware.BodyLimit(deps.Config.HTTP.MaxBodySize),
	)

	engine.GET("/health", deps.System.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", deps.System.Health)

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
	})
	accountGuard := middleware.AccountGuard(deps.Users, deps.Logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/logout", requireAuth, deps.Auth.Logout)
		authGroup.GET("/me", requireAuth, deps.Auth.Me)
	}

	products := api.Group("/products")
	{
		products.GET("", deps.Products.List)
		products.GET("/:id", deps.Products.Get)

		adminOnly := products.Group("", requireAuth, middleware.RequireAdmin())
		adminOnly.POST("", deps.Products.Create)
		adminOnly.PATCH("/:id", deps.Products.Update)
		adminOnly.DELETE("/:id", deps.Products.Delete)
	}

	carts := api.Group("/cart", requireAuth, accountGuard)
	{
		carts.GET("", deps.Carts.Get)
		carts.DELETE("", deps.Carts.Clear)
		carts.POST("/items", deps.Carts.AddItem)
		carts.DELETE("/items/:id", deps.Carts.RemoveItem)
	}

	orders := api.Group("/orders", requireAuth, accountGuard)
	{
		orders.POST("/checkout", deps.Orders.Checkout)
		orders.GET("/myOrders", deps.Orders.List)
		orders.GET("/:id", deps.Orders.Get)
		orders.PATCH("/:id/cancel", deps.Orders.Cancel)
	}

	return engine
}
