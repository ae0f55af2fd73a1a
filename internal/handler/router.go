package handler

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/auth"
	"github.com/talhaustundag/ecommerce-api/pkg/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Cart     *CartHandler
	Order    *OrderHandler
	Admin    *AdminHandler
}

// NewRouter assembles the gin engine: recovery, logging, request ids, rate
// limiting, then the public, authenticated, and admin route groups.
func NewRouter(h Handlers, tokens *auth.TokenManager, db *sql.DB, logger *zap.Logger, rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimit(rps, burst))

	api := router.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		api.GET("/products", h.Product.List)
		api.GET("/products/:id", h.Product.Detail)
		api.GET("/categories", h.Category.List)

		api.GET("/health", func(c *gin.Context) {
			status := gin.H{"status": "healthy", "service": "ecommerce-api"}
			if err := db.Ping(); err != nil {
				status["database"] = "unhealthy"
				c.JSON(503, status)
				return
			}
			status["database"] = "healthy"
			c.JSON(200, status)
		})

		authed := api.Group("")
		authed.Use(middleware.Auth(tokens))
		{
			authed.GET("/profile", h.Auth.Profile)
			authed.PUT("/profile", h.Auth.UpdateProfile)

			authed.GET("/cart", h.Cart.GetCart)
			authed.POST("/cart/add", h.Cart.AddItem)
			authed.PUT("/cart/update", h.Cart.UpdateItem)
			authed.DELETE("/cart/remove/:product_id", h.Cart.RemoveItem)
			authed.DELETE("/cart/clear", h.Cart.ClearCart)

			authed.POST("/orders/create", h.Order.CreateOrder)
			authed.GET("/orders", h.Order.ListOrders)
			authed.GET("/orders/:id", h.Order.GetOrder)

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard", h.Admin.Dashboard)
				admin.PUT("/orders/:id/status", h.Order.UpdateStatus)

				admin.POST("/products", h.Product.Create)
				admin.PUT("/products/:id", h.Product.Update)
				admin.DELETE("/products/:id", h.Product.Delete)

				admin.POST("/categories", h.Category.Create)
				admin.PUT("/categories/:id", h.Category.Update)
				admin.DELETE("/categories/:id", h.Category.Delete)
			}
		}
	}

	return router
}
