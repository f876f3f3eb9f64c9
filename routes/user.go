package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/pngmarketplace/marketplace-api/controllers/cart"
	orderControllers "github.com/pngmarketplace/marketplace-api/controllers/order"
	productControllers "github.com/pngmarketplace/marketplace-api/controllers/product"
	"github.com/pngmarketplace/marketplace-api/middleware"
	"github.com/pngmarketplace/marketplace-api/session"
)

// SetupUserRoutes registers the public catalog endpoints and the
// session-protected "/user/*" cart and order endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store) {
	// ──────────────── Public Catalog ────────────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetCategories(db))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireAuth(sessions))
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCartHandler(db))       // GET /user/cart
			cartGroup.POST("", cartControllers.AddToCartHandler(db))        // POST /user/cart
			cartGroup.PUT("/:id", cartControllers.UpdateCartItemHandler(db)) // PUT /user/cart/:id
			cartGroup.DELETE("/:id", cartControllers.RemoveFromCartHandler(db))
			cartGroup.DELETE("", cartControllers.ClearCartHandler(db)) // DELETE /user/cart
		}

		// ──────────────── Orders ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("", orderControllers.PlaceOrderHandler(db))
			orderGroup.GET("", orderControllers.GetUserOrdersHandler(db))
			orderGroup.GET("/:id", orderControllers.GetOrderHandler(db))
		}
	}
}
