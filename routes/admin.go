package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/pngmarketplace/marketplace-api/controllers/order"
	productControllers "github.com/pngmarketplace/marketplace-api/controllers/product"
	"github.com/pngmarketplace/marketplace-api/middleware"
	"github.com/pngmarketplace/marketplace-api/session"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an admin
// session.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(sessions), middleware.RequireAdmin())
	{
		// ──────────────── Catalog Management ────────────────
		adminGroup.POST("/products", productControllers.CreateProduct(db))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(db))
		adminGroup.GET("/products/export", productControllers.ExportProductsToExcel(db))

		adminGroup.POST("/categories", productControllers.CreateCategory(db))

		// ──────────────── Orders ────────────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
	}
}
