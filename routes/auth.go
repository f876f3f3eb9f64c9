package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/auth"
	"github.com/pngmarketplace/marketplace-api/middleware"
	"github.com/pngmarketplace/marketplace-api/session"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store, rdb *redis.Client) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", middleware.RateLimiter(rdb), auth.RegisterHandler(db, sessions))
		authGroup.POST("/login", middleware.RateLimiter(rdb), auth.LoginHandler(db, sessions))
		authGroup.POST("/logout", auth.LogoutHandler(sessions))

		authGroup.GET("/user", middleware.RequireAuth(sessions), auth.CurrentUserHandler(db))
	}
}
