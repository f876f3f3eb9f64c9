package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/session"
)

// SetupRoutes is the single entry-point that wires up the public catalog,
// auth, user, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store, rdb *redis.Client) {
	// Public auth routes (rate limited)
	SetupAuthRoutes(r, db, sessions, rdb)

	// Public catalog + session-protected cart and order routes
	SetupUserRoutes(r, db, sessions)

	// Admin routes (session + admin role)
	SetupAdminRoutes(r, db, sessions)
}
