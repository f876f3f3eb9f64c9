package auth

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/middleware"
	"github.com/pngmarketplace/marketplace-api/models"
	"github.com/pngmarketplace/marketplace-api/session"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
	}
}

func setSessionCookie(c *gin.Context, sessions *session.Store, user models.User) error {
	token, err := sessions.Create(c.Request.Context(), user)
	if err != nil {
		return err
	}
	c.SetCookie(middleware.SessionCookie, token, int(sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}

// POST /auth/register
func RegisterHandler(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if len(input.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		if _, err := mail.ParseAddress(input.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		user, err := RegisterUser(db, input.Username, input.Email, input.Password, input.FullName)
		if err != nil {
			if errors.Is(err, ErrDuplicateUser) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed. Username or email may already exist."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		// Auto-login after registration.
		if err := setSessionCookie(c, sessions, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session creation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Registration successful",
			"user":    userPayload(user),
		})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
			return
		}

		user, err := AuthenticateUser(db, input.Username, input.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		if err := setSessionCookie(c, sessions, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session creation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userPayload(user),
		})
	}
}

// POST /auth/logout — destroys the server-side session, so the cookie is dead
// immediately even if the client keeps it.
func LogoutHandler(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
			if err := sessions.Destroy(c.Request.Context(), token); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
				return
			}
		}
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
	}
}

// GET /auth/user — requires RequireAuth.
func CurrentUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userPayload(user),
		})
	}
}
