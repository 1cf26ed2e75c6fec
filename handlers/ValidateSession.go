package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorcompare/storage"
)

// AuthRequired validates the Authorization session header and stores the
// user on the context for downstream handlers.
func AuthRequired(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
			c.Abort()
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// ValidateSession checks whether a session id is still valid.
// @Summary Validate session
// @Description Returns the session's user when the Authorization header carries a live session id.
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [post]
func ValidateSession(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Session is valid",
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
			},
		})
	}
}
