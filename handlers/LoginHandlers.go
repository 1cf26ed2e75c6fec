package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendorcompare/models"
	"vendorcompare/storage"
	"vendorcompare/utils"
)

// LoginHandler handles user authentication
// @Summary Login user
// @Description Authenticate with email/password; returns a session id and a short-lived JWT access token.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginData models.LoginRequest
		if err := c.ShouldBindJSON(&loginData); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := storage.GetUserByEmail(db, loginData.Email)
		if err != nil || !utils.ValidatePassword(user.Password, loginData.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		sessionID := uuid.New().String()
		session := models.Session{
			UserID:    int(user.ID),
			SessionID: sessionID,
			HostName:  c.Request.Host,
			IPAddress: loginData.IP,
			Timestamp: time.Now(),
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
		if session.IPAddress == "" {
			session.IPAddress = c.ClientIP()
		}

		if err := storage.SaveSession(db, &session, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
			return
		}

		accessToken, err := utils.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "details": err.Error()})
			return
		}

		resp := models.LoginResponse{
			Message:     "User successfully logged in",
			SessionID:   sessionID,
			AccessToken: accessToken,
		}
		resp.User.ID = user.ID
		resp.User.Email = user.Email
		c.JSON(http.StatusOK, resp)
	}
}

// LogoutHandler deletes all sessions of the authenticated user.
// @Summary Logout user
// @Description Removes the user's sessions. Requires Authorization header.
// @Tags Authentication
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/logout [post]
func LogoutHandler(db *sql.DB) gin.HandlerFunc {
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

		if err := storage.DeleteSession(db, int(user.ID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session", "details": err.Error()})
			return
		}

		utils.SuccessResponse(c, "Logged out", http.StatusOK)
	}
}
