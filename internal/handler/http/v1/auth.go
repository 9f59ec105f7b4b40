package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/djgraphics28/bvms-api/internal/service"
)

const sessionHeader = "X-Session-Token"

// sessionToken извлекает токен сессии из заголовков запроса
func sessionToken(c *gin.Context) string {
	if token := c.GetHeader(sessionHeader); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// @Summary Log in to the admin panel
// @Description Authenticate with email and password. When two-factor auth is enabled a verification code is emailed and must be confirmed before the session becomes usable.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, user, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.WithError(err).Error("Failed to log in")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:             session.Token,
		TwoFactorRequired: user.TwoFactorEnabled,
	})
}

// @Summary Verify a two-factor code
// @Description Confirm the emailed two-factor code for the current session.
// @Tags Auth
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param code body VerifyTwoFactorRequest true "Two-factor code"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid session or code"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /2fa/verify [post]
func (h *Handler) verifyTwoFactor(c *gin.Context) {
	log := h.logger.WithField("method", "verifyTwoFactor")

	token := sessionToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session token is required"})
		return
	}

	var input VerifyTwoFactorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.VerifyTwoFactor(c.Request.Context(), token, input.Code); err != nil {
		if errors.Is(err, service.ErrInvalidSession) || errors.Is(err, service.ErrInvalidTwoFactor) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session or code"})
			return
		}
		log.WithError(err).Error("Failed to verify two-factor code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Log out
// @Description Invalidate the current session.
// @Tags Auth
// @Produce json
// @Security SessionAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Missing session token"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /logout [post]
func (h *Handler) logout(c *gin.Context) {
	log := h.logger.WithField("method", "logout")

	token := sessionToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session token is required"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		log.WithError(err).Error("Failed to log out")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
