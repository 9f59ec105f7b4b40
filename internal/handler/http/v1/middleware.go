package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/djgraphics28/bvms-api/internal/service"
)

// ключ контекста gin, под которым хранится текущая сессия
const sessionContextKey = "session"

// SessionAuthMiddleware проверяет токен сессии запроса.
// Сессия с незавершенной двухфакторной проверкой не допускается к панели.
func SessionAuthMiddleware(auth service.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token is required"})
			return
		}

		session, err := auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSession) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
				return
			}
			logger.WithField("method", "SessionAuthMiddleware").WithError(err).Error("Failed to validate session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if !session.TwoFactorPassed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "two-factor verification required"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}
