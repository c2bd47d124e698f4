package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/services"
)

// SessionMiddleware guards every protected route. Each authenticated request
// counts as a user-activity event for the auto-lock timer; a locked session
// answers 423 until /auth/unlock succeeds.
func SessionMiddleware(secret string, lock *services.AutoLock, settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))

		if lock.State() == services.StateLocked {
			c.AbortWithStatusJSON(http.StatusLocked, gin.H{
				"error": i18n.T(lang, "error.locked", nil),
			})
			return
		}

		// With no auth method configured there is no session token to check.
		if settings.Settings().AuthMethod != "none" {
			tokenString := bearerToken(c.GetHeader("Authorization"))
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
				return
			}
			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
		}

		lock.Touch()
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}
