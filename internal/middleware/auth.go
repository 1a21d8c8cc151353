package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/pinboard/internal/services"
	"github.com/thereayou/pinboard/pkg/auth"
)

const UserKey = "currentUser"

// AuthMiddleware проверяет cookie сессии и кладёт пользователя в контекст.
// Отсутствие cookie и невалидная подпись — разные исходы: 401 и 403.
func AuthMiddleware(jwtManager *auth.JWTManager, blacklist TokenBlacklist, users services.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromCookie(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "you are not authenticated"})
			c.Abort()
			return
		}

		// Проверяем, не отозван ли токен
		revoked, err := blacklist.Contains(c.Request.Context(), token)
		if err != nil || revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "token is revoked"})
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "token expired"})
			c.Abort()
			return
		}

		user, err := users.GetUser(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "you are not authenticated"})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
