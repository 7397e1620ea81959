package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/models"
	"github.com/odm275/dev-network/internal/utils"
)

const (
	userIDContextKey     = "user_id"
	userNameContextKey   = "user_name"
	userAvatarContextKey = "user_avatar"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the token's identity for the handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header is required")
			return
		}

		token, err := utils.TokenFromHeader(authHeader)
		if err != nil {
			abortUnauthenticated(c, "Authorization header must be in the format 'Bearer {token}'")
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			abortUnauthenticated(c, "Invalid token")
			return
		}

		SetActor(c, models.Actor{ID: claims.ID, Name: claims.Name, Avatar: claims.Avatar})
		c.Next()
	}
}

// ActorFromContext returns the identity stored by AuthMiddleware. The ID is
// empty when the request was not authenticated.
func ActorFromContext(c *gin.Context) models.Actor {
	return models.Actor{
		ID:     c.GetString(userIDContextKey),
		Name:   c.GetString(userNameContextKey),
		Avatar: c.GetString(userAvatarContextKey),
	}
}

// SetActor stores an identity the way AuthMiddleware does.
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(userIDContextKey, actor.ID)
	c.Set(userNameContextKey, actor.Name)
	c.Set(userAvatarContextKey, actor.Avatar)
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    apperr.ErrUnauthenticated.Code,
		"message": message,
	})
}
