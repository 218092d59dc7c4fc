package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/logger"
	"github.com/harentsoaR/elearn-portal/internal/services"
)

const (
	UserIDKey       = "userID"
	SessionTokenKey = "sessionToken"
)

// SessionMiddleware resolves the session cookie, if any, and puts the user id
// in the context. Requests without a live session pass through untouched.
func SessionMiddleware(sessions *services.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrNoSession) {
				logger.FromGin(c).Error("session lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(UserIDKey, sess.UserID)
		c.Set(SessionTokenKey, token)
		c.Next()
	}
}

// RequireSession sends visitors without a session to the login page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok && !id.IsZero()
}
