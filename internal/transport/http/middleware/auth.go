package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devconnector/internal/transport/http/response"
)

const (
	TokenHeader      = "x-auth-token"
	ContextUserIDKey = "user_id"
)

type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// AuthToken rejects requests without a valid session token and stores the
// caller's user id in the gin context otherwise.
func AuthToken(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(TokenHeader))
		if token == "" {
			response.Msg(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			response.Msg(c, http.StatusUnauthorized, "Token not valid")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok && userID != 0
}
