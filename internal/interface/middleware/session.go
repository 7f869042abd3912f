package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communehq/commune/pkg/helpers"
	"github.com/communehq/commune/pkg/response"
)

// Session parses the session cookie and puts the wrapped credential
// into the Gin context. It does NOT authenticate the caller: the cookie
// only carries the authentication-token id and secret, and every
// handler still proves ownership against the stored token before
// acting. An unparsable cookie is rejected early to keep garbage out
// of the handlers.
func Session(sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie("session")
		if err != nil || cookie == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing session", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := sessions.Parse(cookie)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid session", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("tokenID", claims.TokenID)
		c.Set("tokenSecret", claims.TokenSecret)
		c.Next()
	}
}
