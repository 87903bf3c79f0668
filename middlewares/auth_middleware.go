package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
)

// AuthMiddleware resolves who is calling. A bearer token wins over the session;
// a bad token is rejected outright. Anonymous requests pass through untouched.
func AuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization header"))
				c.Abort()
				return
			}

			claims, err := issuer.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				utils.RespondError(c, http.StatusUnauthorized, err)
				c.Abort()
				return
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxClaims, claims)
			c.Next()
			return
		}

		if sess := session.FromContext(c); sess.IsAuthenticated() {
			c.Set(ctxUserID, sess.UserID())
			c.Set(ctxRole, sess.Role())
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// BearerClaims returns the parsed token when the request carried one.
func BearerClaims(c *gin.Context) (*utils.CustomClaims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.CustomClaims)
	return claims, ok
}

// RequireLogin sends anonymous visitors to the signup page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.Redirect(http.StatusFound, "/signup")
			c.Abort()
			return
		}
		c.Next()
	}
}
