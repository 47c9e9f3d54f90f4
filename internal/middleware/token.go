package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stemsi/exstem-summary/internal/response"
	"github.com/stemsi/exstem-summary/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for verified JWT claims.
	ContextKeyClaims = "claims"
)

// ForwardBearer picks up the caller's bearer token and attaches it to the
// request context so upstream reads are made on the caller's behalf.
// When verification is enabled, a present but invalid token is rejected.
// A missing token is allowed; the token service then falls back to the
// stored access_token.
func ForwardBearer(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, fromQuery := extractToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		if authService.Enabled() {
			claims, err := authService.ValidateToken(tokenStr)
			if err != nil {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
				return
			}
			c.Set(ContextKeyClaims, claims)
		}

		// Page links and the filter form do not repeat ?token=, so keep it
		// in the cookie for the rest of the browser session.
		if fromQuery {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(config.CacheKey.AccessTokenKey(), tokenStr, 0, "/", "", c.Request.TLS != nil, true)
		}

		c.Request = c.Request.WithContext(service.WithRequestToken(c.Request.Context(), tokenStr))
		c.Next()
	}
}

// GetClaims retrieves the verified claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// extractToken reads the Authorization header, then the ?token= query
// (links opened from a browser), then the access_token cookie. fromQuery
// reports whether the token came from the query string.
func extractToken(c *gin.Context) (token string, fromQuery bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1]), false
		}
	}

	if tok := c.Query("token"); tok != "" {
		return tok, true
	}

	if tok, err := c.Cookie(config.CacheKey.AccessTokenKey()); err == nil {
		return tok, false
	}
	return "", false
}
