package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"walletledger/internal/logger"
	"walletledger/internal/principal"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	apiKeyHeader = "X-API-Key"
)

// Middleware resolves the caller from either a bearer access token or an
// X-API-Key header and stores a principal.Principal on the context.
func Middleware(jwtSecret string, keys KeyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			p, status, msg := fromBearer(authHeader, jwtSecret)
			if status != 0 {
				c.AbortWithStatusJSON(status, gin.H{"error": msg})
				return
			}
			SetPrincipal(c, p)
			c.Next()
			return
		}

		if rawKey := c.GetHeader(apiKeyHeader); rawKey != "" {
			key, err := keys.FindByHash(c.Request.Context(), HashAPIKey(rawKey, jwtSecret))
			if err != nil {
				if !errors.Is(err, ErrInvalidAPIKey) {
					logger.Error("api key lookup failed", "error", err)
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
				return
			}
			if !key.Usable(time.Now()) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key expired or revoked"})
				return
			}
			SetPrincipal(c, principal.Principal{
				Kind:        principal.KindAPIKey,
				UserID:      key.UserID,
				KeyID:       key.ID,
				Permissions: principal.ParsePermissions(key.Permissions),
			})
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header or API key required"})
	}
}

func fromBearer(authHeader, secret string) (principal.Principal, int, string) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return principal.Principal{}, http.StatusUnauthorized, "Invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return principal.Principal{}, http.StatusUnauthorized, "Token is empty"
	}

	claims, err := ParseToken(tokenString, secret, TokenAccess)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return principal.Principal{}, http.StatusUnauthorized, "Token expired"
	case errors.Is(err, ErrInvalidTokenType):
		return principal.Principal{}, http.StatusUnauthorized, "Access token required"
	case err != nil:
		return principal.Principal{}, http.StatusUnauthorized, "Invalid or malformed token"
	}

	userID, _ := claims.UserID()
	return principal.NewUser(userID), 0, ""
}

// RequirePermission rejects principals lacking the scope with 403.
func RequirePermission(perm principal.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Principal not found"})
			return
		}
		if !p.Has(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (principal.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return principal.Principal{}, false
	}
	p, ok := v.(principal.Principal)
	return p, ok
}

// SetPrincipal stores the resolved caller for GetPrincipal.
func SetPrincipal(c *gin.Context, p principal.Principal) {
	c.Set(principalKey, p)
}
