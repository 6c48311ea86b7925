package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/auth"
	"github.com/familiez/humans-service/pkg/types"
)

// AuthMiddleware creates a middleware that validates SSO bearer tokens.
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Detail: "Missing token"})
			c.Abort()
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				c.JSON(http.StatusUnauthorized, types.ErrorResponse{Detail: "Token expired"})
			case errors.Is(err, auth.ErrInvalidToken):
				c.JSON(http.StatusUnauthorized, types.ErrorResponse{Detail: "Invalid token"})
			default:
				// Provider unreachable or misconfigured, not the caller's fault.
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: err.Error()})
			}
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("subject", claims.Subject)

		c.Next()
	}
}

// extractBearerToken pulls the token out of the Authorization header. The
// scheme match is case-insensitive.
func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetClaims extracts the verified token claims from the Gin context.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
