package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/api/middleware"
	"github.com/familiez/humans-service/internal/auth"
	"github.com/familiez/humans-service/internal/logger"
	"github.com/familiez/humans-service/pkg/types"
)

type AuthHandler struct {
	verifier *auth.Verifier
}

func NewAuthHandler(verifier *auth.Verifier) *AuthHandler {
	return &AuthHandler{verifier: verifier}
}

// PostToken exchanges a PKCE authorization code for an access token.
// POST /auth/token
func (h *AuthHandler) PostToken(c *gin.Context) {
	var req types.TokenExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: err.Error()})
		return
	}

	token, err := h.verifier.ExchangeAuthorizationCode(c.Request.Context(), req.Code, req.CodeVerifier)
	if err != nil {
		logger.Errorf("Token exchange failed: %v", err)
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Detail: "Token exchange failed"})
		return
	}
	c.JSON(http.StatusOK, types.TokenExchangeResponse{AccessToken: token})
}

// GetProfile returns the verified claims of the calling user.
// GET /auth/profile (behind AuthMiddleware)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Detail: "Missing token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subject": claims.Subject,
		"email":   claims.Email,
		"name":    claims.Name,
	})
}
