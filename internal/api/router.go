package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/api/handlers"
	"github.com/familiez/humans-service/internal/api/middleware"
	"github.com/familiez/humans-service/internal/auth"
	"github.com/familiez/humans-service/internal/config"
	"github.com/familiez/humans-service/internal/metrics"
)

// NewRouter assembles the Gin engine with all middleware and routes. Reload
// mode rebuilds the router on every restart, so construction must stay free
// of global side effects.
func NewRouter(cfg *config.Config, queries handlers.Querier, verifier *auth.Verifier, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if m != nil {
		router.Use(m.Middleware())
	}
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	// Initialize handlers
	pingHandler := handlers.NewPingHandler(queries)
	personHandler := handlers.NewPersonHandler(queries)
	familyHandler := handlers.NewFamilyHandler(queries)

	// Public routes (paths preserved from the original frontend contract)
	router.GET("/", pingHandler.GetRoot)
	router.GET("/pingAPI", pingHandler.GetPingAPI)
	router.GET("/pingDB", pingHandler.GetPingDB)
	router.GET("/GetPersonsLike", personHandler.GetPersonsLike)
	router.GET("/GetPersonDetails", personHandler.GetPersonDetails)
	router.GET("/GetSiblings", familyHandler.GetSiblings)
	router.GET("/GetChildren", familyHandler.GetChildren)
	router.GET("/GetFather", familyHandler.GetFather)
	router.GET("/GetMother", familyHandler.GetMother)
	router.GET("/GetPartners", familyHandler.GetPartners)

	if m != nil {
		router.GET("/metrics", m.Handler())
	}

	// Mutations require SSO when the provider is configured.
	if cfg.OIDC.Enabled() {
		authHandler := handlers.NewAuthHandler(verifier)
		router.POST("/auth/token", authHandler.PostToken)

		protected := router.Group("")
		protected.Use(middleware.AuthMiddleware(verifier))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.POST("/UpdatePerson", personHandler.PostUpdatePerson)
		}
	} else {
		router.POST("/UpdatePerson", personHandler.PostUpdatePerson)
	}

	return router
}
