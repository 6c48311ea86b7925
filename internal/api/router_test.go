package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/familiez/humans-service/internal/auth"
	"github.com/familiez/humans-service/internal/config"
	"github.com/familiez/humans-service/internal/metrics"
	"github.com/familiez/humans-service/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubQuerier returns empty result sets for every query.
type stubQuerier struct{}

func (stubQuerier) PingDatabase(ctx context.Context, tsFE, tsMW time.Time) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) PersonsLike(ctx context.Context, search string) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) ChildrenOfParent(ctx context.Context, parentID int64) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) FatherOf(ctx context.Context, childID int64) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) MotherOf(ctx context.Context, childID int64) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) PersonDetails(ctx context.Context, personID int64) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) PartnersOf(ctx context.Context, personID int64) ([]models.Record, error) {
	return nil, nil
}
func (stubQuerier) UpdatePerson(ctx context.Context, arg models.UpdatePersonParams) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           8000,
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimitBurst: 20,
	}
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := NewRouter(testConfig(), stubQuerier{}, nil, metrics.New())

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Hello visitor")

	for _, target := range []string{
		"/GetPersonsLike?stringToSearchFor=x",
		"/GetPersonDetails?personID=1",
		"/GetSiblings?parentID=1",
		"/GetChildren?personID=1",
		"/GetFather?childID=1",
		"/GetMother?childID=1",
		"/GetPartners?personID=1",
	} {
		require.Equal(t, http.StatusOK, get(router, target).Code, target)
	}

	require.Equal(t, http.StatusNotFound, get(router, "/nope").Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(testConfig(), stubQuerier{}, nil, metrics.New())

	// A request first, so the scrape has something to report.
	require.Equal(t, http.StatusOK, get(router, "/").Code)

	w := get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "humans_http_requests_total")
}

func TestRouter_UpdatePersonOpenWithoutOIDC(t *testing.T) {
	router := NewRouter(testConfig(), stubQuerier{}, nil, nil)

	req := httptest.NewRequest("POST", "/UpdatePerson", strings.NewReader(`{"personId": 1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_UpdatePersonProtectedWithOIDC(t *testing.T) {
	cfg := testConfig()
	cfg.OIDC = config.OIDCConfig{
		DiscoveryURL: "https://sso.example/.well-known/openid-configuration",
		ClientID:     "familiez-web",
		DiscoveryTTL: time.Hour,
		JWKSTTL:      time.Hour,
	}
	router := NewRouter(cfg, stubQuerier{}, auth.NewVerifier(cfg.OIDC), nil)

	req := httptest.NewRequest("POST", "/UpdatePerson", strings.NewReader(`{"personId": 1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(testConfig(), stubQuerier{}, nil, nil)

	req := httptest.NewRequest("OPTIONS", "/GetFather", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
