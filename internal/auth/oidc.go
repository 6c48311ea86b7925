package auth

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/familiez/humans-service/internal/config"
	"github.com/familiez/humans-service/internal/logger"
)

// Verification failures callers turn into 401 responses.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the verified SSO token payload.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// discoveryDocument is the subset of the openid-configuration we use.
type discoveryDocument struct {
	Issuer        string `json:"issuer"`
	JWKSURI       string `json:"jwks_uri"`
	TokenEndpoint string `json:"token_endpoint"`
}

// Verifier validates bearer tokens against an OIDC provider and exchanges
// authorization codes for access tokens. Discovery and JWKS documents are
// fetched lazily and cached for their configured TTLs.
type Verifier struct {
	cfg    config.OIDCConfig
	client *http.Client

	mu          sync.Mutex
	discovery   *discoveryDocument
	discoveryAt time.Time
	jwks        *jwkSet
	jwksAt      time.Time
}

// NewVerifier creates a Verifier for the given OIDC configuration.
func NewVerifier(cfg config.OIDCConfig) *Verifier {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}
	return &Verifier{
		cfg: cfg,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (v *Verifier) getDiscovery(ctx context.Context) (*discoveryDocument, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.discovery != nil && time.Since(v.discoveryAt) < v.cfg.DiscoveryTTL {
		return v.discovery, nil
	}

	var doc discoveryDocument
	if err := v.fetchJSON(ctx, v.cfg.DiscoveryURL, &doc); err != nil {
		return nil, fmt.Errorf("failed to fetch discovery document: %w", err)
	}

	v.discovery = &doc
	v.discoveryAt = time.Now()
	return v.discovery, nil
}

func (v *Verifier) getJWKS(ctx context.Context) (*jwkSet, error) {
	doc, err := v.getDiscovery(ctx)
	if err != nil {
		return nil, err
	}
	if doc.JWKSURI == "" {
		return nil, fmt.Errorf("jwks_uri is missing from discovery document")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.jwks != nil && time.Since(v.jwksAt) < v.cfg.JWKSTTL {
		return v.jwks, nil
	}

	var set jwkSet
	if err := v.fetchJSON(ctx, doc.JWKSURI, &set); err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	v.jwks = &set
	v.jwksAt = time.Now()
	return v.jwks, nil
}

func (v *Verifier) fetchJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// VerifyToken verifies an SSO bearer token and returns its claims.
//
// Signature keys are matched by kid against the provider's JWKS; audience
// must equal the configured client ID and the issuer must match discovery.
func (v *Verifier) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	doc, err := v.getDiscovery(ctx)
	if err != nil {
		return nil, err
	}
	jwks, err := v.getJWKS(ctx)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token header has no kid")
		}
		key := jwks.find(kid)
		if key == nil {
			return nil, fmt.Errorf("no JWK for kid %q", kid)
		}
		return key.rsaPublicKey()
	},
		jwt.WithAudience(v.cfg.ClientID),
		jwt.WithIssuer(doc.Issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		logger.Warnf("Token validation failed: %v", err)
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExchangeAuthorizationCode exchanges an OAuth authorization code plus PKCE
// verifier for an access token at the provider's token endpoint.
func (v *Verifier) ExchangeAuthorizationCode(ctx context.Context, code, codeVerifier string) (string, error) {
	doc, err := v.getDiscovery(ctx)
	if err != nil {
		return "", err
	}
	if doc.TokenEndpoint == "" {
		return "", fmt.Errorf("token_endpoint is missing from discovery document")
	}

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {v.cfg.ClientID},
		"redirect_uri":  {v.cfg.RedirectURI},
		"code_verifier": {codeVerifier},
	}
	// Some providers require the secret even for PKCE clients.
	if v.cfg.ClientSecret != "" {
		form.Set("client_secret", v.cfg.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, doc.TokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return body.AccessToken, nil
}
