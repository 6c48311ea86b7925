package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the application serving port in every mode.
	DefaultPort = 8000
	// DefaultDebugPort is where the attach gate listens in debug mode.
	DefaultDebugPort = 5678
)

// Config holds server configuration.
type Config struct {
	// Port is the HTTP serving port (fixed to 8000 in the container).
	Port int
	// Debug enables the attach gate: the server does not start serving
	// until a client connects to DebugPort. Reload is disabled in this mode.
	Debug bool
	// DebugPort is the attach gate listen port.
	DebugPort int
	// DatabaseURL is a go-sql-driver/mysql DSN.
	DatabaseURL string
	// AllowedOrigins are the CORS origins allowed to call the API.
	AllowedOrigins []string
	// ReloadPaths are watched for changes in reload mode.
	ReloadPaths []string
	// LogLevel is the logger threshold name (trace..error).
	LogLevel string

	// RateLimitRPS enables per-client request limiting when > 0.
	RateLimitRPS   float64
	RateLimitBurst int

	OIDC OIDCConfig
}

// OIDCConfig holds the SSO token verification settings.
type OIDCConfig struct {
	// DiscoveryURL points at the provider's openid-configuration document.
	// Auth endpoints are disabled when empty.
	DiscoveryURL string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// DiscoveryTTL and JWKSTTL bound how long fetched documents are reused.
	DiscoveryTTL time.Duration
	JWKSTTL      time.Duration
	// InsecureSkipVerify disables TLS certificate checks against the provider.
	InsecureSkipVerify bool
}

// Enabled reports whether SSO verification is configured.
func (o OIDCConfig) Enabled() bool {
	return o.DiscoveryURL != ""
}

// Overrides optionally overrides values from environment variables.
//
// A nil pointer means "use the environment/default value".
type Overrides struct {
	Port        *int
	Debug       *bool
	DebugPort   *int
	DatabaseURL *string
}

// fileConfig is the optional YAML layer read from CONFIG_FILE. Environment
// variables win over file values.
type fileConfig struct {
	Port           int      `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ReloadPaths    []string `yaml:"reload_paths"`
	LogLevel       string   `yaml:"log_level"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
	OIDC           struct {
		DiscoveryURL string `yaml:"discovery_url"`
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RedirectURI  string `yaml:"redirect_uri"`
	} `yaml:"oidc"`
}

// Load loads server configuration from environment variables, the optional
// CONFIG_FILE YAML layer, and applies any explicit overrides.
func Load(overrides Overrides) (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	port := DefaultPort
	if file.Port != 0 {
		port = file.Port
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		port = p
	}
	if overrides.Port != nil {
		port = *overrides.Port
	}

	// The contract is textual: only the literal "1" enables debug mode.
	debug := os.Getenv("DEBUG") == "1"
	if overrides.Debug != nil {
		debug = *overrides.Debug
	}

	debugPort := DefaultDebugPort
	if portStr := os.Getenv("DEBUG_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG_PORT: %w", err)
		}
		debugPort = p
	}
	if overrides.DebugPort != nil {
		debugPort = *overrides.DebugPort
	}

	dbURL := firstNonEmpty(
		os.Getenv("DATABASE_URL"),
		file.DatabaseURL,
		"humans:humans@tcp(localhost:3306)/humans?parseTime=true&multiStatements=true",
	)
	if overrides.DatabaseURL != nil {
		dbURL = *overrides.DatabaseURL
	}

	origins := file.AllowedOrigins
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = splitAndTrim(raw)
	}
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:5174",
			"http://localhost:3310",
		}
	}

	reloadPaths := file.ReloadPaths
	if raw := os.Getenv("RELOAD_PATHS"); raw != "" {
		reloadPaths = splitAndTrim(raw)
	}
	if len(reloadPaths) == 0 {
		reloadPaths = []string{"."}
	}

	logLevel := firstNonEmpty(os.Getenv("LOG_LEVEL"), file.LogLevel, "info")

	rps := file.RateLimitRPS
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		rps = v
	}
	burst := file.RateLimitBurst
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		burst = v
	}
	if burst == 0 {
		burst = 20
	}

	oidc := OIDCConfig{
		DiscoveryURL: firstNonEmpty(os.Getenv("OIDC_DISCOVERY_URL"), file.OIDC.DiscoveryURL),
		ClientID:     firstNonEmpty(os.Getenv("OIDC_CLIENT_ID"), file.OIDC.ClientID),
		ClientSecret: firstNonEmpty(os.Getenv("OIDC_CLIENT_SECRET"), file.OIDC.ClientSecret),
		RedirectURI: firstNonEmpty(
			os.Getenv("OIDC_REDIRECT_URI"),
			file.OIDC.RedirectURI,
			"http://localhost:5173/auth/callback",
		),
		DiscoveryTTL:       envSeconds("OIDC_DISCOVERY_TTL", time.Hour),
		JWKSTTL:            envSeconds("OIDC_JWKS_TTL", time.Hour),
		InsecureSkipVerify: envBool("OIDC_INSECURE_SKIP_VERIFY", false),
	}
	if oidc.Enabled() && oidc.ClientID == "" {
		return nil, fmt.Errorf("OIDC_CLIENT_ID is required when OIDC_DISCOVERY_URL is set")
	}

	return &Config{
		Port:           port,
		Debug:          debug,
		DebugPort:      debugPort,
		DatabaseURL:    dbURL,
		AllowedOrigins: origins,
		ReloadPaths:    reloadPaths,
		LogLevel:       logLevel,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		OIDC:           oidc,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envSeconds(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func envBool(name string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
