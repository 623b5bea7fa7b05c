package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Verification VerificationConfig
	Sessions     SessionsConfig
	Evidence     EvidenceConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	SessionSecret  string   // secret for signing admin session cookies
	AllowedOrigins []string // dashboard origins permitted by CORS, localhost is always allowed
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type VerificationConfig struct {
	Tolerance       float64 // maximum template distance for a face match, lower is stricter
	EmbeddingDim    int     // dimension of the facial templates
	CaptureCount    int     // captures averaged into the enrollment template
	IntervalSeconds int     // client-side seconds between periodic checks
}

type SessionsConfig struct {
	TTLSeconds int // stale active sessions are evicted after this many seconds
}

type EvidenceConfig struct {
	Dir     string // directory for verification snapshot images
	MaxEdge int    // longest edge in pixels, larger snapshots are downscaled
}

// defaults mirrors the structure of the embedded defaults.yaml file.
type defaults struct {
	Verification struct {
		Tolerance       float64 `yaml:"tolerance"`
		EmbeddingDim    int     `yaml:"embedding_dim"`
		CaptureCount    int     `yaml:"capture_count"`
		IntervalSeconds int     `yaml:"interval_seconds"`
	} `yaml:"verification"`
	Sessions struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"sessions"`
	Evidence struct {
		MaxEdge int `yaml:"max_edge"`
	} `yaml:"evidence"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envList reads an environment variable as a comma-separated list,
// trimming whitespace and dropping empty entries.
func envList(key string) []string {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// envString reads an environment variable, falling back to a default.
func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var def defaults
	if err := yaml.Unmarshal(defaultsYAML, &def); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Server: ServerConfig{
			Host:           envString("WEB_HOST", "0.0.0.0"),
			Port:           envInt("WEB_PORT", 8080),
			SessionSecret:  os.Getenv("WEB_SESSION_SECRET"),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Verification: VerificationConfig{
			Tolerance:       envFloat("VERIFY_TOLERANCE", def.Verification.Tolerance),
			EmbeddingDim:    envInt("EMBEDDING_DIM", def.Verification.EmbeddingDim),
			CaptureCount:    envInt("CAPTURE_COUNT", def.Verification.CaptureCount),
			IntervalSeconds: envInt("VERIFY_INTERVAL_SECONDS", def.Verification.IntervalSeconds),
		},
		Sessions: SessionsConfig{
			TTLSeconds: envInt("SESSION_TTL_SECONDS", def.Sessions.TTLSeconds),
		},
		Evidence: EvidenceConfig{
			Dir:     envString("EVIDENCE_DIR", "logs/images"),
			MaxEdge: envInt("EVIDENCE_MAX_EDGE", def.Evidence.MaxEdge),
		},
	}
}
