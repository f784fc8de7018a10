// Package config loads gateway settings from the environment, with an
// optional .env file for local development and an optional YAML file for
// deployments that prefer checked-in configuration over long env lists.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LLMProvider names a chat-completion backend.
type LLMProvider string

const (
	ProviderCerebras   LLMProvider = "cerebras"   // Primary: fastest inference
	ProviderGroq       LLMProvider = "groq"       // Secondary / fallback
	ProviderOpenRouter LLMProvider = "openrouter" // Catch-all with free tier
	ProviderOllama     LLMProvider = "ollama"     // Local, no key needed
	ProviderNone       LLMProvider = "none"       // Canned replies only
)

// Mode gates outbound side effects. Report delivery only fires in prod.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

// Config holds every runtime setting for the gateway.
type Config struct {
	// === Core ===
	Mode   Mode   // "dev" or "prod"
	Port   int    // HTTP listen port
	APIKey string // X-API-Key expected on inbound requests (required in prod)

	// === Model providers ===
	// Primary generates persona replies and the detection fallback;
	// the fallback provider takes over when the primary fails or times out.
	LLMProvider      LLMProvider
	LLMAPIKey        string
	LLMModel         string
	FallbackProvider LLMProvider
	FallbackAPIKey   string
	FallbackModel    string

	// === Storage ===
	// RedisURL is the default session store. DatabaseURL switches to
	// Postgres when set. Neither set = in-memory (dev only).
	RedisURL    string
	DatabaseURL string
	SessionTTL  time.Duration

	// === Reporting ===
	ReportURL string // Final-report collector endpoint; empty disables delivery

	// === Concurrency ===
	MaxConcurrentTurns int
}

// fileConfig mirrors the YAML override file. Zero values leave the
// env-derived setting untouched.
type fileConfig struct {
	Mode               string `yaml:"mode"`
	Port               int    `yaml:"port"`
	LLMProvider        string `yaml:"llm_provider"`
	LLMModel           string `yaml:"llm_model"`
	FallbackProvider   string `yaml:"fallback_provider"`
	FallbackModel      string `yaml:"fallback_model"`
	RedisURL           string `yaml:"redis_url"`
	DatabaseURL        string `yaml:"database_url"`
	ReportURL          string `yaml:"report_url"`
	MaxConcurrentTurns int    `yaml:"max_concurrent_turns"`
}

// Load builds the configuration: .env file (best effort), then environment,
// then the optional CONFIG_FILE YAML overlay.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("[STARTUP] loaded .env file")
	}

	cfg := &Config{
		Mode:   Mode(strings.ToLower(GetEnv("MODE", "dev"))),
		Port:   GetEnvInt("PORT", 8080),
		APIKey: os.Getenv("API_KEY"),

		LLMProvider:      detectPrimaryProvider(),
		LLMAPIKey:        primaryKey(),
		LLMModel:         GetEnv("LLM_MODEL", "llama-3.3-70b"),
		FallbackProvider: LLMProvider(GetEnv("FALLBACK_PROVIDER", string(ProviderGroq))),
		FallbackAPIKey:   GetEnv("GROQ_API_KEY", ""),
		FallbackModel:    GetEnv("FALLBACK_MODEL", "llama-3.1-8b-instant"),

		RedisURL:    GetEnv("REDIS_URL", ""),
		DatabaseURL: GetEnv("DATABASE_URL", ""),
		SessionTTL:  time.Duration(GetEnvInt("SESSION_TTL_SECONDS", 86400)) * time.Second,

		ReportURL: GetEnv("REPORT_CALLBACK_URL", ""),

		MaxConcurrentTurns: clampInt(GetEnvInt("MAX_CONCURRENT_TURNS", 30), 1, 500),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		log.Printf("[STARTUP] applied config file overrides from %s", path)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if fc.Mode != "" {
		c.Mode = Mode(strings.ToLower(fc.Mode))
	}
	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if fc.LLMProvider != "" {
		c.LLMProvider = LLMProvider(fc.LLMProvider)
	}
	if fc.LLMModel != "" {
		c.LLMModel = fc.LLMModel
	}
	if fc.FallbackProvider != "" {
		c.FallbackProvider = LLMProvider(fc.FallbackProvider)
	}
	if fc.FallbackModel != "" {
		c.FallbackModel = fc.FallbackModel
	}
	if fc.RedisURL != "" {
		c.RedisURL = fc.RedisURL
	}
	if fc.DatabaseURL != "" {
		c.DatabaseURL = fc.DatabaseURL
	}
	if fc.ReportURL != "" {
		c.ReportURL = fc.ReportURL
	}
	if fc.MaxConcurrentTurns != 0 {
		c.MaxConcurrentTurns = clampInt(fc.MaxConcurrentTurns, 1, 500)
	}
	return nil
}

// detectPrimaryProvider picks the primary model backend: explicit setting
// first, then whichever key is present, then local Ollama.
func detectPrimaryProvider() LLMProvider {
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		return LLMProvider(strings.ToLower(p))
	}
	if os.Getenv("CEREBRAS_API_KEY") != "" {
		return ProviderCerebras
	}
	if os.Getenv("GROQ_API_KEY") != "" {
		return ProviderGroq
	}
	if os.Getenv("OPENROUTER_API_KEY") != "" {
		return ProviderOpenRouter
	}
	return ProviderOllama
}

func primaryKey() string {
	switch detectPrimaryProvider() {
	case ProviderCerebras:
		return os.Getenv("CEREBRAS_API_KEY")
	case ProviderGroq:
		return os.Getenv("GROQ_API_KEY")
	case ProviderOpenRouter:
		return os.Getenv("OPENROUTER_API_KEY")
	}
	return os.Getenv("LLM_API_KEY")
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// IsProd reports whether outbound side effects are live.
func (c *Config) IsProd() bool {
	return c.Mode == ModeProd
}

// Helper functions for environment variable parsing

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// RequiredSecret defines a required environment variable for startup validation
type RequiredSecret struct {
	Name        string // Environment variable name
	Description string // Human-readable description
	Production  bool   // Required in production only (false = required always)
}

// CriticalSecrets returns the list of secrets required for the gateway to operate
func CriticalSecrets() []RequiredSecret {
	return []RequiredSecret{
		{Name: "API_KEY", Description: "API key for gateway authentication", Production: true},
		{Name: "CEREBRAS_API_KEY", Description: "Primary model provider key", Production: true},
	}
}

// Validate checks that all required configuration is present.
// In production mode this returns an error for missing critical secrets;
// in development it logs warnings and allows startup.
func (c *Config) Validate() error {
	var missing []string
	var warnings []string

	for _, secret := range CriticalSecrets() {
		if os.Getenv(secret.Name) != "" {
			continue
		}
		if secret.Production && !c.IsProd() {
			warnings = append(warnings, secret.Name+" ("+secret.Description+")")
		} else {
			missing = append(missing, secret.Name+" ("+secret.Description+")")
		}
	}

	if c.IsProd() && c.RedisURL == "" && c.DatabaseURL == "" {
		missing = append(missing, "REDIS_URL or DATABASE_URL (in-memory store is dev only)")
	}

	if c.LLMAPIKey == "" && c.LLMProvider != ProviderOllama && c.LLMProvider != ProviderNone {
		warnings = append(warnings, fmt.Sprintf("%s key missing - persona falls back to canned replies", c.LLMProvider))
	}

	for _, w := range warnings {
		log.Printf("[STARTUP] Warning: %s", w)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MustValidate calls Validate and fatally exits if validation fails.
// Call this at startup before starting the server.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: Configuration validation failed: %v", err)
	}
	log.Println("[STARTUP] Configuration validated successfully")
}
