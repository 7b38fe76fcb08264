package main

import (
	"os"
	"strconv"
	"strings"
)

// sessionLifetimeHours is the fixed 30-day session lifetime
const sessionLifetimeHours = 30 * 24

// AppConfig is the process configuration, read once from the environment
type AppConfig struct {
	Addr    string
	BaseURL string

	MongoURI  string
	MongoName string

	SigningKey      string
	TokenExpiration int
	ContextKey      string
	Issuer          string
	Audience        []string

	GoogleClientID     string
	GoogleClientSecret string
}

// NewConfigFromEnv builds the config from environment variables
func NewConfigFromEnv() *AppConfig {
	return &AppConfig{
		Addr:    envOr("ADDR", ":3000"),
		BaseURL: envOr("BASE_URL", "http://localhost:3000"),

		MongoURI:  os.Getenv("MONGODB_URI"),
		MongoName: envOr("MONGODB_DB", "stockly"),

		SigningKey:      os.Getenv("AUTH_SECRET"),
		TokenExpiration: envIntOr("AUTH_TOKEN_EXPIRATION", sessionLifetimeHours),
		ContextKey:      envOr("AUTH_CONTEXT_KEY", "stockly_session"),
		Issuer:          envOr("AUTH_ISSUER", "stockly"),
		Audience:        envList("AUTH_AUDIENCE"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	}
}

func (c *AppConfig) GetSigningKey() string   { return c.SigningKey }
func (c *AppConfig) GetTokenExpiration() int { return c.TokenExpiration }
func (c *AppConfig) GetContextKey() string   { return c.ContextKey }
func (c *AppConfig) GetIssuer() string       { return c.Issuer }
func (c *AppConfig) GetAudience() []string   { return c.Audience }
func (c *AppConfig) GetBaseURL() string      { return c.BaseURL }

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
