package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	LLM    LLMConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds bearer-token validation settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// LLMConfig holds completion client settings. Immutable after resolution.
type LLMConfig struct {
	Endpoint         string  `mapstructure:"endpoint"`
	APIKey           string  `mapstructure:"api_key"`
	Model            string  `mapstructure:"model"`
	Temperature      float64 `mapstructure:"temperature"`
	TimeoutMS        int     `mapstructure:"timeout_ms"`
	MaxRetries       int     `mapstructure:"max_retries"`
	RetryBaseDelayMS int     `mapstructure:"retry_base_delay_ms"`
	MaxTokens        int     `mapstructure:"max_tokens"`
}

// Timeout returns the per-attempt deadline as a duration.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RetryBaseDelay returns the base backoff delay as a duration.
func (c *LLMConfig) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the EVENTLEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EVENTLEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "eventlex")
	v.SetDefault("db.password", "eventlex_secret")
	v.SetDefault("db.name", "eventlex_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "eventlex")

	// LLM defaults
	v.SetDefault("llm.endpoint", DefaultEndpoint)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.temperature", DefaultTemperature)
	v.SetDefault("llm.timeout_ms", DefaultTimeoutMS)
	v.SetDefault("llm.max_retries", DefaultMaxRetries)
	v.SetDefault("llm.retry_base_delay_ms", DefaultRetryBaseDelayMS)
	v.SetDefault("llm.max_tokens", DefaultMaxTokens)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "EVENTLEX_SERVER_PORT",
		"server.read_timeout":     "EVENTLEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "EVENTLEX_SERVER_WRITE_TIMEOUT",
		"server.environment":      "EVENTLEX_SERVER_ENVIRONMENT",
		"db.host":                 "EVENTLEX_DB_HOST",
		"db.port":                 "EVENTLEX_DB_PORT",
		"db.user":                 "EVENTLEX_DB_USER",
		"db.password":             "EVENTLEX_DB_PASSWORD",
		"db.name":                 "EVENTLEX_DB_NAME",
		"db.sslmode":              "EVENTLEX_DB_SSLMODE",
		"db.max_open":             "EVENTLEX_DB_MAX_OPEN",
		"db.max_idle":             "EVENTLEX_DB_MAX_IDLE",
		"jwt.secret":              "EVENTLEX_JWT_SECRET",
		"jwt.issuer":              "EVENTLEX_JWT_ISSUER",
		"llm.endpoint":            "EVENTLEX_LLM_ENDPOINT",
		"llm.api_key":             "EVENTLEX_LLM_API_KEY",
		"llm.model":               "EVENTLEX_LLM_MODEL",
		"llm.temperature":         "EVENTLEX_LLM_TEMPERATURE",
		"llm.timeout_ms":          "EVENTLEX_LLM_TIMEOUT_MS",
		"llm.max_retries":         "EVENTLEX_LLM_MAX_RETRIES",
		"llm.retry_base_delay_ms": "EVENTLEX_LLM_RETRY_BASE_DELAY_MS",
		"llm.max_tokens":          "EVENTLEX_LLM_MAX_TOKENS",
		"log.level":               "EVENTLEX_LOG_LEVEL",
		"log.format":              "EVENTLEX_LOG_FORMAT",
		"cors.allowed_origins":    "EVENTLEX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if EVENTLEX_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EVENTLEX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.LLM = LLMConfig{
		Endpoint:         v.GetString("llm.endpoint"),
		APIKey:           v.GetString("llm.api_key"),
		Model:            v.GetString("llm.model"),
		Temperature:      v.GetFloat64("llm.temperature"),
		TimeoutMS:        v.GetInt("llm.timeout_ms"),
		MaxRetries:       v.GetInt("llm.max_retries"),
		RetryBaseDelayMS: v.GetInt("llm.retry_base_delay_ms"),
		MaxTokens:        v.GetInt("llm.max_tokens"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
