// Package config loads tripspark settings from defaults, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Log          LogConfig          `mapstructure:"log"`
	LLM          LLMConfig          `mapstructure:"llm"`
	Route        RouteConfig        `mapstructure:"route"`
	Export       ExportConfig       `mapstructure:"export"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Auth         AuthConfig         `mapstructure:"auth"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// LLMConfig selects the text completion provider: "groq"/"openai" (OpenAI-compatible) or "gemini".
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float32       `mapstructure:"temperature"`
	CacheSize   int           `mapstructure:"cache_size"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type RouteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ExportConfig selects "apitemplate" (remote document rendering) or "pdf" (local gofpdf rendering).
type ExportConfig struct {
	Provider      string        `mapstructure:"provider"`
	APIURL        string        `mapstructure:"api_url"`
	APIKey        string        `mapstructure:"api_key"`
	TemplateID    string        `mapstructure:"template_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Dir           string        `mapstructure:"dir"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	FontPath      string        `mapstructure:"font_path"`
}

type ConversationConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	RedisURL    string        `mapstructure:"redis_url"`
	City        string        `mapstructure:"city"`
	ConditionID uint          `mapstructure:"condition_id"`
	TripType    string        `mapstructure:"trip_type"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit_rps", 2.0)
	v.SetDefault("server.rate_limit_burst", 5)

	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.cache_size", 128)
	v.SetDefault("llm.cache_ttl", time.Hour)

	v.SetDefault("route.base_url", "http://localhost:8000")
	v.SetDefault("route.timeout", 30*time.Second)

	v.SetDefault("export.provider", "apitemplate")
	v.SetDefault("export.api_url", "https://api.apitemplate.io")
	v.SetDefault("export.api_key", "")
	v.SetDefault("export.template_id", "")
	v.SetDefault("export.timeout", 30*time.Second)
	v.SetDefault("export.dir", "exports")
	v.SetDefault("export.public_base_url", "http://localhost:8080")
	v.SetDefault("export.font_path", "")

	v.SetDefault("conversation.ttl", 30*time.Minute)
	v.SetDefault("conversation.redis_url", "")
	v.SetDefault("conversation.city", "กรุงเทพฯ")
	v.SetDefault("conversation.condition_id", 1)
	v.SetDefault("conversation.trip_type", "custom")

	v.SetDefault("auth.jwt_secret", "")
}

// legacy environment names kept working next to the SECTION_KEY form
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":            {"SERVER_PORT", "PORT"},
		"database.url":           {"DATABASE_URL", "POSTGRES_URL"},
		"llm.api_key":            {"LLM_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"},
		"export.api_key":         {"EXPORT_API_KEY", "APITEMPLATE_API_KEY"},
		"auth.jwt_secret":        {"AUTH_JWT_SECRET", "JWT_SECRET"},
		"conversation.redis_url": {"CONVERSATION_REDIS_URL", "REDIS_URL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// Load reads .env (when present), the YAML file named by CONFIG_FILE (when set) and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "groq", "openai", "gemini":
	default:
		return fmt.Errorf("unsupported llm provider %q: use groq, openai or gemini", c.LLM.Provider)
	}
	switch strings.ToLower(c.Export.Provider) {
	case "apitemplate", "pdf":
	default:
		return fmt.Errorf("unsupported export provider %q: use apitemplate or pdf", c.Export.Provider)
	}
	if c.Conversation.TTL <= 0 {
		return fmt.Errorf("conversation.ttl must be positive")
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server rate limit must be positive")
	}
	return c.validateRouteURL()
}

// the route generator runs as its own service, never on this server's port
func (c *Config) validateRouteURL() error {
	u, err := url.Parse(c.Route.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("route.base_url %q must be an absolute http(s) url", c.Route.BaseURL)
	}
	if isLoopback(u.Hostname()) && u.Port() == c.Server.Port {
		return fmt.Errorf("route.base_url %q points at this server's own port %s", c.Route.BaseURL, c.Server.Port)
	}
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}
