package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Vendure VendureConfig
	Cart    CartConfig
	Redis   RedisConfig
	Log     LogConfig
	HTTP    HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// VendureConfig holds the shop-API connection settings. APIURL and Token
// are required; there is no default shop to talk to.
type VendureConfig struct {
	APIURL  string        // shop-api endpoint, e.g. "https://shop.example.com/shop-api"
	Token   string        // channel token sent as the vendure-token header
	Timeout time.Duration // per-request timeout of the underlying transport
}

// CartConfig holds persisted cart mirror settings
type CartConfig struct {
	MirrorBackend string // sqlite, redis, or memory
	SQLitePath    string // path of the embedded mirror database
	MirrorKey     string // fixed slot name the cart snapshot is stored under
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g. STOREFRONT_VENDURE_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Vendure: VendureConfig{
			APIURL:  v.GetString("vendure.api_url"),
			Token:   v.GetString("vendure.token"),
			Timeout: v.GetDuration("vendure.timeout"),
		},
		Cart: CartConfig{
			MirrorBackend: v.GetString("cart.mirror_backend"),
			SQLitePath:    v.GetString("cart.sqlite_path"),
			MirrorKey:     v.GetString("cart.mirror_key"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Vendure.Timeout == 0 {
		cfg.Vendure.Timeout = 30 * time.Second
	}
	if cfg.Cart.MirrorBackend == "" {
		cfg.Cart.MirrorBackend = "sqlite"
	}
	if cfg.Cart.SQLitePath == "" {
		cfg.Cart.SQLitePath = "storefront.db"
	}
	if cfg.Cart.MirrorKey == "" {
		cfg.Cart.MirrorKey = "cart"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
}

// validate performs validation on the configuration. The shop endpoint and
// channel token are hard requirements: without them every request would
// fail, so loading fails fast instead of silently proceeding.
func (c *Config) validate() error {
	if c.Vendure.APIURL == "" {
		return fmt.Errorf("vendure.api_url is required (set STOREFRONT_VENDURE_API_URL or config.toml)")
	}
	if _, err := url.ParseRequestURI(c.Vendure.APIURL); err != nil {
		return fmt.Errorf("vendure.api_url is not a valid URL: %w", err)
	}
	if c.Vendure.Token == "" {
		return fmt.Errorf("vendure.token is required (set STOREFRONT_VENDURE_TOKEN or config.toml)")
	}

	switch c.Cart.MirrorBackend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("cart.mirror_backend must be one of sqlite, redis, memory; got %q", c.Cart.MirrorBackend)
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}
