// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete server configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	DB        DBConfig        `mapstructure:"db"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Port               int     `mapstructure:"port"`
	GinMode            string  `mapstructure:"gin_mode"`
	AllowOrigin        string  `mapstructure:"allow_origin"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	BypassVerification bool    `mapstructure:"bypass_verification"`
}

// AllowOrigins splits the comma separated origin list
func (s ServerConfig) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// AuthConfig configures tokens, the bootstrap admin and Google sign-in
type AuthConfig struct {
	SecretKey        string        `mapstructure:"secret_key"`
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
	Issuer           string        `mapstructure:"issuer"`
	AdminEmail       string        `mapstructure:"admin_email"`
	AdminPassword    string        `mapstructure:"admin_password"`
	GoogleClientID   string        `mapstructure:"google_client_id"`
	GoogleSecret     string        `mapstructure:"google_secret"`
	OAuthRedirectURL string        `mapstructure:"oauth_redirect_url"`
}

// GoogleEnabled reports whether Google sign-in is configured
func (a AuthConfig) GoogleEnabled() bool {
	return a.GoogleClientID != "" && a.GoogleSecret != ""
}

// RedisConfig configures the optional status-change publisher
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

// NotifyConfig bounds outbound notification traffic
type NotifyConfig struct {
	MaxPerSecond float64 `mapstructure:"max_per_second"`
}

// SchedulerConfig holds cron schedules for periodic jobs
type SchedulerConfig struct {
	DeadlineSweep  string `mapstructure:"deadline_sweep"`
	BlacklistSweep string `mapstructure:"blacklist_sweep"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.allow_origin", "http://localhost:3000")
	v.SetDefault("server.rate_limit_per_second", 10)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.issuer", "jobboard-backend")
	v.SetDefault("db.port", "5432")
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("redis.channel", "application.status_changed")
	v.SetDefault("scheduler.deadline_sweep", "@every 10m")
	v.SetDefault("scheduler.blacklist_sweep", "@every 1h")
	v.SetDefault("notify.max_per_second", 5)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on error
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

var envBindings = map[string]string{
	"server.port":                  "PORT",
	"server.gin_mode":              "GIN_MODE",
	"server.allow_origin":          "ALLOW_ORIGIN",
	"server.rate_limit_per_second": "RATE_LIMIT_REQUESTS_PER_SECOND",
	"server.bypass_verification":   "BYPASS_VERIFICATION",

	"auth.secret_key":         "SECRET_KEY",
	"auth.token_ttl":          "JWT_TTL",
	"auth.issuer":             "JWT_ISSUER",
	"auth.admin_email":        "ADMIN_EMAIL",
	"auth.admin_password":     "ADMIN_PASSWORD",
	"auth.google_client_id":   "GOOGLE_AUTH_CLIENT",
	"auth.google_secret":      "GOOGLE_AUTH_SECRET",
	"auth.oauth_redirect_url": "OAUTH_REDIRECT_URL",

	"db.host":               "DB_HOST",
	"db.port":               "DB_PORT",
	"db.user":               "DB_USERNAME",
	"db.password":           "DB_PASSWORD",
	"db.name":               "DB_DATABASE",
	"db.use_connection_str": "USE_CONNECTION_STR",
	"db.connection_str":     "DB_CONNECTION_STR",

	"logger.log_level":   "LOG_LEVEL",
	"logger.output_file": "LOG_FILE",

	"redis.url":     "REDIS_URL",
	"redis.channel": "REDIS_CHANNEL",

	"scheduler.deadline_sweep":  "JOB_DEADLINE_SWEEP",
	"scheduler.blacklist_sweep": "BLACKLIST_SWEEP",

	"notify.max_per_second": "NOTIFY_MAX_PER_SECOND",
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}
	return nil
}

func (config Config) validate() error {
	var errs []error

	if config.Auth.SecretKey == "" {
		errs = append(errs, fmt.Errorf("AuthConfig: missing variable: SECRET_KEY"))
	}
	if config.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("AuthConfig: JWT_TTL must be positive"))
	}
	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}
	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("ServerConfig: GIN_MODE must be debug, release or test"))
	}
	if config.Server.RateLimitPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("ServerConfig: RATE_LIMIT_REQUESTS_PER_SECOND must be positive"))
	}
	if config.Notify.MaxPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("NotifyConfig: NOTIFY_MAX_PER_SECOND must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}
	return nil
}
