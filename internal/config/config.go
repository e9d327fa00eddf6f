package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Level     LevelConfig     `mapstructure:"level"`
	Draft     DraftConfig     `mapstructure:"draft"`

	// Runtime flags, set from command line rather than the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// LevelConfig drives the per-section level recommendation policy.
type LevelConfig struct {
	Min             int     `mapstructure:"min"`
	Max             int     `mapstructure:"max"`
	PromoteAccuracy float64 `mapstructure:"promote_accuracy"`
	DemoteAccuracy  float64 `mapstructure:"demote_accuracy"`
	MinAttemptItems int     `mapstructure:"min_attempt_items"`
}

type DraftConfig struct {
	TTLDays int `mapstructure:"ttl_days"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("TOEIC_PREP")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	ApplyLevelDefaults(&cfg.Level)
	if cfg.Draft.TTLDays <= 0 {
		cfg.Draft.TTLDays = 7
	}

	return &cfg, nil
}

// ApplyLevelDefaults fills unset level policy fields with the documented
// defaults: levels 1..3, promote at >=0.85 accuracy, demote below 0.50,
// at least 10 graded items before a move fires.
func ApplyLevelDefaults(lc *LevelConfig) {
	if lc.Min <= 0 {
		lc.Min = 1
	}
	if lc.Max <= lc.Min {
		lc.Max = 3
	}
	if lc.PromoteAccuracy <= 0 {
		lc.PromoteAccuracy = 0.85
	}
	if lc.DemoteAccuracy <= 0 {
		lc.DemoteAccuracy = 0.50
	}
	if lc.MinAttemptItems <= 0 {
		lc.MinAttemptItems = 10
	}
}
