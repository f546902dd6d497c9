package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	LogFile  string `env:"LOG_FILE"`

	JWT     JWTConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Auth    AuthConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	TTL    time.Duration `env:"JWT_TTL,    default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"DB_NAME,   default=catalog"`
}

// RedisConfig enables the product read cache when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=10"`
	CacheTTL time.Duration `env:"CACHE_TTL,       default=5m"`
}

type CatalogConfig struct {
	// AllowZeroPrice selects the presence rule for full product bodies. When
	// false, price 0 is treated as missing.
	AllowZeroPrice bool `env:"PRODUCT_ALLOW_ZERO_PRICE, default=true"`
}

type AuthConfig struct {
	RateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst int     `env:"AUTH_RATE_BURST, default=10"`
}

// Development reports whether the process runs outside production.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
