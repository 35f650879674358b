package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string        `env:"PORT,          default=5000"`
	Env          string        `env:"ENV,           default=development"`
	JWTSecret    string        `env:"JWT_SECRET,    required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=168h"`
	LogLevel     string        `env:"LOG_LEVEL,     default=info"`
	PublicOrigin string        `env:"PUBLIC_ORIGIN, default=http://localhost:5000"`
	UploadDir    string        `env:"UPLOAD_DIR,    default=uploads"`
	ImagesDir    string        `env:"IMAGES_DIR,    default=public-images"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=superheromanager"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// MONGO_URI and JWT_SECRET have no defaults; their absence is a startup error.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
