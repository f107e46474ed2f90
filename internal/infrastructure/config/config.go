package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds settings for both binaries. The dispatch API reads the API,
// Mongo, and Redis sections; the portal reads the Portal section.
type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API    APIConfig
	Portal PortalConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type APIConfig struct {
	Port      string `env:"PORT, default=8080"`
	JWTSecret string `env:"JWT_SECRET"`
}

type PortalConfig struct {
	Port string `env:"PORTAL_PORT, default=3000"`
	// BaseURL is where the dispatch API is reachable from the portal;
	// defaults to the internal reverse proxy.
	BaseURL string `env:"API_BASE_URL, default=http://nginx"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dispatch"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
