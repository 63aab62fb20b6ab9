package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env           string        `env:"ENV,default=development"`
	Port          string        `env:"PORT,default=3000"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN,default=http://localhost:5173"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,default=24h"`
	BcryptCost    int           `env:"BCRYPT_COST,default=10"`
	LogLevel      string        `env:"LOG_LEVEL,default=info"`
	Store         struct {
		Driver         string        `env:"STORE_DRIVER,default=mongo"`
		MongoURI       string        `env:"MONGODB_URI,default=mongodb://localhost:27017"`
		MongoDatabase  string        `env:"MONGODB_DATABASE,default=devconnect"`
		SQLitePath     string        `env:"SQLITE_PATH,default=./devconnect.db"`
		PostgresURL    string        `env:"DATABASE_URL"`
		ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT,default=10s"`
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return LoadWith(envconfig.OsLookuper())
}

func LoadWith(lookuper envconfig.Lookuper) (*Config, error) {
	config := &Config{}
	if err := envconfig.ProcessWith(context.Background(), config, lookuper); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (c *Config) ListenAddr() string {
	return ":" + c.Port
}
