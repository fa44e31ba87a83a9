package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"STOREFRONT_API_URL" env-default:"http://localhost:5000"`
	Timeout time.Duration `yaml:"timeout" env:"STOREFRONT_API_TIMEOUT" env-default:"30s"`
}

type SessionConfig struct {
	// Backend selects where the identity is persisted between runs.
	Backend     string `yaml:"backend" env:"STOREFRONT_SESSION_BACKEND" env-default:"file"`
	StoragePath string `yaml:"storage_path" env:"STOREFRONT_SESSION_PATH" env-default:".storefront/session.json"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"STOREFRONT_REDIS_ADDR" env-default:"localhost:6379"`
	Username string `yaml:"username" env:"STOREFRONT_REDIS_USER" env-default:""`
	Password string `yaml:"password" env:"STOREFRONT_REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"STOREFRONT_REDIS_DB" env-default:"0"`
}

type TracingConfig struct {
	// Endpoint left empty disables trace export entirely.
	Endpoint    string `yaml:"endpoint" env:"STOREFRONT_OTLP_ENDPOINT" env-default:""`
	ServiceName string `yaml:"service_name" env:"STOREFRONT_SERVICE_NAME" env-default:"storefront-client"`
}

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Tracing TracingConfig `yaml:"tracing"`
}

// Load reads configuration from a yaml file when CONFIG_PATH is set, then
// from the environment. A .env file in the working directory is honored
// before either.
func Load() (*Config, error) {

	_ = godotenv.Load()

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {

	cfg, err := Load()
	if err != nil {
		log.Fatalf("can not read config: %s", err.Error())
	}

	return cfg
}
