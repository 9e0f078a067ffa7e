package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/Astemirdum/raingear-service/pkg/logger"
	"github.com/Astemirdum/raingear-service/pkg/postgres"
	"github.com/Astemirdum/raingear-service/rental/internal/cache"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RENTAL_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"RENTAL_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Storage string

const (
	StoragePostgres Storage = "postgres"
	StorageMemory   Storage = "memory"
)

type Rental struct {
	TxTimeout time.Duration `envconfig:"TX_TIMEOUT"`
	TxRetries int           `envconfig:"TX_RETRIES"`
	Storage   Storage       `envconfig:"STORAGE"`
}

type Auth struct {
	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"JWT_TTL"`
}

type Config struct {
	Server   HTTPServer  `yaml:"server"`
	Database postgres.DB `yaml:"db"`
	Redis    cache.Config
	Kafka    kafka.Config
	Rental   Rental
	Auth     Auth
	Log      logger.Log `yaml:"log"`
}

const minSecretLen = 16

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options provide the defaults.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config := Config{
			Server: HTTPServer{
				Host:         "0.0.0.0",
				Port:         "8080",
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			},
			Redis:  cache.Config{TTL: 30 * time.Second},
			Rental: Rental{TxTimeout: 5 * time.Second, TxRetries: 1, Storage: StoragePostgres},
			Auth:   Auth{TokenTTL: 12 * time.Hour},
		}
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		if err := config.Validate(); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func (c *Config) Validate() error {
	switch c.Rental.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Rental.Storage)
	}
	if c.Rental.TxTimeout <= 0 {
		return fmt.Errorf("TX_TIMEOUT must be positive")
	}
	if c.Rental.TxRetries < 0 {
		return fmt.Errorf("TX_RETRIES must not be negative")
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

func printConfig(cfg *Config) {
	masked := *cfg
	masked.Database.Password = "***"
	masked.Redis.Password = "***"
	masked.Auth.JWTSecret = "***"
	jscfg, _ := json.MarshalIndent(masked, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
