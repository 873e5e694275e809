package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort         string `envconfig:"HTTP_PORT"          default:":8080"`
	DBDriver         string `envconfig:"DB_DRIVER"          default:"sqlite"` // sqlite or postgres
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	SQLitePath       string `envconfig:"SQLITE_PATH"        default:"inventory.db"`
	DBMaxOpenConns   int    `envconfig:"DB_MAX_OPEN_CONNS"  default:"25"`
	DBMaxIdleConns   int    `envconfig:"DB_MAX_IDLE_CONNS"  default:"10"`
	DBDebug          bool   `envconfig:"DB_DEBUG"           default:"false"`
	LogLevel         string `envconfig:"LOG_LEVEL"          default:"info"`
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	SeedSampleData   bool   `envconfig:"SEED_SAMPLE_DATA"   default:"false"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, Driver=%s, LogLevel=%s", config.HTTPPort, config.DBDriver, config.LogLevel)
		switch config.DBDriver {
		case "postgres":
			if config.DatabaseURL == "" {
				logger.Fatal("Configuration error: DATABASE_URL is not set but DB_DRIVER is postgres")
			}
		case "sqlite":
			if config.SQLitePath == "" {
				logger.Fatal("Configuration error: SQLITE_PATH is not set but DB_DRIVER is sqlite")
			}
		default:
			logger.Fatalf("Configuration error: unsupported DB_DRIVER %q (expected sqlite or postgres)", config.DBDriver)
		}
	})
	return &config
}

func GetConfig() *Config {
	if config.HTTPPort == "" || config.DBDriver == "" {
		log.Fatal("Configuration not loaded. Call LoadConfig first.")
	}
	return &config
}
