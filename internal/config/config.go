package config

import (
	"log"
	"os"
	"strconv"

	godotenv "github.com/joho/godotenv"
)

// Config holds every environment-supplied setting the gateway reads.
// Storage credentials and the webhook URL are optional at load time:
// the webhook notifier treats an empty URL as "notifications
// disabled" and the runner fails a run that needs storage without
// credentials. Only the run-level check makes their absence an error.
type Config struct {
	Port int

	WebhookURL string

	StorageURL       string
	StorageAccessKey string
	StorageSecretKey string
	StorageRegion    string

	PipelineCommand string

	RabbitMQURL    string
	StatusExchange string
}

func NewConfig() *Config {
	return &Config{
		Port:           8000,
		StorageRegion:  "us-east-1",
		StatusExchange: "ortho_processing",
	}
}

// Load reads the environment, optionally overlaying a dotenv file
// first. A missing .env is not an error; the process environment is
// used as-is.
func Load() (*Config, error) {
	switch env := os.Getenv("APP_ENV"); env {
	case "":
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded .env")
		} else {
			log.Println("No .env found, using system environment variables")
		}
	default:
		fname := ".env." + env
		if err := godotenv.Overload(fname); err == nil {
			log.Printf("Loaded %s", fname)
		} else if err := godotenv.Overload(".env"); err == nil {
			log.Println("Loaded .env")
		} else {
			log.Printf("No %s or .env found, using system environment variables", fname)
		}
	}

	cfg := NewConfig()

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Printf("invalid PORT %q, keeping default %d", port, cfg.Port)
		} else {
			cfg.Port = p
		}
	}

	cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	cfg.StorageURL = os.Getenv("STORAGE_URL")
	cfg.StorageAccessKey = os.Getenv("STORAGE_ACCESS_KEY")
	cfg.StorageSecretKey = os.Getenv("STORAGE_SECRET_KEY")
	if region := os.Getenv("STORAGE_REGION"); region != "" {
		cfg.StorageRegion = region
	}
	cfg.PipelineCommand = os.Getenv("PIPELINE_CMD")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")
	if exchange := os.Getenv("STATUS_EXCHANGE"); exchange != "" {
		cfg.StatusExchange = exchange
	}

	return cfg, nil
}

// StorageConfigured reports whether every credential the storage
// backend needs is present.
func (c *Config) StorageConfigured() bool {
	return c.StorageURL != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}
