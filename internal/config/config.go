package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	GatewayPort   string
	ReceiverPort  string
	WebhookSecret string
}

// LoadConfig reads configuration from the environment, loading a .env file
// when one is present. Every value has a default so the simulator runs out
// of the box.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		GatewayPort:   getEnv("GATEWAY_PORT", "5000"),
		ReceiverPort:  getEnv("RECEIVER_PORT", "8000"),
		WebhookSecret: getEnv("WEBHOOK_SECRET", "mock_webhook_secret"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
