// Package config loads the process-wide configuration: a single
// environment-supplied SECRET_KEY read once at startup, plus the
// server settings read from the environment via
// github.com/joho/godotenv.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func loadDotenv() error {
	return godotenv.Load()
}

// Config is explicit process-wide state threaded as a parameter
// through the engine rather than imported ambiently, so tests can
// supply a deterministic key instead of reading the environment.
type Config struct {
	SecretKey    []byte
	Port         string
	CORSOrigins  []string
	MaxUploadMiB int64
}

const defaultSecretKey = "ciphernest-dev-secret-key-change-me"

// Load reads .env (if present) then the process environment, calling
// godotenv.Load() before reading os.Getenv.
func Load() *Config {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		log.Println("[WARN] config: SECRET_KEY not set, using an insecure development default")
		secretKey = defaultSecretKey
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		SecretKey:    []byte(secretKey),
		Port:         port,
		CORSOrigins:  corsOrigins(),
		MaxUploadMiB: 100,
	}
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
}
