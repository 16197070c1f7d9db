package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs at startup. It is built once
// in main and handed to the stores, the session codec and the handlers.
type Config struct {
	Port        string
	MongoURI    string
	Database    string
	RedisAddr   string
	JWTSecret   []byte
	SessionTTL  time.Duration
	UploadsDir  string
	CORSOrigins []string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := Config{
		Port:        getenv("PORT", ":4000"),
		MongoURI:    getenv("MONGO_URL", "mongodb://localhost:27017"),
		Database:    getenv("MONGO_DB", "roost"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		JWTSecret:   []byte(os.Getenv("SECRET")),
		SessionTTL:  10 * time.Hour,
		UploadsDir:  getenv("UPLOADS_DIR", "uploads"),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "http://localhost:5173"), ","),
	}

	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	if len(cfg.JWTSecret) == 0 {
		log.Fatal("SECRET must be set")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
