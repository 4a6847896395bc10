package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The backend selection happens here: StoreDriver
// picks the catalog store ("file" or "postgres") and BlobDriver picks where
// uploaded images go ("local" or "s3").
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	StoreDriver    string // catalog store backend: file | postgres
	DataPath       string // paintings JSON document (file driver)
	RatingsPath    string // ratings JSON document (file driver)
	DatabaseURL    string // Postgres DSN (postgres driver)
	BlobDriver     string // image storage backend: local | s3
	ImageDir       string // local image directory, served at /paintings
	S3Bucket       string // bucket for uploaded images (s3 driver)
	S3Region       string // bucket region (s3 driver)
	AdminUser      string // the single administrative username
	AdminPass      string // admin password, plain (ignored when the hash is set)
	AdminPassHash  string // optional bcrypt hash of the admin password
	JWTSecret      string // secret used to sign admin tokens
	TokenTTLDays   int    // admin token time-to-live in days
	MaxUploadBytes int64  // maximum accepted image upload size
	EventsEnabled  bool   // publish/consume rating events over the broker
}

// Load reads configuration from environment variables.  Most values have
// development defaults mirroring the reference deployment; the connection
// parameters of a hosted backend are required once that driver is selected
// and cause a fatal log message when missing.
func Load() Config {
	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		StoreDriver:    getenv("STORE_DRIVER", "file"),
		DataPath:       getenv("DATA_PATH", "data/paintings.json"),
		RatingsPath:    getenv("RATINGS_PATH", "data/ratings.json"),
		BlobDriver:     getenv("BLOB_DRIVER", "local"),
		ImageDir:       getenv("IMAGE_DIR", "public/paintings"),
		S3Region:       getenv("S3_REGION", "us-east-1"),
		AdminUser:      getenv("ADMIN_USERNAME", "admin"),
		AdminPass:      getenv("ADMIN_PASSWORD", "admin123"),
		AdminPassHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:      getenv("JWT_SECRET", "secret"),
		TokenTTLDays:   envInt("TOKEN_TTL_DAYS", 7),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 5<<20)), // 5 MiB
		EventsEnabled:  envBool("EVENTS_ENABLED", false),
	}
	if cfg.StoreDriver == "postgres" {
		cfg.DatabaseURL = must("DATABASE_URL")
	}
	if cfg.BlobDriver == "s3" {
		cfg.S3Bucket = must("S3_BUCKET")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
