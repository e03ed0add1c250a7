package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	App struct {
		Port        string
		Env         string
		NotifyAsync bool
	}
	Postgres struct {
		URL            string
		SSLInsecure    bool
		MaxConns       int32
		MigrationsPath string
	}
	Cloudinary struct {
		CloudName string
		APIKey    string
		APISecret string
	}
	WhatsApp struct {
		PhoneNumberID string
		Token         string
		AdminPhone    string
	}
}

// Load reads configuration from the environment, optionally preloading
// a .env file from path. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = getOrDefault("APP_PORT", "5000")
	cfg.App.Env = getOrDefault("APP_ENV", "development")
	cfg.App.NotifyAsync = getBool("NOTIFY_ASYNC", false)

	var err error
	if cfg.Postgres.URL, err = getRequired("DATABASE_URL"); err != nil {
		return nil, err
	}
	// Hosted Postgres providers commonly serve certificates the local
	// trust store cannot verify, hence the development default.
	cfg.Postgres.SSLInsecure = getBool("DB_SSL_INSECURE", cfg.App.Env == "development")
	cfg.Postgres.MaxConns = int32(getInt("DB_MAX_CONNS", 4))
	cfg.Postgres.MigrationsPath = getOrDefault("MIGRATIONS_PATH", "migrations")

	if cfg.Cloudinary.CloudName, err = getRequired("CLOUDINARY_CLOUD_NAME"); err != nil {
		return nil, err
	}
	if cfg.Cloudinary.APIKey, err = getRequired("CLOUDINARY_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Cloudinary.APISecret, err = getRequired("CLOUDINARY_API_SECRET"); err != nil {
		return nil, err
	}

	if cfg.WhatsApp.PhoneNumberID, err = getRequired("WHATSAPP_PHONE_NUMBER_ID"); err != nil {
		return nil, err
	}
	if cfg.WhatsApp.Token, err = getRequired("WHATSAPP_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.WhatsApp.AdminPhone, err = getRequired("ADMIN_PHONE"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getRequired(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func getOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", def).Msg("config: unparseable boolean, using default")
		return def
	}
	return parsed
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("config: unparseable integer, using default")
		return def
	}
	return parsed
}
