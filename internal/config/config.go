package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	TelegramToken   string
	DatabaseURL     string
	SampleEmployees int
	SeedOnStart     bool
	LogLevel        logrus.Level
	BotDebug        bool
}

var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

var instance *Config
var once sync.Once

// GetConfig loads the configuration once per process. Invalid values are
// fatal.
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads .env (when present) and the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		DatabaseURL:     getEnv("DATABASE_URL", "absences.db"),
		SampleEmployees: int(getEnvAsInt("SAMPLE_EMPLOYEES", 50)),
		SeedOnStart:     getEnvAsBool("SEED_ON_START", true),
		BotDebug:        getEnvAsBool("BOT_DEBUG", false),
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.SampleEmployees < 0 {
		return nil, errors.New("SAMPLE_EMPLOYEES must not be negative")
	}

	return cfg, nil
}

// RequireToken fails when the bot token is missing.
func (c *Config) RequireToken() error {
	if c.TelegramToken == "" {
		return ErrMissingToken
	}
	return nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
