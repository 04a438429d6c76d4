package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid wraps every configuration problem; all of them are fatal
var ErrInvalid = errors.New("invalid configuration")

// Environment variables read by the dialog
const (
	EnvSmcl           = "AUTOMIC_SMCL"
	EnvPort           = "AUTOMIC_SMPORT"
	EnvPhrase         = "AUTOMIC_PHRASE"
	EnvCertificate    = "AUTOMIC_SMCERT"
	EnvKey            = "AUTOMIC_SMKEY"
	EnvChain          = "AUTOMIC_SMCHAIN"
	EnvAutorefresh    = "AUTOMIC_AUTOREFRESH"
	EnvRefreshSeconds = "AUTOMIC_REFRESH_SECONDS"
	EnvSettleSeconds  = "AUTOMIC_SETTLE_SECONDS"
	EnvLogLevel       = "LOG_LEVEL"
	EnvFile           = "ENV_FILE"
)

// Settings holds the dialog's behaviour, independent of the connection
type Settings struct {
	// Autorefresh redraws the table when no input arrives in RefreshInterval
	Autorefresh     bool
	RefreshInterval time.Duration

	// SettleDelay is the pause between the stop and start of a restart
	SettleDelay time.Duration

	// Logging
	LogLevel string

	EnvFile string
}

// Load reads settings from the environment, after applying the .env file if present
func Load() (*Settings, error) {
	envFile := getEnvFile()

	// Load .env file if it exists
	_ = godotenv.Load(envFile)

	s := &Settings{
		Autorefresh:     autorefreshEnabled(getEnv(EnvAutorefresh, "1")),
		RefreshInterval: time.Duration(getEnvInt(EnvRefreshSeconds, 10)) * time.Second,
		SettleDelay:     time.Duration(getEnvInt(EnvSettleSeconds, 2)) * time.Second,
		LogLevel:        getEnv(EnvLogLevel, "warn"),
		EnvFile:         envFile,
	}

	if s.RefreshInterval <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", ErrInvalid, EnvRefreshSeconds)
	}
	if s.SettleDelay < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalid, EnvSettleSeconds)
	}

	return s, nil
}

// LoadWithDefaults returns settings for testing
func LoadWithDefaults() *Settings {
	return &Settings{
		Autorefresh:     true,
		RefreshInterval: 10 * time.Second,
		SettleDelay:     2 * time.Second,
		LogLevel:        "warn",
	}
}

// autorefreshEnabled mirrors the accepted spellings of "off"
func autorefreshEnabled(v string) bool {
	switch v {
	case "0", "false", "False":
		return false
	}
	return true
}

// getEnvFile returns the path to the .env file
func getEnvFile() string {
	if envFile := os.Getenv(EnvFile); envFile != "" {
		return envFile
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	// Fall back to the directory holding the executable
	exe, err := os.Executable()
	if err == nil {
		envPath := filepath.Join(filepath.Dir(exe), ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	return ".env"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}
