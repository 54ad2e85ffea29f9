package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvServerAddr     = "JOURNAL_SERVER_ADDR"
	EnvDataRoot       = "JOURNAL_DATA_ROOT"
	EnvAccessToken    = "JOURNAL_TOKEN"
	EnvOpTimeout      = "JOURNAL_OP_TIMEOUT"
	EnvAutoSync       = "JOURNAL_AUTO_SYNC"
	EnvReflectProv    = "REFLECT_PROVIDER"
	EnvReflectBaseURL = "REFLECT_BASE_URL"
	EnvReflectModel   = "REFLECT_MODEL"
	EnvReflectAPIKey  = "REFLECT_API_KEY"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first; variables already set in the process
// environment win over it. Malformed values panic, like the other layers.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.ServerEndpointAddr, EnvServerAddr)
	setString(&cfg.DataRoot, EnvDataRoot)
	setString(&cfg.AccessToken, EnvAccessToken)
	setString(&cfg.ReflectProvider, EnvReflectProv)
	setString(&cfg.ReflectBaseURL, EnvReflectBaseURL)
	setString(&cfg.ReflectModel, EnvReflectModel)
	setString(&cfg.ReflectAPIKey, EnvReflectAPIKey)

	if v := os.Getenv(EnvOpTimeout); v != "" {
		d, err := parseSecondsOrDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvOpTimeout, err))
		}
		cfg.OperationTimeout = d
	}

	if v := os.Getenv(EnvAutoSync); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvAutoSync, err))
		}
		cfg.AutoSync = b
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// parseSecondsOrDuration accepts "45" (seconds) or a Go duration like "1m30s".
func parseSecondsOrDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
