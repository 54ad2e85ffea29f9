package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the journal CLI.
//
// Units: OperationTimeout and AutoSyncDebounce are time.Duration values.
type Config struct {
	ServerEndpointAddr string
	DataRoot           string
	AccessToken        string
	OperationTimeout   time.Duration
	AutoSync           bool
	AutoSyncDebounce   time.Duration
	ReflectProvider    string
	ReflectBaseURL     string
	ReflectModel       string
	ReflectAPIKey      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataRoot = defaultDataRoot()
	c.AccessToken = ""
	c.OperationTimeout = 30 * time.Second
	c.AutoSync = false
	c.AutoSyncDebounce = 2 * time.Second
	c.ReflectProvider = "openai"
	c.ReflectBaseURL = "http://localhost:8080"
	c.ReflectModel = "Llama-3.1-8B-Instruct"
	c.ReflectAPIKey = ""
}

func defaultDataRoot() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "journalkeeper")
	}
	return ".journalkeeper"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
