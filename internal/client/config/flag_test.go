package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "127.0.0.1:9090", "-r", "/tmp/j", "-t", "tok", "-o", "10", "-w", "-p", "anthropic", "-l", "http://llm:8080", "-m", "tiny"},
			expected: &Config{
				ServerEndpointAddr: "127.0.0.1:9090",
				DataRoot:           "/tmp/j",
				AccessToken:        "tok",
				OperationTimeout:   10 * time.Second,
				AutoSync:           true,
				ReflectProvider:    "anthropic",
				ReflectBaseURL:     "http://llm:8080",
				ReflectModel:       "tiny",
			}},
		{name: "bool flag before valued flag", args: []string{"cmd", "-w", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1", AutoSync: true}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-x", "y", "-o", "5"},
			expected: &Config{OperationTimeout: 5 * time.Second}},
		{name: "incorrect timeout", args: []string{"cmd", "-o", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
