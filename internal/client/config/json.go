package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/journalkeeper/internal/flagx"
	"github.com/dmitrijs2005/journalkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DataRoot           string         `json:"data_root"`
	AccessToken        string         `json:"access_token"`
	OperationTimeout   timex.Duration `json:"operation_timeout"`
	AutoSync           *bool          `json:"auto_sync"`
	AutoSyncDebounce   timex.Duration `json:"auto_sync_debounce"`
	ReflectProvider    string         `json:"reflect_provider"`
	ReflectBaseURL     string         `json:"reflect_base_url"`
	ReflectModel       string         `json:"reflect_model"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields absent from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	overlay(&cfg.DataRoot, jc.DataRoot)
	overlay(&cfg.AccessToken, jc.AccessToken)
	overlay(&cfg.ReflectProvider, jc.ReflectProvider)
	overlay(&cfg.ReflectBaseURL, jc.ReflectBaseURL)
	overlay(&cfg.ReflectModel, jc.ReflectModel)
	if jc.OperationTimeout.Duration > 0 {
		cfg.OperationTimeout = jc.OperationTimeout.Duration
	}
	if jc.AutoSyncDebounce.Duration > 0 {
		cfg.AutoSyncDebounce = jc.AutoSyncDebounce.Duration
	}
	if jc.AutoSync != nil {
		cfg.AutoSync = *jc.AutoSync
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
