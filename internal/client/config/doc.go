// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with a .env file in the working directory
//     loaded through godotenv (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the journal gRPC endpoint
//	-r string   app data root
//	-t string   access token
//	-o int      network operation timeout (seconds)
//	-w          auto-sync after local saves
//	-l string   reflection endpoint base URL
//	-m string   reflection model
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "data_root": "/home/me/.config/journalkeeper",
//	  "operation_timeout": "30s",
//	  "auto_sync": true,
//	  "auto_sync_debounce": "2s"
//	}
package config
