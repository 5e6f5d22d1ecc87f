// Package config loads runtime configuration for the EventSync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config, or $EVENTSYNC_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:5000/api)
//	-f string   local data file (default eventsync.db)
//	-t int      request timeout, seconds (default 12)
//	-s int      signup verification token TTL, minutes (default 10)
//	-l string   log level (default info)
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://eventsync.example.com/api",
//	  "data_file": "/var/lib/eventsync/session.db",
//	  "request_timeout": "12s",
//	  "signup_token_ttl": "10m",
//	  "log_level": "debug"
//	}
package config
