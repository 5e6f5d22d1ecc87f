package config

import (
	"encoding/json"
	"os"

	"github.com/eventsync/eventsync/internal/flagx"
	"github.com/eventsync/eventsync/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "12s" style strings or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	DataFile       string          `json:"data_file"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SignupTokenTTL *timex.Duration `json:"signup_token_ttl"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config or
// $EVENTSYNC_CONFIG. Keys missing from the file keep their current value.
// Read and decode errors panic; LoadConfig runs before anything else starts.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DataFile != "" {
		cfg.DataFile = jc.DataFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SignupTokenTTL != nil {
		cfg.SignupTokenTTL = jc.SignupTokenTTL.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
