package config

import "time"

// Config holds runtime settings for the EventSync CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, including the /api prefix.
//   - DataFile: path of the local sqlite file that keeps the session.
//   - RequestTimeout: upper bound for a single API call.
//   - SignupTokenTTL: how long a verification token is kept between the
//     verify and complete signup steps.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	DataFile       string
	RequestTimeout time.Duration
	SignupTokenTTL time.Duration
	LogLevel       string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.DataFile = "eventsync.db"
	c.RequestTimeout = 12 * time.Second
	c.SignupTokenTTL = 10 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
