package config

import (
	"flag"
	"os"
	"time"

	"github.com/eventsync/eventsync/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   API base URL
//	-f string   local data file
//	-t int      request timeout (seconds)
//	-s int      signup verification token TTL (minutes)
//	-l string   log level
//
// Only these flags are read from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DataFile, "f", cfg.DataFile, "local data file")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	signupTTL := fs.Int("s", int(cfg.SignupTokenTTL.Minutes()), "signup token TTL (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.SignupTokenTTL = time.Duration(*signupTTL) * time.Minute
}
