// Package config loads notewatch configuration from YAML, environment,
// and .env sources.
package config

// DefaultConfigDir is where the config file and snapshot database live.
const DefaultConfigDir = "~/.config/notewatch"

// DefaultDBName is the snapshot database filename.
const DefaultDBName = "notewatch.db"

// DefaultSourceURL is the transcript service endpoint.
const DefaultSourceURL = "http://localhost:8787"

// DefaultModel is the analysis model used for sentiment scoring.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultTimezone is empty, meaning the process-local zone.
const DefaultTimezone = ""

// DefaultRange is the analysis window used when none is given.
const DefaultRange = "7d"

// DefaultOutput is the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
