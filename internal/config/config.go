// Package config defines the configuration surface shared by the indexer
// and searcher CLIs, grounded on douglaslinsmeyer-m3-manufacturing-
// planning-toolbox's and freeeve-polite-betrayal's internal/config.go
// (a plain struct of settings plus an envOrDefault-style defaulting
// helper), adapted from environment variables to the flag-populated
// values spec §6 prescribes for these two command-line tools.
package config

import "github.com/befeleme/opentrep/internal/constants"

// Config carries the settings either CLI needs to open its backends and
// run the resolver pipeline (spec §6).
type Config struct {
	// DatabasePath is the POR Store's on-disk location (spec §6 `--database`).
	DatabasePath string

	// IndexPath is the Full-Text Index's on-disk location, derived from
	// DatabasePath by the CLIs unless overridden.
	IndexPath string

	// LogPath is the `--log` destination; empty means stdout only.
	LogPath string

	// MaxEditDistance and SpellingCorrection seed resolver.Options.
	MaxEditDistance    int
	SpellingCorrection bool

	// DeadlineMS seeds resolver.Options.DeadlineMS; 0 means no deadline.
	DeadlineMS int
}

// Default returns the spec §6 default query settings with empty paths,
// for CLIs to fill in from flags.
func Default() Config {
	return Config{
		MaxEditDistance:    constants.DefaultMaxEditDistance,
		SpellingCorrection: constants.DefaultSpellCorrection,
	}
}

// IndexPathOrDefault returns c.IndexPath, defaulting to c.DatabasePath with
// a ".idx" suffix when unset.
func (c Config) IndexPathOrDefault() string {
	if c.IndexPath != "" {
		return c.IndexPath
	}
	return c.DatabasePath + ".idx"
}
