package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Target network as given by the user (URL or symbolic name)
	Network string
	ChainID uint64 // expected chain ID, 0 accepts whatever the node reports

	// Key derivation settings. The mnemonic itself is not part of the config.
	DerivationPath string
	PassphraseEnv  string

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         string // "text", "json" or "yaml"
	Yes            bool
	Timeout        time.Duration
	GasLimit       uint64

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// StructuredOutput reports whether stdout carries JSON or YAML for another program
func (c *RuntimeConfig) StructuredOutput() bool {
	return c.Output != "" && c.Output != "text"
}
