package config

import (
	"encoding/json"
	"flag"
	"fmt"
)

const HelpMessage = `
NYC taxi fare dashboard

Usage:
  dashboard [--config-path <path>] [--env-path <path>]
  dashboard --help

Options:
  --help         Show this screen.
  --config-path  Path to the YAML config file (default: config.yaml).
  --env-path     Path to a dotenv file loaded before the config (default: .env).

Config values may reference environment variables as ${VAR} or ${VAR:-default}.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the configuration with secrets masked.
func PrintConfig(cfg *Config) {
	masked := *cfg
	masked.Databricks.Token = mask(cfg.Databricks.Token)

	b, err := json.MarshalIndent(masked, "", "  ")
	if err != nil {
		fmt.Printf("failed to print config: %v\n", err)
		return
	}
	fmt.Printf("%s\n", b)
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
