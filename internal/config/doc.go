// Package config provides configuration management for the antika CLI.
//
// Configuration is read by Viper from config.yaml in the current directory
// or in the antika config directory (override with ANTIKA_CONFIG_DIR).
// Every key can also be set through an ANTIKA_ environment variable, with
// dots replaced by underscores:
//
//	version: 1
//	workflow_file: ~/.config/antika/workflow.csv
//	strict: false
//	history:
//	  enabled: true
//	  path: ~/.local/share/antika/history.db
//
// Call [Init] once before [Load]. Load validates the result; use [Validate]
// directly to collect every problem rather than the first.
package config
