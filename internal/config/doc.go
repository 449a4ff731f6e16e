// Package config handles configuration loading for the urimux command-line
// tools.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The library itself takes options programmatically; only the
// CLIs read files.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	journal:
//	  path: "${URIMUX_JOURNAL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Participant identity and projection key:
//
//	participant:
//	  id: "sqltools.backup"
//	  name: "SQL Backup Tools"
//	  hide_ui_context_key: "sqltools.hideUi"
//
// Discovery:
//
//	discovery:
//	  manifest_dir: "/etc/urimux/manifests"
//
// Journal (empty path disables journaling):
//
//	journal:
//	  path: "/var/lib/urimux/journal.db"
//
// Simulator:
//
//	sim:
//	  settle_timeout: "2s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
