// Package config provides centralized configuration management for the
// LeadPulse service: loading, merging, validation, and the resolved
// filesystem layout.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml (working directory or configs/)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables carry the LEADPULSE_ prefix:
//
//	LEADPULSE_SERVER_PORT=8080
//	LEADPULSE_CRM_API_TOKEN=pat-...
//	LEADPULSE_PATHS_DATA_DIR=/var/lib/leadpulse
//	LEADPULSE_LOGGING_LEVEL=info
//
// The CRM API token deliberately has no default; the remote source
// adapter turns its absence into a hard error rather than falling back
// to file data.
package config
