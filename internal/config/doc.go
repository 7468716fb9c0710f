// Package config provides centralized configuration for the registry explorer.
//
// # Configuration Sources
//
// Values are resolved in this order, later sources winning:
//
//	1. Default()
//	2. A YAML file (config.yaml, configs/config.yaml or an explicit path)
//	3. Environment variables prefixed with REGISTRY_
//
// # Environment Variables
//
//	REGISTRY_SERVER_PORT=8080
//	REGISTRY_DATA_FILE=/srv/data/filtrado_directorio_companias.xlsx
//	REGISTRY_DATA_ROW_LIMIT=500
//	REGISTRY_LOGGING_LEVEL=debug
//	REGISTRY_TELEMETRY_TRACE_EXPORTER=stdout
//
// Relative data file paths are resolved against the working directory first
// and then against the executable directory.
package config
