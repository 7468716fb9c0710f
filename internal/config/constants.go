package config

// Application constants
const (
	AppName     = "Company Registry Explorer"
	ServiceName = "registry-dashboard"

	// Source data
	DefaultDataFile        = "filtrado_directorio_companias.xlsx"
	DefaultRowLimit        = 500
	DefaultCapitalQuantile = 0.99

	// Export
	DefaultExportFileName = "directorio_filtrado.csv"
	CSVContentType        = "text/csv; charset=utf-8"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Log Settings
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/registry.log"

	// API Endpoints
	APIBasePath     = "/api"
	MetricsEndpoint = "/metrics"
)
