// Package app wires the registry dashboard together: telemetry, the loaded
// registry, the HTTP middleware chain and the server lifecycle.
//
// # Initialization Flow
//
//	1. The caller loads configuration and creates the logger
//	2. NewApplication initializes OpenTelemetry and the registry metrics
//	3. The registry file is loaded once into a DashboardService
//	4. Handlers and middleware are mounted on a chi router
//	5. Run serves until the context ends or SIGINT/SIGTERM arrives
//
// A registry that cannot be loaded is fatal: NewApplication returns a
// classified *errors.AppError whose UserMessage is printed by the binaries.
//
// # Graceful Shutdown
//
// Stop drains in-flight requests within Server.ShutdownTimeout and flushes
// the telemetry providers.
package app
