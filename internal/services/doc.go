// Package services implements the business logic layer of the registry
// dashboard. Handlers and the CLI talk to these services only.
//
// # Services
//
//	- DashboardService: owns the registry table loaded at start-up and
//	  evaluates filter criteria into metrics, chart data, row pages, CSV
//	  exports and rendered chart images.
//	- HealthService: liveness, readiness and version reporting.
//
// # Lifecycle
//
// The table is loaded once, either with LoadDashboardService or by wrapping an
// already normalized table with NewDashboardService, and is shared read-only
// across requests. There is no global cache; restarting the process reloads
// the source file.
//
// # Error Handling
//
// Services return sentinel errors that handlers map to HTTP statuses:
//
//	- ErrInvalidCriteria (as *ValidationError with a field list)
//	- ErrUnknownChart and ErrEmptyChart for chart rendering
//	- ErrNotLoaded when no registry is available
//
// Load errors from the dataprocessing package are passed through unchanged.
package services
