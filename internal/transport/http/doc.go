// Package http implements the registry's HTTP handlers. Handlers stay thin:
// they decode the request, call the dashboard or health service and render
// the result.
//
// # Routes
//
// Mounted under /api by internal/app:
//
//	GET  /health, /health/ready, /health/live, /version
//	GET  /options?region=...
//	GET  /criteria/default
//	GET  /dashboard?...      POST /dashboard (JSON criteria)
//	GET  /records?...
//	GET  /export.csv?...
//	GET  /charts/{kind}?format=png|svg&...
//
// GET /metrics is served at the root.
//
// # Query encoding
//
// Multi-valued criteria repeat their key (legal_status, type, region,
// province, industry). capital_min, capital_max, year_min and year_max set
// inclusive bounds; years=any asks for an unbounded year range, which still
// excludes records without a year. balance, q, limit and show_all complete
// the set.
//
// # Errors
//
// Every failure goes through apierrors.ErrorHandler and is written as an
// RFC 7807 problem. An empty chart view answers 204 No Content.
package http
