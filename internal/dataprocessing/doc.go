// Package dataprocessing turns the company registry workbook into an immutable
// domain.Table and derives everything the dashboard shows from it.
//
// The pipeline is:
//
//	LoadFile    raw sheet (xlsx or csv) -> RawTable
//	Normalize   RawTable -> *domain.Table (renamed, typed, cleaned)
//	ApplyFilters *domain.Table x FilterCriteria -> *domain.Table
//	ComputeMetrics / BuildChartSet  filtered table -> KPIs and chart views
//
// Every function after loading is pure: inputs are never modified and the same
// inputs always give the same outputs, so a loaded table can be shared by any
// number of concurrent requests.
package dataprocessing
