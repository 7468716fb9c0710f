package domain

// Metrics are the headline figures of a filtered table.
type Metrics struct {
	TotalCount            int     `json:"total_count"`
	TotalRaw              int     `json:"total_raw"`
	CountDelta            int     `json:"count_delta"`
	CapitalTotal          float64 `json:"capital_total"`
	CapitalAverage        float64 `json:"capital_average"`
	DistinctProvinces     int     `json:"distinct_provinces"`
	CapitalTotalDisplay   string  `json:"capital_total_display"`
	CapitalAverageDisplay string  `json:"capital_average_display"`
}
