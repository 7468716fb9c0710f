// Package exporter turns filtered registry tables into files.
//
// CSVWriter writes the table projection with Spanish column labels, optionally
// prefixed with a UTF-8 BOM for Excel. ChartRenderer draws the dashboard views
// as PNG or SVG images using go-chart.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	err := writer.WriteFile("out/directorio_filtrado.csv", filtered, exporter.WriteOptions{BOMPrefix: true})
//
//	renderer := exporter.NewChartRenderer(logger)
//	err = renderer.Render(w, domain.ChartIndustries, charts, exporter.FormatPNG)
package exporter
