package http

import (
	"context"
	"io"

	"registrydash/internal/exporter"
	"registrydash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the registry operations exposed over HTTP
type DashboardServiceInterface interface {
	Options(ctx context.Context, regions []string) (domain.FilterOptions, error)
	DefaultCriteria() domain.FilterCriteria
	Evaluate(ctx context.Context, c domain.FilterCriteria, page domain.Page) (*domain.Dashboard, error)
	Records(ctx context.Context, c domain.FilterCriteria, page domain.Page) (domain.RecordPage, error)
	ExportCSV(ctx context.Context, c domain.FilterCriteria, w io.Writer, opts exporter.WriteOptions) (int, error)
	RenderChart(ctx context.Context, c domain.FilterCriteria, kind domain.ChartKind, format exporter.Format, w io.Writer) error
}
